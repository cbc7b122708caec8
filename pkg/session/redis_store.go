package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as a JSON value with a TTL matching its
// expiry. Keys are derived from a hash of the token so raw tokens never
// appear in the keyspace.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	now    func() time.Time
}

// NewRedisStore keeps sessions under keyPrefix with a TTL matching ExpiresAt.
func NewRedisStore(client redis.Cmdable, keyPrefix string) *RedisStore {
	return &RedisStore{client: client, prefix: keyPrefix + "session:", now: time.Now}
}

func (r *RedisStore) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return r.prefix + hex.EncodeToString(sum[:])
}

func (r *RedisStore) Create(ctx context.Context, s *Session) error {
	return r.put(ctx, s, false)
}

func (r *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	b, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Join(ErrStoreFailure, err)
	}

	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return &s, nil
}

func (r *RedisStore) Update(ctx context.Context, s *Session) error {
	return r.put(ctx, s, true)
}

func (r *RedisStore) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (r *RedisStore) put(ctx context.Context, s *Session, mustExist bool) error {
	if s == nil || s.Token == "" {
		return ErrInvalidSession
	}
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}

	b, err := json.Marshal(s)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	if !mustExist {
		if err := r.client.Set(ctx, r.key(s.Token), b, ttl).Err(); err != nil {
			return errors.Join(ErrStoreFailure, err)
		}
		return nil
	}

	ok, err := r.client.SetXX(ctx, r.key(s.Token), b, ttl).Result()
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}
