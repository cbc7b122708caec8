package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisFieldPrefix  = "f:"
	redisCurrentStep  = "current_step"
	redisLastUpdated  = "last_updated"
	redisDefaultTTL   = 90 * 24 * time.Hour
	redisKeyNamespace = "progress:"
)

// RedisStore keeps each user's progress in one hash. Answers live under
// "f:<name>" as JSON so that a merge is a single HSET with no read.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisTTL sets how long an untouched record survives. Zero disables
// expiry.
func WithRedisTTL(ttl time.Duration) RedisStoreOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore keeps one hash per user under keyPrefix.
func NewRedisStore(client redis.Cmdable, keyPrefix string, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{client: client, prefix: keyPrefix + redisKeyNamespace, ttl: redisDefaultTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(userID string) string {
	return s.prefix + userID
}

func (s *RedisStore) Load(ctx context.Context, userID string) (*Progress, error) {
	raw, err := s.client.HGetAll(ctx, s.key(userID)).Result()
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	if len(raw) == 0 {
		return nil, ErrNotFound
	}
	return decodeRedisHash(userID, raw)
}

func (s *RedisStore) Merge(ctx context.Context, userID string, fields map[string]any, at time.Time) (*Progress, error) {
	values := make([]any, 0, 2*len(fields)+2)
	for k, v := range fields {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %w", ErrStoreFailure, k, err)
		}
		values = append(values, redisFieldPrefix+k, string(b))
	}
	values = append(values, redisLastUpdated, at.UTC().Format(time.RFC3339Nano))

	if err := s.write(ctx, userID, values); err != nil {
		return nil, err
	}
	return s.Load(ctx, userID)
}

func (s *RedisStore) SetCurrentStep(ctx context.Context, userID string, step Step, at time.Time) error {
	return s.write(ctx, userID, []any{
		redisCurrentStep, string(step),
		redisLastUpdated, at.UTC().Format(time.RFC3339Nano),
	})
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, userID string, values []any) error {
	key := s.key(userID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, values...)
		if s.ttl > 0 {
			pipe.Expire(ctx, key, s.ttl)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func decodeRedisHash(userID string, raw map[string]string) (*Progress, error) {
	p := &Progress{UserID: userID, Fields: make(map[string]any, len(raw))}
	for k, v := range raw {
		switch {
		case k == redisCurrentStep:
			p.CurrentStep = v
		case k == redisLastUpdated:
			t, err := time.Parse(time.RFC3339Nano, v)
			if err != nil {
				return nil, fmt.Errorf("%w: last_updated: %w", ErrStoreFailure, err)
			}
			p.LastUpdated = t
		case strings.HasPrefix(k, redisFieldPrefix):
			var val any
			if err := json.Unmarshal([]byte(v), &val); err != nil {
				return nil, fmt.Errorf("%w: field %q: %w", ErrStoreFailure, k, err)
			}
			p.Fields[strings.TrimPrefix(k, redisFieldPrefix)] = val
		}
	}
	return p, nil
}
