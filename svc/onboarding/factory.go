package onboarding

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Backends carries the connections a Store may be built on. Only the one
// matching Config.Backend needs to be set.
type Backends struct {
	Redis       redis.Cmdable
	RedisPrefix string
	Postgres    *pgxpool.Pool
	Mongo       *mongo.Database
}

// NewStore builds the Store selected by cfg.Backend.
func NewStore(cfg Config, b Backends) (Store, error) {
	switch cfg.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		if b.Redis == nil {
			return nil, fmt.Errorf("%w: redis client not configured", ErrUnknownBackend)
		}
		return NewRedisStore(b.Redis, b.RedisPrefix, WithRedisTTL(cfg.RedisTTL)), nil
	case BackendPostgres:
		if b.Postgres == nil {
			return nil, fmt.Errorf("%w: postgres pool not configured", ErrUnknownBackend)
		}
		return NewPostgresStore(b.Postgres), nil
	case BackendMongo:
		if b.Mongo == nil {
			return nil, fmt.Errorf("%w: mongo database not configured", ErrUnknownBackend)
		}
		return NewMongoStore(b.Mongo), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
