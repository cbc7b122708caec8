package main

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	gomongo "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vaultmarkets/onboarding/pkg/httpserver"
	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/pkg/mongo"
	"github.com/vaultmarkets/onboarding/pkg/pg"
	"github.com/vaultmarkets/onboarding/pkg/redis"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

// dependencies holds the external connections opened for the selected
// progress and session backends. Unused ones stay nil.
type dependencies struct {
	pg    *pgxpool.Pool
	redis *goredis.Client
	mongo *gomongo.Client
}

func connect(ctx context.Context, cfg appConfig, log *slog.Logger) (*dependencies, error) {
	d := &dependencies{}

	if cfg.Progress.Backend == onboarding.BackendRedis || cfg.Session.Backend == "redis" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		d.redis = client
	}

	switch cfg.Progress.Backend {
	case onboarding.BackendPostgres:
		pool, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			d.close(log)
			return nil, err
		}
		d.pg = pool
		if err := pg.Migrate(ctx, pool, cfg.Postgres, onboarding.Migrations(), log); err != nil {
			d.close(log)
			return nil, err
		}
	case onboarding.BackendMongo:
		client, err := mongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			d.close(log)
			return nil, err
		}
		d.mongo = client
	}

	return d, nil
}

func (d *dependencies) backends(cfg appConfig) onboarding.Backends {
	b := onboarding.Backends{RedisPrefix: cfg.Redis.KeyPrefix}
	if d.redis != nil {
		b.Redis = d.redis
	}
	if d.pg != nil {
		b.Postgres = d.pg
	}
	if d.mongo != nil {
		b.Mongo = d.mongo.Database(cfg.Mongo.Database)
	}
	return b
}

func (d *dependencies) checks() map[string]httpserver.Check {
	checks := make(map[string]httpserver.Check, 3)
	if d.pg != nil {
		checks["postgres"] = pg.Healthcheck(d.pg)
	}
	if d.redis != nil {
		checks["redis"] = redis.Healthcheck(d.redis)
	}
	if d.mongo != nil {
		checks["mongo"] = mongo.Healthcheck(d.mongo)
	}
	return checks
}

func (d *dependencies) close(log *slog.Logger) {
	if d.pg != nil {
		d.pg.Close()
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			log.Error("failed to close redis client", logger.Component("gateway"), logger.Error(err))
		}
	}
	if d.mongo != nil {
		if err := d.mongo.Disconnect(context.Background()); err != nil {
			log.Error("failed to close mongo client", logger.Component("gateway"), logger.Error(err))
		}
	}
}
