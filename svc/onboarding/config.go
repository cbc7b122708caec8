package onboarding

import "time"

// Backends accepted by Config.Backend.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config selects the progress backend and an optional wizard layout file.
type Config struct {
	Backend   string        `env:"PROGRESS_STORE" envDefault:"memory"`
	GraphPath string        `env:"WIZARD_GRAPH_PATH"`
	RedisTTL  time.Duration `env:"PROGRESS_REDIS_TTL" envDefault:"2160h"`
}
