package ratelimit

import "time"

// Config sets the per-client limit on credential endpoints.
type Config struct {
	// Rate is the sustained number of requests per second per key.
	Rate float64 `env:"AUTH_RATE_LIMIT_RPS" envDefault:"0.2"`
	// Burst is the bucket capacity.
	Burst int           `env:"AUTH_RATE_LIMIT_BURST" envDefault:"5"`
	TTL   time.Duration `env:"AUTH_RATE_LIMIT_TTL" envDefault:"10m"`
}

// NewFromConfig builds a Limiter from cfg.
func NewFromConfig(cfg Config) *Limiter {
	return New(cfg.Rate, cfg.Burst, WithTTL(cfg.TTL))
}
