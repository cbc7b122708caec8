package config

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Validator is implemented by configs that check cross-field constraints.
type Validator interface {
	Validate() error
}

type options struct {
	prefix   string
	envFiles []string
	environ  map[string]string
}

// Option customises a single Load call.
type Option func(*options)

// WithPrefix prepends prefix to every variable name.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithEnvFiles overrides the dotenv files read before the first parse.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithEnvironment parses from the given map instead of the process
// environment. Dotenv files are not read.
func WithEnvironment(environ map[string]string) Option {
	return func(o *options) { o.environ = environ }
}

var dotenvOnce sync.Once

func loadDotenv(files []string) {
	dotenvOnce.Do(func() {
		existing := make([]string, 0, len(files))
		for _, f := range files {
			if _, err := os.Stat(f); err == nil {
				existing = append(existing, f)
			}
		}
		if len(existing) > 0 {
			// godotenv.Load never overrides variables already set.
			_ = godotenv.Load(existing...)
		}
	})
}

// Load parses the environment into a new T.
func Load[T any](opts ...Option) (T, error) {
	o := options{envFiles: []string{".env"}}
	for _, opt := range opts {
		opt(&o)
	}

	envOpts := env.Options{Prefix: o.prefix}
	if o.environ != nil {
		envOpts.Environment = o.environ
	} else {
		loadDotenv(o.envFiles)
	}

	cfg, err := env.ParseAsWithOptions[T](envOpts)
	if err != nil {
		var zero T
		return zero, errors.Join(ErrParsingConfig, err)
	}

	if v, ok := any(&cfg).(Validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, errors.Join(ErrInvalidConfig, err)
		}
	}

	return cfg, nil
}

// MustLoad is like Load but panics on error. Use it only at startup.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
