package cookie

import "time"

// Config holds remember-me cookie configuration.
type Config struct {
	Secret string        `env:"REMEMBER_ME_SECRET,required"`
	Name   string        `env:"REMEMBER_ME_COOKIE" envDefault:"login_creds"`
	Domain string        `env:"REMEMBER_ME_DOMAIN" envDefault:""`
	TTL    time.Duration `env:"REMEMBER_ME_TTL" envDefault:"720h"`
	Secure bool          `env:"REMEMBER_ME_SECURE" envDefault:"true"`
}

// NewFromConfig creates a new Manager from the provided Config.
// Only non-zero values from the config are applied.
func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	configOpts := make([]Option, 0, 4)

	if cfg.Name != "" {
		configOpts = append(configOpts, WithName(cfg.Name))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.TTL > 0 {
		configOpts = append(configOpts, WithTTL(cfg.TTL))
	}
	configOpts = append(configOpts, WithSecure(cfg.Secure))

	configOpts = append(configOpts, opts...)

	return New(cfg.Secret, configOpts...)
}
