package cookie

import "time"

// Options holds the attributes applied to every remember-me directive.
type Options struct {
	Name   string
	Domain string
	TTL    time.Duration
	Secure bool
	Clock  func() time.Time
}

// Option configures a Manager.
type Option func(*Options)

// WithName overrides the cookie name.
func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithDomain scopes the cookie to domain. Empty means host-only.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithTTL sets how long a remember-me cookie lives.
func WithTTL(ttl time.Duration) Option {
	return func(o *Options) {
		o.TTL = ttl
	}
}

// WithSecure toggles the Secure attribute. Only local development over
// plain HTTP should turn it off.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithClock replaces time.Now when computing expiry.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.Clock = now
	}
}
