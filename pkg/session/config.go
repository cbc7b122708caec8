package session

import "time"

// Config controls the session cookie, idle timeout and backend.
type Config struct {
	CookieName string        `env:"SESSION_COOKIE" envDefault:"onboard_sid"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	Secure     bool          `env:"SESSION_SECURE" envDefault:"true"`
	// TokenHeader, when set, also accepts "Authorization: Bearer <token>" and
	// returns new tokens in this response header, for clients without a
	// cookie jar.
	TokenHeader string `env:"SESSION_TOKEN_HEADER"`
	// Backend is "memory" or "redis".
	Backend string `env:"SESSION_STORE" envDefault:"memory"`
}
