package cookie

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/vaultmarkets/onboarding/pkg/seal"
)

const (
	DefaultName = "login_creds"
	DefaultTTL  = 30 * 24 * time.Hour
)

// Manager issues, reads and clears the remember-me cookie. It keeps no
// server-side state and is safe for concurrent use.
type Manager struct {
	secret string
	opts   Options
}

// New returns a Manager sealing values with secret. An empty secret is
// rejected.
func New(secret string, opts ...Option) (*Manager, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	o := Options{
		Name:   DefaultName,
		TTL:    DefaultTTL,
		Secure: true,
		Clock:  time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}

	return &Manager{secret: secret, opts: o}, nil
}

// Name returns the cookie name the manager reads and writes.
func (m *Manager) Name() string {
	return m.opts.Name
}

// RememberMe seals the credentials and returns a directive that stores them
// for the configured TTL.
func (m *Manager) RememberMe(email, password string) (Directive, error) {
	if email == "" || password == "" {
		return Directive{}, ErrCredentialsNotProvided
	}
	if strings.Contains(email, separator) {
		return Directive{}, ErrInvalidEmail
	}

	value, err := seal.Seal(EncodeCredentials(email, password), m.secret)
	if err != nil {
		return Directive{}, err
	}

	d := m.base()
	d.Value = value
	d.ExpiresAt = m.opts.Clock().Add(m.opts.TTL)
	return d, nil
}

// Clear returns a directive that removes the cookie.
func (m *Manager) Clear() Directive {
	d := m.base()
	d.ExpiresAt = time.Unix(0, 0)
	d.MaxAge = -1
	return d
}

// Read returns the raw cookie value, if present and non-empty.
func (m *Manager) Read(r *http.Request) (string, bool) {
	c, err := r.Cookie(m.opts.Name)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Open unseals a cookie value and splits it into email and password.
// It returns ErrCorruptCredentials when the value fails authentication and
// ErrMalformedCredentials when the payload does not split.
func (m *Manager) Open(value string) (email, password string, err error) {
	payload, err := seal.Unseal(value, m.secret)
	if err != nil {
		if errors.Is(err, seal.ErrIntegrity) {
			return "", "", errors.Join(ErrCorruptCredentials, err)
		}
		return "", "", err
	}
	return DecodeCredentials(payload)
}

func (m *Manager) base() Directive {
	return Directive{
		Name:     m.opts.Name,
		Path:     "/",
		Domain:   m.opts.Domain,
		HTTPOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}
