package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const tokenBytes = 32

// Manager creates, loads and destroys sessions.
type Manager struct {
	store     Store
	transport Transport
	ttl       time.Duration
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithTransport replaces the default cookie transport.
func WithTransport(t Transport) Option {
	return func(m *Manager) { m.transport = t }
}

// WithTTL sets the idle timeout. Each successful Get extends it.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager over store with a secure onboard_sid cookie
// and a two hour idle timeout.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:     store,
		transport: NewCookieTransport("onboard_sid", true),
		ttl:       2 * time.Hour,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewManagerFromConfig builds a Manager with a cookie transport, plus a
// bearer header transport when cfg.TokenHeader is set.
func NewManagerFromConfig(cfg Config, store Store, opts ...Option) *Manager {
	var t Transport = NewCookieTransport(cfg.CookieName, cfg.Secure)
	if cfg.TokenHeader != "" {
		t = CompositeTransport{t, NewHeaderTransport(cfg.TokenHeader)}
	}
	base := []Option{
		WithTransport(t),
		WithTTL(cfg.TTL),
	}
	return NewManager(store, append(base, opts...)...)
}

// Start replaces any session on the request with a fresh one built from
// proto and hands its token to the client. Only identity fields and the
// watermark are taken from proto.
func (m *Manager) Start(ctx context.Context, w http.ResponseWriter, r *http.Request, proto Session) (*Session, error) {
	if token, err := m.transport.GetToken(r); err == nil {
		_ = m.store.Delete(ctx, token)
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		ID:              uuid.New(),
		Token:           token,
		UserID:          proto.UserID,
		AccessToken:     proto.AccessToken,
		IssuedVia:       proto.IssuedVia,
		HighestMainStep: proto.HighestMainStep,
		CreatedAt:       now,
		LastActivityAt:  now,
		ExpiresAt:       now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, s); err != nil {
		return nil, err
	}
	m.transport.SetToken(w, s.Token)
	return s, nil
}

// Get loads the request's session and slides its expiry forward.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	s, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	now := m.now()
	if s.IsExpired(now) {
		_ = m.store.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	s.LastActivityAt = now
	s.ExpiresAt = now.Add(m.ttl)
	if err := m.store.Update(ctx, s); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, err
	}
	return s, nil
}

// Save persists changes made to s.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Update(ctx, s)
}

// Destroy deletes the request's session, if any, and clears the token on the
// client. It is safe to call without a session.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var err error
	if token, terr := m.transport.GetToken(r); terr == nil {
		err = m.store.Delete(ctx, token)
	}
	m.transport.ClearToken(w)
	return err
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
