package session

import (
	"net/http"
	"strings"
)

// Transport moves the session token between client and server.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string)
	ClearToken(w http.ResponseWriter)
}

// CookieTransport carries the token in a browser-session cookie.
type CookieTransport struct {
	name   string
	secure bool
}

// NewCookieTransport returns a transport using the cookie name.
func NewCookieTransport(name string, secure bool) *CookieTransport {
	return &CookieTransport{name: name, secure: secure}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	c, err := r.Cookie(t.name)
	if err != nil || c.Value == "" {
		return "", ErrSessionNotFound
	}
	return c.Value, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HeaderTransport reads "Authorization: Bearer <token>" and echoes new tokens
// in a response header.
type HeaderTransport struct {
	responseHeader string
}

// NewHeaderTransport returns a transport that echoes new tokens in
// responseHeader.
func NewHeaderTransport(responseHeader string) *HeaderTransport {
	return &HeaderTransport{responseHeader: responseHeader}
}

func (t *HeaderTransport) GetToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", ErrSessionNotFound
	}
	return strings.TrimSpace(token), nil
}

func (t *HeaderTransport) SetToken(w http.ResponseWriter, token string) {
	w.Header().Set(t.responseHeader, token)
}

func (t *HeaderTransport) ClearToken(w http.ResponseWriter) {
	w.Header().Del(t.responseHeader)
}

// CompositeTransport tries each transport in order when reading and writes
// through all of them.
type CompositeTransport []Transport

func (c CompositeTransport) GetToken(r *http.Request) (string, error) {
	for _, t := range c {
		if token, err := t.GetToken(r); err == nil {
			return token, nil
		}
	}
	return "", ErrSessionNotFound
}

func (c CompositeTransport) SetToken(w http.ResponseWriter, token string) {
	for _, t := range c {
		t.SetToken(w, token)
	}
}

func (c CompositeTransport) ClearToken(w http.ResponseWriter) {
	for _, t := range c {
		t.ClearToken(w)
	}
}
