package cookie

import (
	"net/http"
	"time"
)

// Directive is a transport-neutral description of a cookie to set or clear.
type Directive struct {
	Name      string
	Value     string
	Path      string
	Domain    string
	ExpiresAt time.Time
	MaxAge    int
	HTTPOnly  bool
	Secure    bool
	SameSite  http.SameSite
}

// Cookie converts the directive to an http.Cookie.
func (d Directive) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     d.Name,
		Value:    d.Value,
		Path:     d.Path,
		Domain:   d.Domain,
		Expires:  d.ExpiresAt,
		MaxAge:   d.MaxAge,
		HttpOnly: d.HTTPOnly,
		Secure:   d.Secure,
		SameSite: d.SameSite,
	}
}

// IsClear reports whether the directive removes the cookie.
func (d Directive) IsClear() bool {
	return d.Value == "" && d.MaxAge < 0
}

// Write attaches the directive to the response.
func Write(w http.ResponseWriter, d Directive) {
	http.SetCookie(w, d.Cookie())
}
