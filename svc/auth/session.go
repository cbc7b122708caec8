package auth

// IssuedVia records how a session was established.
type IssuedVia string

const (
	IssuedViaPassword     IssuedVia = "password-login"
	IssuedViaAutoLogin    IssuedVia = "auto-login"
	IssuedViaRegistration IssuedVia = "post-registration"
)

// String returns the wire value.
func (v IssuedVia) String() string { return string(v) }

// Session is the authenticated identity handed to the web layer.
type Session struct {
	UserID      string
	AccessToken string
	IssuedVia   IssuedVia
}
