// Package cookie builds and reads the remember-me credential cookie.
//
// The Manager is stateless. RememberMe seals the user's email and password
// under a server secret (see package seal) and returns a Directive describing
// a long-lived, HttpOnly, Secure, SameSite=Strict cookie. Clear returns a
// Directive that removes it. Open reverses RememberMe for a raw cookie value.
//
// The sealed payload uses the convention "email:password". Decoding splits on
// the first colon, so a password may contain colons but an email may not.
//
//	m, err := cookie.New(secret)
//	d, err := m.RememberMe("alice@example.com", "hunter2")
//	cookie.Write(w, d)
//
//	if v, ok := m.Read(r); ok {
//	    email, password, err := m.Open(v)
//	}
package cookie
