// Package session keeps the gateway's server-side browser sessions.
//
// A Session binds an opaque random token to the upstream identity obtained at
// login (user id and access token), records how it was obtained, and carries
// per-session wizard state such as the highest main step reached. Sessions
// live only in the configured Store and expire after an idle TTL; nothing in
// them is written to disk by this package.
//
// The token reaches the client through a Transport. CookieTransport uses a
// browser-session cookie (no Expires attribute, so it ends with the browser
// session) that is separate from the long-lived remember-me cookie.
// HeaderTransport reads a bearer token for non-browser clients.
//
//	mgr := session.NewManager(session.NewMemoryStore(), session.WithTransport(
//	    session.NewCookieTransport("onboard_sid", true),
//	))
//
//	r.Group(func(r chi.Router) {
//	    r.Use(mgr.RequireAuth(unauthorized))
//	    r.Get("/api/onboarding/resume", resume)
//	})
package session
