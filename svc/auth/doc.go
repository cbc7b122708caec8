// Package auth signs users in against the upstream CRM and runs the
// remember-me auto-login protocol.
//
// AutoLogin is a one-shot state machine over the sealed login_creds cookie:
//
//	Start -> HasCookie -> Unseal -> Split -> Reauthenticate -> Success
//	                 \         \        \            \
//	                  NoCredentials   Fail(corrupt | malformed | rejected)
//
// Every failure is reported to callers as the same ErrAutoLoginFailed and
// comes with a directive that clears the cookie. The specific FailReason is
// logged and never rendered, so a client cannot tell a tampered cookie from
// a changed password. The upstream login is attempted at most once per call.
package auth
