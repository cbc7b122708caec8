package auth

import (
	"context"
	"errors"
	"time"

	"github.com/vaultmarkets/onboarding/pkg/cookie"
	"github.com/vaultmarkets/onboarding/pkg/logger"
)

// State is the terminal state of a sign-in attempt.
type State string

const (
	StateNoCredentials State = "no_credentials"
	StateSuccess       State = "success"
	StateFailed        State = "failed"
)

// FailReason is an internal failure code. It goes to logs only.
type FailReason string

const (
	FailCorruptCredentials   FailReason = "corrupt_credentials"
	FailMalformedCredentials FailReason = "malformed_credentials"
	FailUpstreamRejected     FailReason = "upstream_rejected"
)

// Result is the outcome of a sign-in attempt.
type Result struct {
	State   State
	Session Session
	Reason  FailReason
	// Cookie, when set, must be written to the response. It either stores
	// fresh remember-me credentials or clears stale ones.
	Cookie *cookie.Directive
}

// AutoLogin signs a user in from the value of the remember-me cookie.
//
// An empty value yields StateNoCredentials and no error. Any failure past
// that point yields ErrAutoLoginFailed together with a Result that carries
// the reason and a directive clearing the cookie.
func (s *Service) AutoLogin(ctx context.Context, cookieValue string) (Result, error) {
	if cookieValue == "" {
		return Result{State: StateNoCredentials}, nil
	}

	started := time.Now()

	email, password, err := s.cookies.Open(cookieValue)
	if err != nil {
		reason := FailCorruptCredentials
		if errors.Is(err, cookie.ErrMalformedCredentials) {
			reason = FailMalformedCredentials
		}
		return s.failAutoLogin(ctx, reason, err, started)
	}

	id, err := s.provider.Login(ctx, email, password)
	if err != nil {
		return s.failAutoLogin(ctx, FailUpstreamRejected, err, started)
	}

	sess := Session{UserID: id.UserID, AccessToken: id.AccessToken, IssuedVia: IssuedViaAutoLogin}
	s.log.InfoContext(ctx, "auto-login succeeded",
		logger.Component("auth"),
		logger.Event("auto_login"),
		logger.UserID(sess.UserID),
		logger.Duration(time.Since(started)),
	)
	return Result{State: StateSuccess, Session: sess}, nil
}

func (s *Service) failAutoLogin(ctx context.Context, reason FailReason, cause error, started time.Time) (Result, error) {
	s.log.WarnContext(ctx, "auto-login failed",
		logger.Component("auth"),
		logger.Event("auto_login"),
		logger.Reason(string(reason)),
		logger.Error(cause),
		logger.Duration(time.Since(started)),
	)
	d := s.cookies.Clear()
	return Result{State: StateFailed, Reason: reason, Cookie: &d}, ErrAutoLoginFailed
}
