package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vaultmarkets/onboarding/pkg/cookie"
	"github.com/vaultmarkets/onboarding/pkg/logger"
)

// ProgressClearer drops a user's saved onboarding answers.
type ProgressClearer interface {
	Clear(ctx context.Context, userID string) error
}

// Service signs users in and out against an IdentityProvider and manages the
// remember-me cookie around it.
type Service struct {
	provider IdentityProvider
	cookies  *cookie.Manager
	progress ProgressClearer
	log      *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for failure reasons and best-effort errors.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService wires a Service. progress is cleared on logout and on failed
// auto-login.
func NewService(provider IdentityProvider, cookies *cookie.Manager, progress ProgressClearer, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		cookies:  cookies,
		progress: progress,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Cookies returns the remember-me cookie manager.
func (s *Service) Cookies() *cookie.Manager { return s.cookies }

// Login signs a user in with email and password. With rememberMe the result
// carries a directive storing the sealed credentials. A remember-me cookie
// that cannot be built is logged and skipped; the sign-in still succeeds.
func (s *Service) Login(ctx context.Context, email, password string, rememberMe bool) (Result, error) {
	return s.login(ctx, email, password, rememberMe, IssuedViaPassword)
}

// Register opens an upstream account and signs the new user in.
func (s *Service) Register(ctx context.Context, p RegisterParams, rememberMe bool) (Result, error) {
	p.Email = strings.TrimSpace(p.Email)
	if p.Email == "" || p.Password == "" {
		return Result{State: StateFailed}, ErrMissingCredentials
	}

	if err := s.provider.Register(ctx, p); err != nil {
		s.log.WarnContext(ctx, "registration failed",
			logger.Component("auth"),
			logger.Event("register"),
			logger.Error(err),
		)
		return Result{State: StateFailed}, err
	}

	return s.login(ctx, p.Email, p.Password, rememberMe, IssuedViaRegistration)
}

func (s *Service) login(ctx context.Context, email, password string, rememberMe bool, via IssuedVia) (Result, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return Result{State: StateFailed}, ErrMissingCredentials
	}

	id, err := s.provider.Login(ctx, email, password)
	if err != nil {
		s.log.WarnContext(ctx, "login failed",
			logger.Component("auth"),
			logger.Event("login"),
			logger.IssuedVia(via.String()),
			logger.Error(err),
		)
		return Result{State: StateFailed}, err
	}

	res := Result{
		State:   StateSuccess,
		Session: Session{UserID: id.UserID, AccessToken: id.AccessToken, IssuedVia: via},
	}

	if rememberMe {
		d, err := s.cookies.RememberMe(email, password)
		if err != nil {
			s.log.WarnContext(ctx, "remember-me cookie not issued",
				logger.Component("auth"),
				logger.UserID(id.UserID),
				logger.Error(err),
			)
		} else {
			res.Cookie = &d
		}
	}

	s.log.InfoContext(ctx, "login succeeded",
		logger.Component("auth"),
		logger.Event("login"),
		logger.UserID(id.UserID),
		logger.IssuedVia(via.String()),
	)
	return res, nil
}

// Logout ends sess upstream, forgets the user's onboarding progress and
// returns a directive clearing the remember-me cookie. Upstream and store
// failures are logged; the local logout always completes.
func (s *Service) Logout(ctx context.Context, sess Session) cookie.Directive {
	if sess.UserID != "" && sess.AccessToken != "" {
		if err := s.provider.Logout(ctx, sess.UserID, sess.AccessToken); err != nil {
			s.log.WarnContext(ctx, "upstream logout failed",
				logger.Component("auth"),
				logger.Event("logout"),
				logger.UserID(sess.UserID),
				logger.Error(err),
			)
		}
	}

	s.ForgetProgress(ctx, sess.UserID)

	s.log.InfoContext(ctx, "logged out",
		logger.Component("auth"),
		logger.Event("logout"),
		logger.UserID(sess.UserID),
	)
	return s.cookies.Clear()
}

// ForgetProgress clears the saved onboarding progress of userID. Errors are
// logged.
func (s *Service) ForgetProgress(ctx context.Context, userID string) {
	if userID == "" || s.progress == nil {
		return
	}
	if err := s.progress.Clear(ctx, userID); err != nil {
		s.log.ErrorContext(ctx, "failed to clear onboarding progress",
			logger.Component("auth"),
			logger.UserID(userID),
			logger.Error(err),
		)
	}
}

// ForgotPassword starts a password reset for email. An address the provider
// does not know is logged and reported as success so the endpoint cannot be
// used to discover accounts.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrInvalidEmail
	}

	err := s.provider.ForgotPassword(ctx, email)
	switch {
	case err == nil:
		s.log.InfoContext(ctx, "password reset requested",
			logger.Component("auth"),
			logger.Event("forgot_password"),
		)
		return nil
	case errors.Is(err, ErrUnknownAccount):
		s.log.InfoContext(ctx, "password reset for unknown account",
			logger.Component("auth"),
			logger.Event("forgot_password"),
			logger.Reason("unknown_account"),
		)
		return nil
	default:
		s.log.WarnContext(ctx, "password reset failed",
			logger.Component("auth"),
			logger.Event("forgot_password"),
			logger.Error(err),
		)
		return err
	}
}

// IsCredentialError reports whether err means the user supplied bad or
// missing credentials rather than the upstream being unavailable.
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrMissingCredentials) ||
		errors.Is(err, ErrRegistrationFailed)
}
