package account

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaultmarkets/onboarding/handler"
	"github.com/vaultmarkets/onboarding/modules/wizard"
	"github.com/vaultmarkets/onboarding/pkg/cookie"
	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/pkg/session"
	"github.com/vaultmarkets/onboarding/svc/auth"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

// Handler serves sign-in, registration, password reset, auto-login and
// logout.
type Handler struct {
	auth         *auth.Service
	sessions     *session.Manager
	resolver     *onboarding.Resolver
	graph        *onboarding.Graph
	rateLimit    func(http.Handler) http.Handler
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithRateLimit guards the credential endpoints with mw.
func WithRateLimit(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) { h.rateLimit = mw }
}

// WithLogger sets the handler logger.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithErrorHandler replaces the JSON error renderer.
func WithErrorHandler(eh handler.ErrorHandler[handler.Context]) Option {
	return func(h *Handler) {
		if eh != nil {
			h.errorHandler = eh
		}
	}
}

// NewHandler wires the account endpoints.
func NewHandler(
	authSvc *auth.Service,
	sessions *session.Manager,
	resolver *onboarding.Resolver,
	graph *onboarding.Graph,
	opts ...Option,
) *Handler {
	h := &Handler{
		auth:     authSvc,
		sessions: sessions,
		resolver: resolver,
		graph:    graph,
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.log)
	}
	return h
}

var (
	errInvalidCredentials = handler.NewHTTPError(http.StatusUnauthorized, "invalid_credentials")
	errRegistrationFailed = handler.NewHTTPError(http.StatusConflict, "registration_failed")
	errUpstream           = handler.NewHTTPError(http.StatusServiceUnavailable, "upstream_unavailable")
	errInvalidEmail       = handler.NewHTTPError(http.StatusUnprocessableEntity, "invalid_email")
)

// resetRequested is returned whether or not the address has an account.
const resetRequested = "If the address is registered, a reset link is on its way."

// SignInResponse is returned by every endpoint that establishes a session.
type SignInResponse struct {
	UserID    string            `json:"user_id"`
	IssuedVia string            `json:"issued_via"`
	Resume    wizard.ResumeView `json:"resume"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,max=256"`
	RememberMe bool   `json:"remember_me"`
}

func (h *Handler) login(ctx handler.Context, req LoginRequest) handler.Response {
	res, err := h.auth.Login(ctx, req.Email, req.Password, req.RememberMe)
	if err != nil {
		return handler.JSONError(signInError(err))
	}
	return h.establish(ctx, res)
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email,max=254"`
	Password   string `json:"password" validate:"required,min=8,max=256"`
	Currency   string `json:"currency" validate:"required,len=3,alpha"`
	CountryID  string `json:"country_id" validate:"omitempty,max=16"`
	RememberMe bool   `json:"remember_me"`
}

func (h *Handler) register(ctx handler.Context, req RegisterRequest) handler.Response {
	res, err := h.auth.Register(ctx, auth.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		Currency:  req.Currency,
		CountryID: req.CountryID,
	}, req.RememberMe)
	if err != nil {
		if errors.Is(err, auth.ErrRegistrationFailed) {
			return handler.JSONError(errors.Join(errRegistrationFailed, err))
		}
		return handler.JSONError(signInError(err))
	}
	return h.establish(ctx, res)
}

// ForgotPasswordRequest is the body of POST /forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// ForgotPasswordResponse acknowledges a reset request.
type ForgotPasswordResponse struct {
	Message string `json:"message"`
}

func (h *Handler) forgotPassword(ctx handler.Context, req ForgotPasswordRequest) handler.Response {
	if err := h.auth.ForgotPassword(ctx, req.Email); err != nil {
		if errors.Is(err, auth.ErrInvalidEmail) {
			return handler.JSONError(errors.Join(errInvalidEmail, err))
		}
		return handler.JSONError(errors.Join(errUpstream, err))
	}
	return handler.JSON(ForgotPasswordResponse{Message: resetRequested}, handler.WithJSONStatus(http.StatusAccepted))
}

// autoLogin signs the user in from the remember-me cookie. A missing cookie
// and a failed attempt produce the same 401; a failed attempt also clears the
// cookie and ends any session already on the request together with that
// user's saved progress.
func (h *Handler) autoLogin(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()
	value, _ := h.auth.Cookies().Read(r)

	res, err := h.auth.AutoLogin(ctx, value)
	if err != nil {
		if existing, gerr := h.sessions.Get(ctx, r); gerr == nil {
			h.auth.ForgetProgress(ctx, existing.UserID)
		}
		if derr := h.sessions.Destroy(ctx, ctx.ResponseWriter(), r); derr != nil {
			h.log.ErrorContext(ctx, "failed to destroy session",
				logger.Component("account"),
				logger.Error(derr),
			)
		}
		resp := handler.JSONError(handler.ErrNotAuthenticated)
		if res.Cookie != nil {
			resp = handler.WithCookies(resp, res.Cookie.Cookie())
		}
		return resp
	}
	if res.State != auth.StateSuccess {
		return handler.JSONError(handler.ErrNotAuthenticated)
	}
	return h.establish(ctx, res)
}

// logout always succeeds locally: it clears the remember-me cookie, the
// user's saved progress and the session, whatever the upstream says.
func (h *Handler) logout(ctx handler.Context, _ struct{}) handler.Response {
	r := ctx.Request()

	var d cookie.Directive
	if sess, err := h.sessions.Get(ctx, r); err == nil {
		d = h.auth.Logout(ctx, auth.Session{
			UserID:      sess.UserID,
			AccessToken: sess.AccessToken,
			IssuedVia:   auth.IssuedVia(sess.IssuedVia),
		})
	} else {
		d = h.auth.Cookies().Clear()
	}

	if err := h.sessions.Destroy(ctx, ctx.ResponseWriter(), r); err != nil {
		h.log.ErrorContext(ctx, "failed to destroy session",
			logger.Component("account"),
			logger.Error(err),
		)
	}
	return handler.WithCookies(handler.Empty(), d.Cookie())
}

// establish starts a web session for a successful sign-in and resolves where
// the wizard resumes.
func (h *Handler) establish(ctx handler.Context, res auth.Result) handler.Response {
	sess, err := h.sessions.Start(ctx, ctx.ResponseWriter(), ctx.Request(), session.Session{
		UserID:      res.Session.UserID,
		AccessToken: res.Session.AccessToken,
		IssuedVia:   res.Session.IssuedVia.String(),
	})
	if err != nil {
		return handler.JSONError(err)
	}

	resolution := h.resolver.Resolve(ctx, sess.UserID, sess.HighestMainStep)
	sess.RaiseWatermark(resolution.HighestMainStep)
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.log.ErrorContext(ctx, "failed to save session watermark",
			logger.Component("account"),
			logger.UserID(sess.UserID),
			logger.Error(err),
		)
	}

	body := handler.JSON(SignInResponse{
		UserID:    sess.UserID,
		IssuedVia: sess.IssuedVia,
		Resume:    wizard.NewResumeView(h.graph, resolution),
	})
	if res.Cookie != nil {
		return handler.WithCookies(body, res.Cookie.Cookie())
	}
	return body
}

func signInError(err error) error {
	if auth.IsCredentialError(err) {
		return errors.Join(errInvalidCredentials, err)
	}
	return errors.Join(errUpstream, err)
}
