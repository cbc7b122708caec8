package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultmarkets/onboarding/binder"
	"github.com/vaultmarkets/onboarding/handler"
)

// Handle mounts the account routes. Credential endpoints sit behind the
// configured rate limit; logout does not.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		if h.rateLimit != nil {
			r.Use(h.rateLimit)
		}

		r.Post("/login", handler.Wrap(h.login,
			handler.WithBinders[handler.Context, LoginRequest](binder.JSON(), binder.Validate()),
			handler.WithErrorHandler[handler.Context, LoginRequest](h.errorHandler),
		))
		r.Post("/register", handler.Wrap(h.register,
			handler.WithBinders[handler.Context, RegisterRequest](binder.JSON(), binder.Validate()),
			handler.WithErrorHandler[handler.Context, RegisterRequest](h.errorHandler),
		))
		r.Post("/forgot-password", handler.Wrap(h.forgotPassword,
			handler.WithBinders[handler.Context, ForgotPasswordRequest](binder.JSON(), binder.Validate()),
			handler.WithErrorHandler[handler.Context, ForgotPasswordRequest](h.errorHandler),
		))
		r.Post("/auto-login", handler.Wrap(h.autoLogin,
			handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
		))
	})

	r.Post("/logout", handler.Wrap(h.logout,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))

	return r
}
