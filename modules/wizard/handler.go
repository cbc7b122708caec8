package wizard

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultmarkets/onboarding/binder"
	"github.com/vaultmarkets/onboarding/handler"
	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/pkg/session"
	"github.com/vaultmarkets/onboarding/svc/onboarding"
)

// Handler serves the wizard endpoints for signed-in users.
type Handler struct {
	progress     *onboarding.ProgressService
	resolver     *onboarding.Resolver
	navigator    *onboarding.Navigator
	sessions     *session.Manager
	reporter     StepReporter
	errorHandler handler.ErrorHandler[handler.Context]
	log          *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithReporter sets where completed main steps are reported.
func WithReporter(r StepReporter) Option {
	return func(h *Handler) {
		if r != nil {
			h.reporter = r
		}
	}
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

// NewHandler wires the wizard endpoints.
func NewHandler(
	progress *onboarding.ProgressService,
	resolver *onboarding.Resolver,
	navigator *onboarding.Navigator,
	sessions *session.Manager,
	opts ...Option,
) *Handler {
	h := &Handler{
		progress:  progress,
		resolver:  resolver,
		navigator: navigator,
		sessions:  sessions,
		reporter:  nopReporter{},
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.errorHandler == nil {
		h.errorHandler = handler.NewErrorHandler(h.log)
	}
	return h
}

// Handle mounts the wizard routes behind RequireAuth.
func (h *Handler) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(h.sessions.RequireAuth(handler.Handle(handler.JSONError(handler.ErrNotAuthenticated))))

	r.Get("/resume", handler.Wrap(h.resume,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Get("/progress", handler.Wrap(h.getProgress,
		handler.WithErrorHandler[handler.Context, struct{}](h.errorHandler),
	))
	r.Patch("/progress", handler.Wrap(h.mergeProgress,
		handler.WithBinders[handler.Context, MergeRequest](binder.JSON(), binder.Validate()),
		handler.WithErrorHandler[handler.Context, MergeRequest](h.errorHandler),
	))
	r.Put("/current-step", handler.Wrap(h.setCurrentStep,
		handler.WithBinders[handler.Context, CurrentStepRequest](binder.JSON(), binder.Validate()),
		handler.WithErrorHandler[handler.Context, CurrentStepRequest](h.errorHandler),
	))
	r.Post("/navigate", handler.Wrap(h.navigate,
		handler.WithBinders[handler.Context, NavigateRequest](binder.JSON(), binder.Validate()),
		handler.WithErrorHandler[handler.Context, NavigateRequest](h.errorHandler),
	))
	r.Post("/advance", handler.Wrap(h.advance,
		handler.WithBinders[handler.Context, AdvanceRequest](binder.JSON(), binder.Validate()),
		handler.WithErrorHandler[handler.Context, AdvanceRequest](h.errorHandler),
	))

	return r
}

var (
	errStepNotReached = handler.NewHTTPError(http.StatusForbidden, "step_not_reached")
	errStepIncomplete = handler.NewHTTPError(http.StatusUnprocessableEntity, "step_incomplete")
)

func (h *Handler) resume(ctx handler.Context, _ struct{}) handler.Response {
	sess, _ := session.FromContext(ctx)

	res := h.resolver.Resolve(ctx, sess.UserID, sess.HighestMainStep)
	h.raise(ctx, sess, res.HighestMainStep)

	return handler.JSON(NewResumeView(h.progress.Graph(), res))
}

func (h *Handler) getProgress(ctx handler.Context, _ struct{}) handler.Response {
	sess, _ := session.FromContext(ctx)

	p, err := h.progress.Load(ctx, sess.UserID)
	switch {
	case errors.Is(err, onboarding.ErrNotFound):
		return handler.JSON(newProgressView(&onboarding.Progress{}))
	case err != nil:
		return handler.JSONError(err)
	}
	return handler.JSON(newProgressView(p))
}

// MergeRequest carries answers to merge into saved progress.
type MergeRequest struct {
	Fields map[string]any `json:"fields" validate:"required"`
}

func (h *Handler) mergeProgress(ctx handler.Context, req MergeRequest) handler.Response {
	sess, _ := session.FromContext(ctx)

	p, err := h.progress.Merge(ctx, sess.UserID, req.Fields, sess.HighestMainStep)
	if err != nil {
		if errors.Is(err, onboarding.ErrInvalidField) {
			verr := binder.NewValidationError()
			verr.Add("fields", "contains an invalid field name")
			return handler.JSONError(verr)
		}
		return handler.JSONError(err)
	}
	return handler.JSON(newProgressView(p))
}

// CurrentStepRequest names a step by id or slug.
type CurrentStepRequest struct {
	Step string `json:"step" validate:"required,max=64"`
}

// setCurrentStep records the pointer. Unknown steps and steps past the
// session watermark are accepted and ignored.
func (h *Handler) setCurrentStep(ctx handler.Context, req CurrentStepRequest) handler.Response {
	sess, _ := session.FromContext(ctx)

	if err := h.progress.SetCurrentStep(ctx, sess.UserID, req.Step, sess.HighestMainStep); err != nil {
		return handler.JSONError(err)
	}
	return handler.Empty()
}

// NavigateRequest names the target either by step id or slug, or by main
// step number.
type NavigateRequest struct {
	Step     string `json:"step" validate:"required_without=MainStep,max=64"`
	MainStep int    `json:"main_step" validate:"omitempty,min=1,max=9"`
}

func (h *Handler) navigate(ctx handler.Context, req NavigateRequest) handler.Response {
	sess, _ := session.FromContext(ctx)
	graph := h.progress.Graph()

	var (
		move onboarding.Move
		err  error
	)
	if req.Step != "" {
		target, ok := graph.Lookup(req.Step)
		if !ok {
			return handler.JSONError(unknownStep("step"))
		}
		move, err = h.navigator.Navigate(ctx, sess.UserID, sess.HighestMainStep, target)
	} else {
		move, err = h.navigator.NavigateMain(ctx, sess.UserID, sess.HighestMainStep, req.MainStep)
	}
	if err != nil {
		return handler.JSONError(err)
	}

	return handler.JSON(h.moveView(move))
}

// AdvanceRequest names the step being left.
type AdvanceRequest struct {
	From string `json:"from" validate:"required,max=64"`
}

func (h *Handler) advance(ctx handler.Context, req AdvanceRequest) handler.Response {
	sess, _ := session.FromContext(ctx)
	graph := h.progress.Graph()

	from, ok := graph.Lookup(req.From)
	if !ok {
		return handler.JSONError(unknownStep("from"))
	}

	move, err := h.navigator.Advance(ctx, sess.UserID, sess.HighestMainStep, from)
	if err != nil {
		switch {
		case errors.Is(err, onboarding.ErrNavigationGuard):
			return handler.JSONError(errors.Join(errStepNotReached, err))
		case errors.Is(err, onboarding.ErrStepIncomplete):
			return handler.JSONError(errors.Join(errStepIncomplete, err))
		}
		return handler.JSONError(err)
	}

	h.raise(ctx, sess, move.HighestMainStep)

	if move.CompletedMain > 0 {
		if main, ok := graph.MainStep(move.CompletedMain); ok {
			h.reporter.ReportCompleted(ctx, sess, main)
		}
	}

	return handler.JSON(h.moveView(move))
}

func (h *Handler) moveView(m onboarding.Move) MoveView {
	v := MoveView{Moved: m.Moved}
	if m.Step != "" {
		v.ResumeView = stepView(h.progress.Graph(), m.Step, m.HighestMainStep)
	} else {
		v.HighestMainStep = m.HighestMainStep
	}
	return v
}

// raise lifts the session watermark and persists it. A failed save is
// logged; the watermark is recomputed on the next resume.
func (h *Handler) raise(ctx handler.Context, sess *session.Session, highest int) {
	if highest <= sess.HighestMainStep {
		return
	}
	sess.RaiseWatermark(highest)
	if err := h.sessions.Save(ctx, sess); err != nil {
		h.log.ErrorContext(ctx, "failed to save session watermark",
			logger.Component("wizard"),
			logger.UserID(sess.UserID),
			logger.Error(err),
		)
	}
}

func unknownStep(field string) binder.ValidationError {
	verr := binder.NewValidationError()
	verr.Add(field, "is not a known step")
	return verr
}
