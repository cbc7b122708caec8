package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaultmarkets/onboarding/binder"
	"github.com/vaultmarkets/onboarding/pkg/logger"
	"github.com/vaultmarkets/onboarding/pkg/requestid"
)

// classify maps binding errors onto HTTP errors. Unknown errors pass through
// and render as 500.
func classify(err error) error {
	switch {
	case errors.Is(err, binder.ErrMissingContentType), errors.Is(err, binder.ErrUnsupportedMediaType):
		return errors.Join(ErrUnsupportedMedia, err)
	case errors.Is(err, binder.ErrBodyTooLarge):
		return errors.Join(ErrRequestTooLarge, err)
	case errors.Is(err, binder.ErrInvalidJSON):
		return errors.Join(ErrBadRequest, err)
	}
	return err
}

func logLevel(status int) slog.Level {
	if status < http.StatusInternalServerError {
		return slog.LevelWarn
	}
	return slog.LevelError
}

// NewErrorHandler returns the JSON error handler used by every endpoint. It
// logs the underlying error with the request id and renders a client-safe
// envelope.
func NewErrorHandler(log *slog.Logger) ErrorHandler[Context] {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx Context, err error) {
		r := ctx.Request()
		status := http.StatusOK
		err = classify(err)
		detail := errorToDetail(err, &status)

		log.LogAttrs(r.Context(), logLevel(status), "request error",
			logger.RequestID(requestid.FromContext(r.Context())),
			logger.Error(err),
			slog.Int("status_code", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("error_handler"),
		)

		resp := jsonResponse{status: status, body: JSONResponse{Error: detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(r.Context(), "failed to render error response",
				logger.RequestID(requestid.FromContext(r.Context())),
				logger.Error(renderErr),
				logger.Event("render_error"),
			)
		}
	}
}
