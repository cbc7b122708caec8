// Package handler provides type-safe JSON HTTP handlers.
//
// A HandlerFunc receives a Context and a typed request value produced by the
// configured binders, and returns a Response. Wrap turns it into an
// http.HandlerFunc:
//
//	type NavigateRequest struct {
//		Step string `json:"step" validate:"required"`
//	}
//
//	func (h *Handler) navigate(ctx handler.Context, req NavigateRequest) handler.Response {
//		move, err := h.navigator.Navigate(ctx, userID, highest, step)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(move)
//	}
//
//	r.Post("/navigate", handler.Wrap(h.navigate,
//		handler.WithBinders[handler.Context, NavigateRequest](binder.JSON(), binder.Validate()),
//		handler.WithErrorHandler[handler.Context, NavigateRequest](errorHandler),
//	))
//
// # Errors
//
// Binding and rendering failures go to the ErrorHandler. NewErrorHandler logs
// them and renders the JSON error envelope. HTTPError values choose the
// status code and machine-readable code; binder.ValidationError becomes a 422
// with per-field details. Any other error is reported as a generic 500 and its
// message is never sent to the client.
//
// # Responses
//
// JSON and JSONError render the {"data", "meta", "error"} envelope. Empty
// writes a status with no body. WithCookies attaches cookies to any Response.
package handler
