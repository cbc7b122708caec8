package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrMissingContentType   = errors.New("missing content type")
	ErrBodyTooLarge         = errors.New("request body too large")
	// ErrBinderNotApplicable tells the handler to skip a binder for this
	// request, for example a body binder on a GET.
	ErrBinderNotApplicable = errors.New("binder not applicable")
)
