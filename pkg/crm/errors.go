package crm

import "errors"

var (
	ErrMissingBaseURL = errors.New("crm: base url not configured")
	ErrMissingAPIKey  = errors.New("crm: api key not configured")
	ErrRejected       = errors.New("crm: request rejected")
	ErrUnavailable    = errors.New("crm: service unavailable")
	ErrUnknownEmail   = errors.New("crm: email not registered")
)
