// Package binder decodes and validates HTTP request bodies for the handler
// package. Binders share one signature and are applied in order; a binder
// that does not apply to a request returns ErrBinderNotApplicable and is
// skipped.
package binder
