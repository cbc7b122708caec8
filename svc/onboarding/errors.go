package onboarding

import "errors"

var (
	ErrNotFound        = errors.New("onboarding.progress_not_found")
	ErrInvalidStep     = errors.New("onboarding.invalid_step")
	ErrEmptyUserID     = errors.New("onboarding.empty_user_id")
	ErrInvalidGraph    = errors.New("onboarding.invalid_graph")
	ErrStoreFailure    = errors.New("onboarding.store_failure")
	ErrUnknownBackend  = errors.New("onboarding.unknown_backend")
	ErrNavigationGuard = errors.New("onboarding.step_not_reached")
	ErrStepIncomplete  = errors.New("onboarding.step_incomplete")
)
