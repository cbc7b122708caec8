package auth

import "errors"

var (
	ErrAutoLoginFailed     = errors.New("auth.auto_login_failed")
	ErrInvalidCredentials  = errors.New("auth.invalid_credentials")
	ErrInvalidEmail        = errors.New("auth.invalid_email")
	ErrMissingCredentials  = errors.New("auth.missing_credentials")
	ErrProviderUnavailable = errors.New("auth.provider_unavailable")
	ErrRegistrationFailed  = errors.New("auth.registration_failed")
	ErrUnknownAccount      = errors.New("auth.unknown_account")
)
