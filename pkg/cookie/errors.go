package cookie

import "errors"

var (
	ErrNoSecret               = errors.New("cookie.no_secret")
	ErrInvalidEmail           = errors.New("cookie.invalid_email")
	ErrMalformedCredentials   = errors.New("cookie.malformed_credentials")
	ErrCorruptCredentials     = errors.New("cookie.corrupt_credentials")
	ErrCredentialsNotProvided = errors.New("cookie.credentials_not_provided")
)
