package seal

import "errors"

var (
	ErrEmptySecret         = errors.New("seal: empty secret")
	ErrKeyDerivationFailed = errors.New("seal: key derivation failed")
	ErrSealFailed          = errors.New("seal: encryption failed")

	// ErrIntegrity covers every reason a blob cannot be opened:
	// bad encoding, short input, or authentication tag mismatch.
	ErrIntegrity = errors.New("seal: integrity check failed")
)
