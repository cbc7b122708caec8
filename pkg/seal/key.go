package seal

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the derived key length, AES-256.
	KeySize = 32

	// info provides domain separation for the derived key.
	info = "onboarding-seal-v1"
)

// DeriveKey turns a secret of any length into a 32-byte AES key.
// The result is deterministic for a given secret.
func DeriveKey(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	r := hkdf.New(sha256.New, []byte(secret), nil, []byte(info))

	key := make([]byte, KeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, errors.Join(ErrKeyDerivationFailed, err)
	}

	return key, nil
}

func clearBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
