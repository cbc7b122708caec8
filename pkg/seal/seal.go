package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// NonceSize is the length of the random GCM nonce at the front of a blob.
	NonceSize = 12
	// TagSize is the length of the GCM authentication tag that follows the nonce.
	TagSize   = 16
)

var encoding = base64.RawURLEncoding

// Seal encrypts plaintext under secret and returns the encoded blob
// nonce ‖ tag ‖ ciphertext. Two calls with the same input produce different
// blobs.
func Seal(plaintext, secret string) (string, error) {
	aead, err := newAEAD(secret)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrSealFailed, err)
	}

	// GCM appends the tag to the ciphertext; move it in front.
	sealed := aead.Seal(nil, nonce, []byte(plaintext), nil)
	ctLen := len(sealed) - TagSize

	out := make([]byte, 0, NonceSize+len(sealed))
	out = append(out, nonce...)
	out = append(out, sealed[ctLen:]...)
	out = append(out, sealed[:ctLen]...)

	return encoding.EncodeToString(out), nil
}

// Unseal reverses Seal. It returns ErrIntegrity if the blob cannot be decoded,
// is too short, or fails authentication.
func Unseal(blob, secret string) (string, error) {
	aead, err := newAEAD(secret)
	if err != nil {
		return "", err
	}

	raw, err := encoding.DecodeString(blob)
	if err != nil {
		return "", errors.Join(ErrIntegrity, err)
	}
	if len(raw) < NonceSize+TagSize {
		return "", fmt.Errorf("%w: blob is %d bytes, need at least %d", ErrIntegrity, len(raw), NonceSize+TagSize)
	}

	nonce := raw[:NonceSize]
	tag := raw[NonceSize : NonceSize+TagSize]
	ct := raw[NonceSize+TagSize:]

	// Rebuild the ciphertext ‖ tag layout GCM expects.
	buf := make([]byte, 0, len(ct)+TagSize)
	buf = append(buf, ct...)
	buf = append(buf, tag...)

	plain, err := aead.Open(nil, nonce, buf, nil)
	if err != nil {
		return "", errors.Join(ErrIntegrity, err)
	}

	return string(plain), nil
}

func newAEAD(secret string) (cipher.AEAD, error) {
	key, err := DeriveKey(secret)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, errors.Join(ErrSealFailed, err)
	}

	return aead, nil
}
