// Package seal provides authenticated symmetric encryption of short UTF-8
// payloads under a server-held secret.
//
// A 32-byte AES-256 key is derived from a secret of any length using
// HKDF-SHA-256 with a fixed info string, so the same secret always yields the
// same key. Each call to Seal draws a fresh 12-byte nonce from crypto/rand and
// encrypts with AES-256-GCM without associated data.
//
// # Blob layout
//
// The sealed blob is the concatenation
//
//	nonce (12 bytes) ‖ tag (16 bytes) ‖ ciphertext
//
// encoded with unpadded URL-safe base64 so it can travel in a cookie value
// without further escaping. Unseal splits the decoded bytes by those fixed
// offsets.
//
// # Usage
//
//	import "github.com/vaultmarkets/onboarding/pkg/seal"
//
//	blob, err := seal.Seal("alice@example.com:hunter2", secret)
//	if err != nil {
//	    // handle error
//	}
//
//	plain, err := seal.Unseal(blob, secret)
//	if errors.Is(err, seal.ErrIntegrity) {
//	    // tampered, truncated, or sealed under another secret
//	}
//
// # Error Handling
//
// Unseal never returns partial plaintext. Any decoding, length, or
// authentication failure is reported as ErrIntegrity joined with the
// underlying cause. Rotating the secret therefore invalidates every blob sealed
// under the previous one.
package seal
