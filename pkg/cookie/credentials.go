package cookie

import "strings"

const separator = ":"

// EncodeCredentials joins email and password into the sealed payload format.
func EncodeCredentials(email, password string) string {
	return email + separator + password
}

// DecodeCredentials splits a payload on the first colon.
// Either part being empty yields ErrMalformedCredentials.
func DecodeCredentials(payload string) (email, password string, err error) {
	email, password, ok := strings.Cut(payload, separator)
	if !ok || email == "" || password == "" {
		return "", "", ErrMalformedCredentials
	}
	return email, password, nil
}
