package authz

import (
	"errors"
	"strings"

	"spacehub/backend/internal/security"
)

// CredentialVerifier validates a signed access token and yields its subject.
// Implemented by security.TokenProvider.
type CredentialVerifier interface {
	VerifyAccess(token string) (subject string, err error)
}

// ExtractBearer returns the bearer token from an Authorization header value:
// the second whitespace-delimited segment. Rejects with NO_TOKEN when the
// header is empty or has no token segment.
func ExtractBearer(header string) (string, *Error) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", ErrNoToken
	}
	return fields[1], nil
}

// VerifyCredential extracts and verifies the bearer token from the given
// Authorization header value. On success it returns the subject user ID.
// Expiry and malformed/forged tokens reject with distinct codes.
func VerifyCredential(verifier CredentialVerifier, header string) (string, *Error) {
	token, aerr := ExtractBearer(header)
	if aerr != nil {
		return "", aerr
	}
	subject, err := verifier.VerifyAccess(token)
	if err != nil {
		switch {
		case errors.Is(err, security.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, security.ErrInvalidToken):
			return "", ErrInvalidToken
		default:
			return "", AuthFault(err)
		}
	}
	return subject, nil
}
