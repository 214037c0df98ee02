package authz

import (
	"context"
	"time"
)

// PrincipalSource resolves a subject ID to a Principal with its organization
// context in a single joined read. found is false when no account matches
// (valid token, deleted referent).
type PrincipalSource interface {
	FindPrincipal(ctx context.Context, userID string) (p *Principal, found bool, err error)
}

// ResolvePrincipal looks up the subject's account. The read is bounded by
// timeout when positive; a store fault or timeout rejects as AUTH_ERROR.
func ResolvePrincipal(ctx context.Context, src PrincipalSource, subject string, timeout time.Duration) (*Principal, *Error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	p, found, err := src.FindPrincipal(ctx, subject)
	if err != nil {
		return nil, AuthFault(err)
	}
	if !found {
		return nil, ErrUserNotFound
	}
	return p, nil
}
