package authz

// CheckRole verifies the principal's role is in the allow-set fixed at route
// registration. A nil principal indicates a misordered pipeline and rejects
// as UNAUTHORIZED; a role outside the set rejects as FORBIDDEN. Pure, no I/O.
func CheckRole(p *Principal, allowed ...Role) *Error {
	if p == nil {
		return ErrUnauthorized
	}
	for _, r := range allowed {
		if p.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
