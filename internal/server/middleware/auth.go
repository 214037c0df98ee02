package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"spacehub/backend/internal/platform/authz"
)

// Authenticate verifies the bearer credential from the Authorization header
// and resolves the subject to a Principal via a single joined store read.
// No store access happens for requests without a token.
func Authenticate(tokens authz.CredentialVerifier, users authz.PrincipalSource, storeTimeout time.Duration) Gate {
	return func(c *gin.Context, st *State) *authz.Error {
		subject, aerr := authz.VerifyCredential(tokens, c.GetHeader("Authorization"))
		if aerr != nil {
			return aerr
		}
		p, aerr := authz.ResolvePrincipal(c.Request.Context(), users, subject, storeTimeout)
		if aerr != nil {
			return aerr
		}
		st.Principal = p
		return nil
	}
}

// RequireRole checks the principal's role against the allow-set fixed at
// route registration.
func RequireRole(roles ...authz.Role) Gate {
	return func(c *gin.Context, st *State) *authz.Error {
		return authz.CheckRole(st.Principal, roles...)
	}
}

// RequireSpaceAccess resolves space access at the given permission level. The
// space ID comes from the spaceId path parameter, or the spaceId body field
// when the route carries none. Missing both rejects before any store read.
func RequireSpaceAccess(checker *authz.SpaceAccessChecker, permission string) Gate {
	return func(c *gin.Context, st *State) *authz.Error {
		if st.Principal == nil {
			return authz.ErrUnauthorized
		}
		spaceID := spaceIDFrom(c)
		if spaceID == "" {
			return authz.ErrMissingSpaceID
		}
		d, aerr := checker.Check(c.Request.Context(), st.Principal, spaceID, permission)
		if aerr != nil {
			return aerr
		}
		st.Decision = d
		return nil
	}
}

// spaceIDFrom extracts the space ID from the path parameter or, failing that,
// the request body. The body is restored so handlers can still bind it.
func spaceIDFrom(c *gin.Context) string {
	if id := c.Param("spaceId"); id != "" {
		return id
	}
	if c.Request.Body == nil {
		return ""
	}
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(data))
	var body struct {
		SpaceID string `json:"spaceId"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	return body.SpaceID
}
