// Package middleware adapts the authorization gates to the Gin request
// pipeline. Gates run in an explicit ordered chain; the first rejection
// aborts the request with the structured error body and no later gate or
// handler runs.
package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"spacehub/backend/internal/platform/authz"
	"spacehub/backend/internal/server/respond"
	"spacehub/backend/pkg/logger"
)

// State carries the per-request authorization facts. Principal is set iff
// authentication succeeded; Decision iff the space access check succeeded.
// Discarded with the request.
type State struct {
	Principal *authz.Principal
	Decision  *authz.Decision
}

// Gate inspects the request and either annotates the state or rejects.
type Gate func(c *gin.Context, st *State) *authz.Error

const stateKey = "spacehub.authState"

// Chain returns a handler that applies gates in order, stopping at the first
// rejection. State is shared across all chains on the same request.
func Chain(gates ...Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := stateFor(c)
		for _, g := range gates {
			if aerr := g(c, st); aerr != nil {
				reject(c, aerr)
				return
			}
		}
		c.Next()
	}
}

func stateFor(c *gin.Context) *State {
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(*State); ok {
			return st
		}
	}
	st := &State{}
	c.Set(stateKey, st)
	return st
}

// reject emits the structured error response. Infrastructure faults are
// logged with their real cause; the client only sees the generic message.
func reject(c *gin.Context, aerr *authz.Error) {
	if aerr.Status >= 500 {
		attrs := []slog.Attr{slog.String("code", string(aerr.Code))}
		if cause := aerr.Unwrap(); cause != nil {
			attrs = append(attrs, slog.String("error", cause.Error()))
		}
		logger.ErrorContext(c.Request.Context(), "authorization pipeline fault", attrs...)
	}
	respond.AbortError(c, aerr.Status, string(aerr.Code), aerr.Message)
}

// PrincipalFrom returns the authenticated principal for this request, if any.
func PrincipalFrom(c *gin.Context) (*authz.Principal, bool) {
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(*State); ok && st.Principal != nil {
			return st.Principal, true
		}
	}
	return nil, false
}

// DecisionFrom returns the space access decision for this request, if any.
func DecisionFrom(c *gin.Context) (*authz.Decision, bool) {
	if v, ok := c.Get(stateKey); ok {
		if st, ok := v.(*State); ok && st.Decision != nil {
			return st.Decision, true
		}
	}
	return nil, false
}
