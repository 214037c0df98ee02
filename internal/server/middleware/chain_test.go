package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"spacehub/backend/internal/platform/authz"
	"spacehub/backend/internal/security"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeVerifier struct {
	subject string
	err     error
	calls   int
}

func (f *fakeVerifier) VerifyAccess(token string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.subject, nil
}

type fakePrincipals struct {
	p     *authz.Principal
	found bool
	err   error
	calls int
}

func (f *fakePrincipals) FindPrincipal(ctx context.Context, userID string) (*authz.Principal, bool, error) {
	f.calls++
	return f.p, f.found, f.err
}

type fakeMemberships struct {
	m     *authz.SpaceMembership
	found bool
	err   error
	calls int
}

func (f *fakeMemberships) FindSpaceMembership(ctx context.Context, spaceID, userID string) (*authz.SpaceMembership, bool, error) {
	f.calls++
	return f.m, f.found, f.err
}

type fakeSpaces struct {
	a     *authz.SpaceAccess
	found bool
	err   error
	calls int
}

func (f *fakeSpaces) FindSpaceAccess(ctx context.Context, spaceID string) (*authz.SpaceAccess, bool, error) {
	f.calls++
	return f.a, f.found, f.err
}

type errEnvelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errEnvelope {
	t.Helper()
	var env errEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return env
}

func principal() *authz.Principal {
	return &authz.Principal{ID: "u1", Email: "u1@example.com", Role: authz.RoleUser, OrgID: "org1"}
}

func admin() *authz.Principal {
	return &authz.Principal{ID: "a1", Email: "a1@example.com", Role: authz.RoleAdmin, OrgID: "org1"}
}

func TestAuthenticateNoTokenSkipsStore(t *testing.T) {
	verifier := &fakeVerifier{subject: "u1"}
	users := &fakePrincipals{p: principal(), found: true}

	r := gin.New()
	r.GET("/x", Chain(Authenticate(verifier, users, 0)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	env := decodeError(t, rec)
	if env.Success || env.Error.Code != "NO_TOKEN" {
		t.Fatalf("body = %+v, want NO_TOKEN", env)
	}
	if verifier.calls != 0 || users.calls != 0 {
		t.Fatalf("verifier calls = %d, store calls = %d, want 0 and 0", verifier.calls, users.calls)
	}
}

func TestAuthenticateTokenErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		verifyErr  error
		wantStatus int
		wantCode   string
	}{
		{"expired", security.ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"invalid", security.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"fault", errors.New("keyset unavailable"), http.StatusInternalServerError, "AUTH_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{err: tt.verifyErr}
			users := &fakePrincipals{p: principal(), found: true}

			r := gin.New()
			r.GET("/x", Chain(Authenticate(verifier, users, 0)), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			req.Header.Set("Authorization", "Bearer tok")
			r.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if env := decodeError(t, rec); env.Error.Code != tt.wantCode {
				t.Fatalf("code = %q, want %q", env.Error.Code, tt.wantCode)
			}
			if users.calls != 0 {
				t.Fatalf("store calls = %d, want 0 after token rejection", users.calls)
			}
		})
	}
}

func TestAuthenticateUserNotFound(t *testing.T) {
	verifier := &fakeVerifier{subject: "ghost"}
	users := &fakePrincipals{found: false}

	r := gin.New()
	r.GET("/x", Chain(Authenticate(verifier, users, 0)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeError(t, rec); env.Error.Code != "USER_NOT_FOUND" {
		t.Fatalf("code = %q, want USER_NOT_FOUND", env.Error.Code)
	}
}

func TestAuthenticateAttachesPrincipal(t *testing.T) {
	verifier := &fakeVerifier{subject: "u1"}
	users := &fakePrincipals{p: principal(), found: true}

	var got *authz.Principal
	r := gin.New()
	r.GET("/x", Chain(Authenticate(verifier, users, 0)), func(c *gin.Context) {
		got, _ = PrincipalFrom(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.ID != "u1" {
		t.Fatalf("principal = %+v, want u1", got)
	}
}

func TestRequireRole(t *testing.T) {
	run := func(p *authz.Principal, roles ...authz.Role) *httptest.ResponseRecorder {
		verifier := &fakeVerifier{subject: "x"}
		users := &fakePrincipals{p: p, found: p != nil}
		r := gin.New()
		gates := []Gate{Authenticate(verifier, users, 0), RequireRole(roles...)}
		r.GET("/x", Chain(gates...), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer tok")
		r.ServeHTTP(rec, req)
		return rec
	}

	if rec := run(admin(), authz.RoleAdmin); rec.Code != http.StatusOK {
		t.Fatalf("admin status = %d, want 200", rec.Code)
	}
	rec := run(principal(), authz.RoleAdmin)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user status = %d, want 403", rec.Code)
	}
	if env := decodeError(t, rec); env.Error.Code != "FORBIDDEN" {
		t.Fatalf("code = %q, want FORBIDDEN", env.Error.Code)
	}
}

func TestRequireRoleWithoutPrincipal(t *testing.T) {
	r := gin.New()
	r.GET("/x", Chain(RequireRole(authz.RoleAdmin)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if env := decodeError(t, rec); env.Error.Code != "UNAUTHORIZED" {
		t.Fatalf("code = %q, want UNAUTHORIZED", env.Error.Code)
	}
}

func spaceRouter(t *testing.T, p *authz.Principal, memberships *fakeMemberships, spaces *fakeSpaces, handler gin.HandlerFunc) *gin.Engine {
	t.Helper()
	verifier := &fakeVerifier{subject: "x"}
	users := &fakePrincipals{p: p, found: p != nil}
	checker := &authz.SpaceAccessChecker{Memberships: memberships, Spaces: spaces}

	if handler == nil {
		handler = func(c *gin.Context) { c.Status(http.StatusOK) }
	}
	chain := Chain(Authenticate(verifier, users, 0), RequireSpaceAccess(checker, authz.PermissionRead))

	r := gin.New()
	r.GET("/spaces/:spaceId", chain, handler)
	r.POST("/move", chain, handler)
	return r
}

func TestRequireSpaceAccessFromPathParam(t *testing.T) {
	memberships := &fakeMemberships{m: &authz.SpaceMembership{Role: "editor", Permissions: map[string]bool{"read": true}}, found: true}
	spaces := &fakeSpaces{}

	var got *authz.Decision
	r := spaceRouter(t, principal(), memberships, spaces, func(c *gin.Context) {
		got, _ = DecisionFrom(c)
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/spaces/s1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if got == nil || got.SpaceID != "s1" || got.Role != "editor" {
		t.Fatalf("decision = %+v, want editor on s1", got)
	}
	if spaces.calls != 0 {
		t.Fatalf("space reads = %d, want 0 when the membership row decides", spaces.calls)
	}
}

func TestRequireSpaceAccessFromBodyRestoresBody(t *testing.T) {
	memberships := &fakeMemberships{m: &authz.SpaceMembership{Role: "viewer"}, found: true}

	var echoed string
	r := spaceRouter(t, principal(), memberships, &fakeSpaces{}, func(c *gin.Context) {
		var body struct {
			SpaceID string `json:"spaceId"`
			Title   string `json:"title"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}
		echoed = body.Title
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/move", bytes.NewReader([]byte(`{"spaceId":"s2","title":"move it"}`)))
	req.Header.Set("Authorization", "Bearer tok")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if echoed != "move it" {
		t.Fatalf("handler saw title %q; body was not restored", echoed)
	}
}

func TestRequireSpaceAccessMissingIDSkipsStore(t *testing.T) {
	memberships := &fakeMemberships{}
	spaces := &fakeSpaces{}
	r := spaceRouter(t, principal(), memberships, spaces, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/move", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env := decodeError(t, rec); env.Error.Code != "MISSING_SPACE_ID" {
		t.Fatalf("code = %q, want MISSING_SPACE_ID", env.Error.Code)
	}
	if memberships.calls != 0 || spaces.calls != 0 {
		t.Fatalf("store reads = %d/%d, want none", memberships.calls, spaces.calls)
	}
}

func TestRequireSpaceAccessDenied(t *testing.T) {
	memberships := &fakeMemberships{found: false}
	spaces := &fakeSpaces{a: &authz.SpaceAccess{OrgID: "other-org", CreatedBy: "someone"}, found: true}
	r := spaceRouter(t, principal(), memberships, spaces, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/spaces/s1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if env := decodeError(t, rec); env.Error.Code != "SPACE_ACCESS_DENIED" {
		t.Fatalf("code = %q, want SPACE_ACCESS_DENIED", env.Error.Code)
	}
}

func TestChainStopsAtFirstRejection(t *testing.T) {
	var afterCalls int
	after := func(c *gin.Context, st *State) *authz.Error {
		afterCalls++
		return nil
	}

	r := gin.New()
	r.GET("/x", Chain(RequireRole(authz.RoleAdmin), after), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if afterCalls != 0 {
		t.Fatalf("later gate ran %d times after a rejection", afterCalls)
	}
}

func TestStateSharedAcrossChains(t *testing.T) {
	verifier := &fakeVerifier{subject: "a1"}
	users := &fakePrincipals{p: admin(), found: true}

	r := gin.New()
	r.GET("/x",
		Chain(Authenticate(verifier, users, 0)),
		Chain(RequireRole(authz.RoleAdmin)),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer tok")
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; second chain lost the principal", rec.Code)
	}
}
