package authz

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakePrincipalSource implements PrincipalSource for tests.
type fakePrincipalSource struct {
	principals map[string]*Principal
	err        error
	calls      int
}

func (f *fakePrincipalSource) FindPrincipal(ctx context.Context, userID string) (*Principal, bool, error) {
	f.calls++
	if f.err != nil {
		return nil, false, f.err
	}
	p, ok := f.principals[userID]
	return p, ok, nil
}

func TestResolvePrincipal_Found(t *testing.T) {
	src := &fakePrincipalSource{principals: map[string]*Principal{
		"user-1": {ID: "user-1", Email: "a@example.com", Role: RoleUser, OrgID: "org-1", OrgName: "Acme"},
	}}

	p, aerr := ResolvePrincipal(context.Background(), src, "user-1", time.Second)
	if aerr != nil {
		t.Fatalf("ResolvePrincipal: %v", aerr)
	}
	if p.ID != "user-1" || p.OrgID != "org-1" || p.OrgName != "Acme" {
		t.Errorf("principal = %+v", p)
	}
}

func TestResolvePrincipal_NotFound(t *testing.T) {
	src := &fakePrincipalSource{principals: map[string]*Principal{}}

	_, aerr := ResolvePrincipal(context.Background(), src, "ghost", time.Second)
	if aerr == nil {
		t.Fatal("expected rejection for unknown subject")
	}
	if aerr.Code != CodeUserNotFound {
		t.Errorf("code = %q, want %q", aerr.Code, CodeUserNotFound)
	}
	if aerr.Status != 401 {
		t.Errorf("status = %d, want 401", aerr.Status)
	}
}

func TestResolvePrincipal_StoreFault(t *testing.T) {
	src := &fakePrincipalSource{err: errors.New("connection refused")}

	_, aerr := ResolvePrincipal(context.Background(), src, "user-1", time.Second)
	if aerr == nil {
		t.Fatal("expected rejection for store fault")
	}
	if aerr.Code != CodeAuthError {
		t.Errorf("code = %q, want %q", aerr.Code, CodeAuthError)
	}
	if aerr.Status != 500 {
		t.Errorf("status = %d, want 500", aerr.Status)
	}
}

// slowPrincipalSource blocks until its context is done.
type slowPrincipalSource struct{}

func (slowPrincipalSource) FindPrincipal(ctx context.Context, userID string) (*Principal, bool, error) {
	<-ctx.Done()
	return nil, false, ctx.Err()
}

func TestResolvePrincipal_Timeout(t *testing.T) {
	_, aerr := ResolvePrincipal(context.Background(), slowPrincipalSource{}, "user-1", 10*time.Millisecond)
	if aerr == nil {
		t.Fatal("expected rejection for timed-out read")
	}
	if aerr.Code != CodeAuthError {
		t.Errorf("code = %q, want %q", aerr.Code, CodeAuthError)
	}
}
