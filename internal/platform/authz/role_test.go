package authz

import "testing"

func TestCheckRole_Allowed(t *testing.T) {
	p := &Principal{ID: "user-1", Role: RoleAdmin}
	if aerr := CheckRole(p, RoleAdmin); aerr != nil {
		t.Fatalf("CheckRole: %v", aerr)
	}
	if aerr := CheckRole(p, RoleUser, RoleAdmin); aerr != nil {
		t.Fatalf("CheckRole with multi allow-set: %v", aerr)
	}
}

func TestCheckRole_Forbidden(t *testing.T) {
	p := &Principal{ID: "user-1", Role: RoleUser}
	aerr := CheckRole(p, RoleAdmin)
	if aerr == nil {
		t.Fatal("expected rejection for role outside allow-set")
	}
	if aerr.Code != CodeForbidden {
		t.Errorf("code = %q, want %q", aerr.Code, CodeForbidden)
	}
	if aerr.Status != 403 {
		t.Errorf("status = %d, want 403", aerr.Status)
	}
}

func TestCheckRole_NoPrincipal(t *testing.T) {
	aerr := CheckRole(nil, RoleAdmin)
	if aerr == nil {
		t.Fatal("expected rejection for missing principal")
	}
	if aerr.Code != CodeUnauthorized {
		t.Errorf("code = %q, want %q", aerr.Code, CodeUnauthorized)
	}
	if aerr.Status != 401 {
		t.Errorf("status = %d, want 401", aerr.Status)
	}
}
