package security

import (
	"errors"
	"testing"
	"time"
)

func newTestProvider(ttl time.Duration) *TokenProvider {
	return NewTokenProvider([]byte("test-secret"), "spacehub-test", ttl)
}

func TestTokenProvider_IssueAndVerify(t *testing.T) {
	p := newTestProvider(time.Hour)
	token, expiresAt, err := p.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if token == "" {
		t.Fatal("IssueAccess returned empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Errorf("expiresAt %v should be in the future", expiresAt)
	}

	subject, err := p.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if subject != "user-1" {
		t.Errorf("subject = %q, want %q", subject, "user-1")
	}
}

func TestTokenProvider_Expired(t *testing.T) {
	p := newTestProvider(-time.Minute)
	token, _, err := p.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	_, err = p.VerifyAccess(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("err = %v, want ErrTokenExpired", err)
	}
}

func TestTokenProvider_WrongSecret(t *testing.T) {
	issuer := NewTokenProvider([]byte("secret-a"), "spacehub-test", time.Hour)
	verifier := NewTokenProvider([]byte("secret-b"), "spacehub-test", time.Hour)

	token, _, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	_, err = verifier.VerifyAccess(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_Malformed(t *testing.T) {
	p := newTestProvider(time.Hour)
	for _, tok := range []string{"", "garbage", "a.b.c"} {
		_, err := p.VerifyAccess(tok)
		if !errors.Is(err, ErrInvalidToken) {
			t.Errorf("VerifyAccess(%q) = %v, want ErrInvalidToken", tok, err)
		}
	}
}

func TestTokenProvider_WrongIssuer(t *testing.T) {
	issuer := NewTokenProvider([]byte("test-secret"), "other-service", time.Hour)
	verifier := newTestProvider(time.Hour)

	token, _, err := issuer.IssueAccess("user-1")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	_, err = verifier.VerifyAccess(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_ExpiredDistinctFromMalformed(t *testing.T) {
	p := newTestProvider(-time.Minute)
	token, _, _ := p.IssueAccess("user-1")

	_, expiredErr := p.VerifyAccess(token)
	_, malformedErr := p.VerifyAccess("garbage")

	if errors.Is(expiredErr, ErrInvalidToken) {
		t.Error("expired token should not map to ErrInvalidToken")
	}
	if errors.Is(malformedErr, ErrTokenExpired) {
		t.Error("malformed token should not map to ErrTokenExpired")
	}
}
