package otel

import (
	"context"
	"testing"
)

func TestNewProvidersEmptyEndpointIsNoop(t *testing.T) {
	p, err := NewProviders(context.Background(), "", "spacehub")
	if err != nil {
		t.Fatalf("NewProviders: %v", err)
	}
	if p.TracerProvider == nil {
		t.Fatal("expected a tracer provider")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
}

func TestNewProvidersRejectsBadEndpoint(t *testing.T) {
	if _, err := NewProviders(context.Background(), "://", "spacehub"); err == nil {
		t.Fatal("expected error for malformed endpoint")
	}
}
