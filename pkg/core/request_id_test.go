package core

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID() on empty context = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-123")
	}
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()

	if a == "" || b == "" {
		t.Fatal("GenerateRequestID() returned empty string")
	}
	if a == b {
		t.Errorf("GenerateRequestID() returned duplicate IDs: %q", a)
	}
}
