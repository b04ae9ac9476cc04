package memory

import (
	"context"
	"testing"
)

func TestTokenStore(t *testing.T) {
	ctx := context.Background()
	s := NewTokenStore()

	if tok, err := s.Get(ctx); err != nil || tok != "" {
		t.Fatalf("expected empty slot, got %q, %v", tok, err)
	}
	if err := s.Set(ctx, "T"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if tok, _ := s.Get(ctx); tok != "T" {
		t.Fatalf("expected T, got %q", tok)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tok, _ := s.Get(ctx); tok != "" {
		t.Fatalf("expected empty slot after clear, got %q", tok)
	}
}
