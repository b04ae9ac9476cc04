package mongo

import (
	"context"
	"os"
	"testing"
	"time"
)

// Runs only against a real server: MONGO_URI=mongodb://localhost:27017 go test ./...
func TestTokenStore_RoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "donatehub_test", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)

	s := NewTokenStore(db)
	t.Cleanup(func() { _ = db.Drop(ctx) })

	if tok, err := s.Get(ctx); err != nil || tok != "" {
		t.Fatalf("expected empty slot, got %q, %v", tok, err)
	}
	if err := s.Set(ctx, "T1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "T2"); err != nil {
		t.Fatalf("second Set: %v", err)
	}
	if tok, _ := s.Get(ctx); tok != "T2" {
		t.Fatalf("expected T2, got %q", tok)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if tok, _ := s.Get(ctx); tok != "" {
		t.Fatalf("expected empty slot after clear, got %q", tok)
	}
	if err := s.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}
