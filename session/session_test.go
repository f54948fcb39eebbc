package session

import (
	"context"
	"errors"
	"testing"

	"gatherly/globals"
	"gatherly/models"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	sess := &models.Session{UserID: "u1", Username: "alice", Role: globals.RoleParticipant}
	if err := repo.Set(ctx, "tok1", sess, Ephemeral); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := repo.Get(ctx, "tok1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.UserID != "u1" || got.Role != globals.RoleParticipant {
		t.Fatalf("got %+v", got)
	}

	if err := repo.Clear(ctx, "tok1"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, err := repo.Get(ctx, "tok1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Clear = %v, want ErrNotFound", err)
	}
}

func TestMemoryRepositoryUnknownToken(t *testing.T) {
	repo := NewMemoryRepository()
	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestTierTTL(t *testing.T) {
	if Ephemeral.TTL() >= Durable.TTL() {
		t.Fatal("ephemeral sessions must be shorter-lived than durable ones")
	}
	if Ephemeral.TTL() != EphemeralTTL || Durable.TTL() != DurableTTL {
		t.Fatal("tier TTLs do not match their constants")
	}
}
