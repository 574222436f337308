package service

import (
	"context"
	"testing"

	"stockfolio/internal/repository"
)

func TestAuditUser_CleanLedger(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuditService(store, store)
	user := seedUser(t, store, "10000.00")

	applyTrade(t, store, user.ID, "AAA", 10, "50.00")
	applyTrade(t, store, user.ID, "AAA", -10, "60.00")

	current, err := store.GetByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if err := svc.AuditUser(context.Background(), current); err != nil {
		t.Fatalf("expected clean audit, got %v", err)
	}

	failed, err := svc.AuditAll(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if failed != 0 {
		t.Fatalf("expected 0 failed audits, got %d", failed)
	}
}

func TestAuditUser_DetectsDrift(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewAuditService(store, store)
	user := seedUser(t, store, "10000.00")
	applyTrade(t, store, user.ID, "AAA", 10, "50.00")

	// A stale snapshot of the user (pre-trade cash) does not match the
	// ledger-recomputed balance.
	if err := svc.AuditUser(context.Background(), user); err == nil {
		t.Fatal("expected drift error for stale balance")
	}
}
