package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"stockfolio/internal/domain"
	"stockfolio/internal/repository"
)

func newTestAccountService() (*AccountService, *repository.MemoryStore) {
	store := repository.NewMemoryStore()
	svc := NewAccountService(store, decimal.RequireFromString("10000.00"))
	return svc, store
}

func TestRegister_Success(t *testing.T) {
	svc, store := newTestAccountService()
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice", "s3cret", "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("expected username alice, got %q", user.Username)
	}
	if !user.Cash.Equal(decimal.RequireFromString("10000.00")) {
		t.Fatalf("expected seed balance 10000.00, got %s", user.Cash)
	}
	if !user.InitialCash.Equal(user.Cash) {
		t.Fatalf("initial cash should equal seed balance")
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	// No transactions on a fresh account.
	txns, _ := store.GetTransactions(ctx, user.ID)
	if len(txns) != 0 {
		t.Fatalf("expected empty ledger, got %d entries", len(txns))
	}
}

func TestRegister_EmptyUsername(t *testing.T) {
	svc, _ := newTestAccountService()

	var validationErr *domain.ValidationError
	_, err := svc.Register(context.Background(), "  ", "pw", "pw")
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRegister_EmptyPassword(t *testing.T) {
	svc, _ := newTestAccountService()

	var validationErr *domain.ValidationError
	_, err := svc.Register(context.Background(), "alice", "", "")
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	svc, store := newTestAccountService()

	_, err := svc.Register(context.Background(), "alice", "a", "b")
	if err != domain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	// No user created on rejection.
	if _, err := store.GetByUsername(context.Background(), "alice"); err != domain.ErrUserNotFound {
		t.Fatalf("expected no user to exist, got %v", err)
	}
}

func TestRegister_UsernameTaken(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw", "pw"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(ctx, "alice", "pw2", "pw2"); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()
	registered, _ := svc.Register(ctx, "alice", "s3cret", "s3cret")

	user, err := svc.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %s, got %s", registered.ID, user.ID)
	}

	// Unknown username and wrong password are indistinguishable.
	if _, err := svc.Authenticate(ctx, "bob", "s3cret"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "wrong"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestAccountService()
	ctx := context.Background()
	user, _ := svc.Register(ctx, "alice", "old-pw", "old-pw")

	// Wrong old password.
	if err := svc.ChangePassword(ctx, user.ID, "nope", "new-pw", "new-pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	// Confirmation mismatch.
	if err := svc.ChangePassword(ctx, user.ID, "old-pw", "new-pw", "other"); err != domain.ErrPasswordMismatch {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	// Success: old credential stops working, new one works.
	if err := svc.ChangePassword(ctx, user.ID, "old-pw", "new-pw", "new-pw"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "old-pw"); err != domain.ErrInvalidCredentials {
		t.Fatalf("old password should no longer authenticate, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "alice", "new-pw"); err != nil {
		t.Fatalf("new password should authenticate, got %v", err)
	}
}
