package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/internal/domain"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestUser(username, cash string) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "x",
		Cash:         dec(cash),
		InitialCash:  dec(cash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func newTrade(userID uuid.UUID, symbol string, shares int64, price string) *domain.Transaction {
	kind := domain.KindBuy
	if shares < 0 {
		kind = domain.KindSell
	}
	return &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    symbol,
		Name:      symbol + " Corp",
		Shares:    shares,
		Price:     dec(price),
		Kind:      kind,
		CreatedAt: time.Now(),
	}
}

func TestMemoryStore_CreateDuplicateUsername(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Create(ctx, newTestUser("alice", "10000.00")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := s.Create(ctx, newTestUser("alice", "10000.00")); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestMemoryStore_GetByUsernameNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetByUsername(context.Background(), "nobody")
	if err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryStore_ApplyTrade_BuyUpdatesBalanceAndLedger(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)

	if err := s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 10, "50.00")); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	cash, _ := s.GetBalance(ctx, user.ID)
	if !cash.Equal(dec("9500.00")) {
		t.Fatalf("expected balance 9500.00, got %s", cash)
	}

	txns, _ := s.GetTransactions(ctx, user.ID)
	if len(txns) != 1 || txns[0].Shares != 10 {
		t.Fatalf("expected one +10 share transaction, got %v", txns)
	}
}

func TestMemoryStore_ApplyTrade_RejectionMutatesNothing(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "100.00")
	_ = s.Create(ctx, user)

	if err := s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 1, "200.00")); err != domain.ErrInsufficientFunds {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	cash, _ := s.GetBalance(ctx, user.ID)
	if !cash.Equal(dec("100.00")) {
		t.Fatalf("expected balance unchanged at 100.00, got %s", cash)
	}
	txns, _ := s.GetTransactions(ctx, user.ID)
	if len(txns) != 0 {
		t.Fatalf("expected empty ledger after rejection, got %d entries", len(txns))
	}
}

func TestMemoryStore_ApplyTrade_SellRecheckedUnderLock(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 10, "50.00"))

	// Two concurrent sells of the full holding: exactly one may commit.
	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", -10, "60.00"))
		}(i)
	}
	wg.Wait()

	committed := 0
	for _, err := range errs {
		if err == nil {
			committed++
		} else if err != domain.ErrInsufficientShares {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if committed != 1 {
		t.Fatalf("expected exactly one sell to commit, got %d", committed)
	}

	txns, _ := s.GetTransactionsBySymbol(ctx, user.ID, "AAA")
	if got := domain.SharesOf(txns); got != 0 {
		t.Fatalf("expected aggregate 0 after full sell, got %d", got)
	}
}

func TestMemoryStore_GetTransactionsBySymbol(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 10, "50.00"))
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "BBB", 5, "20.00"))
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", -4, "55.00"))

	txns, err := s.GetTransactionsBySymbol(ctx, user.ID, "AAA")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 AAA transactions, got %d", len(txns))
	}
	// Newest-last ordering.
	if txns[0].Shares != 10 || txns[1].Shares != -4 {
		t.Fatalf("expected [+10, -4], got [%d, %d]", txns[0].Shares, txns[1].Shares)
	}
}

func TestMemoryStore_GetSymbols(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "BBB", 5, "20.00"))
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 10, "50.00"))
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 1, "51.00"))

	symbols, err := s.GetSymbols(ctx, user.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAA" || symbols[1] != "BBB" {
		t.Fatalf("expected [AAA BBB], got %v", symbols)
	}
}

func TestMemoryStore_ReturnedTransactionsAreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)
	_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 10, "50.00"))

	txns, _ := s.GetTransactions(ctx, user.ID)
	txns[0].Shares = 999

	again, _ := s.GetTransactions(ctx, user.ID)
	if again[0].Shares != 10 {
		t.Fatalf("ledger entry mutated through returned copy: %d", again[0].Shares)
	}
}

func TestMemoryStore_UpdatePasswordHash(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)

	if err := s.UpdatePasswordHash(ctx, user.ID, "newhash"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got, _ := s.GetByID(ctx, user.ID)
	if got.PasswordHash != "newhash" {
		t.Fatalf("expected updated hash, got %q", got.PasswordHash)
	}

	if err := s.UpdatePasswordHash(ctx, uuid.New(), "x"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMemoryStore_ConcurrentTrades(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	user := newTestUser("alice", "10000.00")
	_ = s.Create(ctx, user)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.ApplyTrade(ctx, newTrade(user.ID, "AAA", 1, "10.00"))
		}()
	}
	wg.Wait()

	cash, _ := s.GetBalance(ctx, user.ID)
	if !cash.Equal(dec("9500.00")) {
		t.Fatalf("expected 9500.00 after 50 concurrent $10 buys, got %s", cash)
	}
	txns, _ := s.GetTransactions(ctx, user.ID)
	if len(txns) != 50 {
		t.Fatalf("expected 50 ledger entries, got %d", len(txns))
	}
}
