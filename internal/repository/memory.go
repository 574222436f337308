package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/internal/domain"
)

// MemoryStore is a thread-safe in-memory implementation of both
// UserRepository and LedgerRepository. It enforces the same
// validate-under-lock trade semantics as the postgres implementation
// and backs the test suite.
type MemoryStore struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*domain.User
	byName  map[string]uuid.UUID
	ledgers map[uuid.UUID][]*domain.Transaction
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[uuid.UUID]*domain.User),
		byName:  make(map[string]uuid.UUID),
		ledgers: make(map[uuid.UUID][]*domain.Transaction),
	}
}

// Create adds a user. Returns ErrUsernameTaken on duplicate username.
func (s *MemoryStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byName[user.Username]; exists {
		return domain.ErrUsernameTaken
	}
	u := *user
	s.users[u.ID] = &u
	s.byName[u.Username] = u.ID
	return nil
}

// GetByID retrieves a user by ID
func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

// GetByUsername retrieves a user by username
func (s *MemoryStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *s.users[id]
	return &out, nil
}

// GetBalance retrieves the current cash balance for a user
func (s *MemoryStore) GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return decimal.Zero, domain.ErrUserNotFound
	}
	return u.Cash, nil
}

// UpdatePasswordHash replaces the stored credential hash
func (s *MemoryStore) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

// GetAll retrieves all users
func (s *MemoryStore) GetAll(ctx context.Context) ([]*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out := *u
		users = append(users, &out)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// ApplyTrade applies one trade atomically under the store lock:
// re-check, balance adjustment, and ledger append happen as a unit.
func (s *MemoryStore) ApplyTrade(ctx context.Context, txn *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[txn.UserID]
	if !ok {
		return domain.ErrUserNotFound
	}

	var held int64
	if txn.Kind == domain.KindSell {
		for _, t := range s.ledgers[txn.UserID] {
			if t.Symbol == txn.Symbol {
				held += t.Shares
			}
		}
	}

	if err := domain.CheckTrade(txn, u.Cash, held); err != nil {
		return err
	}

	record := *txn
	u.Cash = u.Cash.Add(record.CashDelta())
	s.ledgers[txn.UserID] = append(s.ledgers[txn.UserID], &record)
	return nil
}

// GetTransactions retrieves a user's full ledger, newest-last
func (s *MemoryStore) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ledger := s.ledgers[userID]
	txns := make([]*domain.Transaction, 0, len(ledger))
	for _, t := range ledger {
		out := *t
		txns = append(txns, &out)
	}
	return txns, nil
}

// GetTransactionsBySymbol retrieves a user's ledger for one symbol, newest-last
func (s *MemoryStore) GetTransactionsBySymbol(ctx context.Context, userID uuid.UUID, symbol string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txns []*domain.Transaction
	for _, t := range s.ledgers[userID] {
		if t.Symbol == symbol {
			out := *t
			txns = append(txns, &out)
		}
	}
	return txns, nil
}

// GetSymbols retrieves the distinct symbols a user has ever traded
func (s *MemoryStore) GetSymbols(ctx context.Context, userID uuid.UUID) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	for _, t := range s.ledgers[userID] {
		seen[t.Symbol] = true
	}
	symbols := make([]string, 0, len(seen))
	for sym := range seen {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)
	return symbols, nil
}
