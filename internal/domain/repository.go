package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user. Returns ErrUsernameTaken if the
	// username is already registered.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetBalance retrieves the current cash balance for a user
	GetBalance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)

	// UpdatePasswordHash replaces the stored credential hash
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, hash string) error

	// GetAll retrieves all users
	GetAll(ctx context.Context) ([]*User, error)
}

// LedgerRepository defines the interface for the append-only
// transaction ledger and the atomic trade boundary.
type LedgerRepository interface {
	// ApplyTrade atomically applies one trade: it re-checks funds or
	// holdings under the user's serialization, adjusts the cash
	// balance by the trade's cash delta, and appends the transaction.
	// Either both mutations become visible or neither does.
	ApplyTrade(ctx context.Context, txn *Transaction) error

	// GetTransactions retrieves a user's full ledger, newest-last
	GetTransactions(ctx context.Context, userID uuid.UUID) ([]*Transaction, error)

	// GetTransactionsBySymbol retrieves the subset of a user's ledger
	// for one symbol, newest-last
	GetTransactionsBySymbol(ctx context.Context, userID uuid.UUID, symbol string) ([]*Transaction, error)

	// GetSymbols retrieves the distinct symbols a user has ever traded
	GetSymbols(ctx context.Context, userID uuid.UUID) ([]string, error)
}
