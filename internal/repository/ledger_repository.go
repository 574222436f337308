package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"stockfolio/internal/domain"
)

// LedgerRepositoryImpl implements the LedgerRepository interface.
// The transactions table is append-only: rows are inserted by
// ApplyTrade and never updated or deleted.
type LedgerRepositoryImpl struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) domain.LedgerRepository {
	return &LedgerRepositoryImpl{db: db}
}

// ApplyTrade applies one trade atomically. The user row is locked for
// the duration of the transaction, so concurrent applies for the same
// user serialize and each re-checks funds/holdings against committed
// state. Concurrent trades for different users do not contend.
func (r *LedgerRepositoryImpl) ApplyTrade(ctx context.Context, txn *domain.Transaction) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("failed to begin trade transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var cash decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT cash FROM users WHERE id = $1 FOR UPDATE`,
		txn.UserID,
	).Scan(&cash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("failed to lock user row: %w", err)
	}

	var held int64
	if txn.Kind == domain.KindSell {
		err = tx.QueryRow(ctx,
			`SELECT COALESCE(SUM(shares), 0) FROM transactions WHERE user_id = $1 AND symbol = $2`,
			txn.UserID, txn.Symbol,
		).Scan(&held)
		if err != nil {
			return fmt.Errorf("failed to sum holdings: %w", err)
		}
	}

	if err := domain.CheckTrade(txn, cash, held); err != nil {
		return err
	}

	newCash := cash.Add(txn.CashDelta())
	_, err = tx.Exec(ctx,
		`UPDATE users SET cash = $1, updated_at = NOW() WHERE id = $2`,
		newCash, txn.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update balance: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, user_id, symbol, name, shares, price, kind, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		txn.ID, txn.UserID, txn.Symbol, txn.Name, txn.Shares, txn.Price, txn.Kind, txn.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trade: %w", err)
	}

	return nil
}

// GetTransactions retrieves a user's full ledger, newest-last
func (r *LedgerRepositoryImpl) GetTransactions(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, name, shares, price, kind, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsBySymbol retrieves a user's ledger for one symbol, newest-last
func (r *LedgerRepositoryImpl) GetTransactionsBySymbol(ctx context.Context, userID uuid.UUID, symbol string) ([]*domain.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, name, shares, price, kind, created_at
		FROM transactions
		WHERE user_id = $1 AND symbol = $2
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by symbol: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetSymbols retrieves the distinct symbols a user has ever traded
func (r *LedgerRepositoryImpl) GetSymbols(ctx context.Context, userID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT symbol FROM transactions WHERE user_id = $1 ORDER BY symbol ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan symbol: %w", err)
		}
		symbols = append(symbols, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating symbols: %w", err)
	}

	return symbols, nil
}

func scanTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txns []*domain.Transaction
	for rows.Next() {
		txn := &domain.Transaction{}
		err := rows.Scan(
			&txn.ID,
			&txn.UserID,
			&txn.Symbol,
			&txn.Name,
			&txn.Shares,
			&txn.Price,
			&txn.Kind,
			&txn.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txns, nil
}
