package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/internal/domain"
)

// PortfolioService derives current per-symbol holdings and valuation
// from the ledger on demand. It holds no state of its own: every read
// recomputes from the ledger, so results always reflect the ledger at
// call time.
type PortfolioService struct {
	ledgerRepo domain.LedgerRepository
	userRepo   domain.UserRepository
	quoteSvc   domain.QuoteService

	// includeZero retains symbols whose aggregate share count is zero.
	// Display policy only, chosen by the presentation layer at wiring time.
	includeZero bool
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(
	ledgerRepo domain.LedgerRepository,
	userRepo domain.UserRepository,
	quoteSvc domain.QuoteService,
	includeZero bool,
) *PortfolioService {
	return &PortfolioService{
		ledgerRepo:  ledgerRepo,
		userRepo:    userRepo,
		quoteSvc:    quoteSvc,
		includeZero: includeZero,
	}
}

// Positions computes the user's current positions by summing signed
// share counts over the full ledger, then pricing each symbol at its
// current quote. Sorted by symbol for stable output.
func (s *PortfolioService) Positions(ctx context.Context, userID uuid.UUID) ([]*domain.Position, error) {
	txns, err := s.ledgerRepo.GetTransactions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	shares, names := domain.AggregateShares(txns)

	symbols := make([]string, 0, len(shares))
	for sym := range shares {
		if shares[sym] == 0 && !s.includeZero {
			continue
		}
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	positions := make([]*domain.Position, 0, len(symbols))
	for _, sym := range symbols {
		pos := &domain.Position{
			Symbol: sym,
			Name:   names[sym],
			Shares: shares[sym],
		}

		quote, err := s.quoteSvc.Lookup(ctx, sym)
		if err != nil {
			return nil, fmt.Errorf("failed to price %s: %w", sym, err)
		}
		if quote != nil {
			pos.Name = quote.Name
			pos.Price = quote.Price
			pos.Value = quote.Price.Mul(decimal.NewFromInt(pos.Shares))
		}

		positions = append(positions, pos)
	}

	return positions, nil
}

// SharesHeld returns the aggregate share count for one symbol.
func (s *PortfolioService) SharesHeld(ctx context.Context, userID uuid.UUID, symbol string) (int64, error) {
	txns, err := s.ledgerRepo.GetTransactionsBySymbol(ctx, userID, symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to load ledger for %s: %w", symbol, err)
	}
	return domain.SharesOf(txns), nil
}

// NetWorth returns cash plus the market value of all positions.
func (s *PortfolioService) NetWorth(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error) {
	cash, err := s.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	positions, err := s.Positions(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	total := cash
	for _, pos := range positions {
		total = total.Add(pos.Value)
	}
	return total, nil
}

// History returns the user's full ledger, newest-last.
func (s *PortfolioService) History(ctx context.Context, userID uuid.UUID) ([]*domain.Transaction, error) {
	return s.ledgerRepo.GetTransactions(ctx, userID)
}

// Symbols returns the distinct symbols the user has ever traded.
func (s *PortfolioService) Symbols(ctx context.Context, userID uuid.UUID) ([]string, error) {
	return s.ledgerRepo.GetSymbols(ctx, userID)
}
