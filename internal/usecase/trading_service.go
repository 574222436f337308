package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockfolio/internal/domain"
)

// HoldingsReader supplies the aggregate share count used for the
// pre-apply sell check. The count is re-verified inside the ledger's
// atomic apply, so this read is advisory.
type HoldingsReader interface {
	SharesHeld(ctx context.Context, userID uuid.UUID, symbol string) (int64, error)
}

// TradingService validates and executes buy/sell intents. Each trade
// runs Validate → PriceLookup → CheckFunds/CheckHoldings → Apply, and
// any rejection leaves balance and ledger untouched.
type TradingService struct {
	ledgerRepo domain.LedgerRepository
	quoteSvc   domain.QuoteService
	holdings   HoldingsReader
}

// NewTradingService creates a new TradingService
func NewTradingService(
	ledgerRepo domain.LedgerRepository,
	quoteSvc domain.QuoteService,
	holdings HoldingsReader,
) *TradingService {
	return &TradingService{
		ledgerRepo: ledgerRepo,
		quoteSvc:   quoteSvc,
		holdings:   holdings,
	}
}

// Buy purchases shares at the current quoted price. Rejected with
// ErrStockNotFound if the symbol is unknown and ErrInsufficientFunds
// if total cost exceeds the cash balance; exact exhaustion is allowed.
func (ts *TradingService) Buy(ctx context.Context, userID uuid.UUID, symbol string, shares int64) (*domain.Transaction, error) {
	symbol, err := validateIntent(symbol, shares)
	if err != nil {
		return nil, err
	}

	quote, err := ts.quoteSvc.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrStockNotFound
	}

	txn := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    quote.Symbol,
		Name:      quote.Name,
		Shares:    shares,
		Price:     quote.Price,
		Kind:      domain.KindBuy,
		CreatedAt: time.Now(),
	}

	// Funds are checked inside ApplyTrade under the user's lock.
	if err := ts.ledgerRepo.ApplyTrade(ctx, txn); err != nil {
		return nil, err
	}

	total := quote.Price.Mul(decimal.NewFromInt(shares))
	log.Printf("[OK] BUY %d %s @ %s (total %s) for user %s",
		shares, txn.Symbol, quote.Price.StringFixed(2), total.StringFixed(2), userID)
	return txn, nil
}

// Sell disposes shares at the current quoted price, not the purchase
// price. Rejected with ErrInsufficientShares if the request exceeds
// the aggregate holding; selling the entire holding is allowed.
func (ts *TradingService) Sell(ctx context.Context, userID uuid.UUID, symbol string, shares int64) (*domain.Transaction, error) {
	symbol, err := validateIntent(symbol, shares)
	if err != nil {
		return nil, err
	}

	held, err := ts.holdings.SharesHeld(ctx, userID, symbol)
	if err != nil {
		return nil, err
	}
	if shares > held {
		return nil, domain.ErrInsufficientShares
	}

	quote, err := ts.quoteSvc.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrStockNotFound
	}

	txn := &domain.Transaction{
		ID:        uuid.New(),
		UserID:    userID,
		Symbol:    quote.Symbol,
		Name:      quote.Name,
		Shares:    -shares,
		Price:     quote.Price,
		Kind:      domain.KindSell,
		CreatedAt: time.Now(),
	}

	// Holdings are re-checked inside ApplyTrade so two concurrent
	// sells cannot both pass the advisory check above and oversell.
	if err := ts.ledgerRepo.ApplyTrade(ctx, txn); err != nil {
		return nil, err
	}

	proceeds := quote.Price.Mul(decimal.NewFromInt(shares))
	log.Printf("[OK] SELL %d %s @ %s (proceeds %s) for user %s",
		shares, txn.Symbol, quote.Price.StringFixed(2), proceeds.StringFixed(2), userID)
	return txn, nil
}

// validateIntent normalizes the symbol and rejects non-positive share
// counts before any domain logic runs.
func validateIntent(symbol string, shares int64) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return "", &domain.ValidationError{Message: "symbol must not be empty"}
	}
	if shares < 1 {
		return "", &domain.ValidationError{Message: "share count must be a positive integer"}
	}
	return symbol, nil
}
