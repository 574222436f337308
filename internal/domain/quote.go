package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is the current price and display name for a symbol, as
// reported by the external quote source. The source is untrusted and
// its results are never cached across requests.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// QuoteService defines the interface for looking up current quotes
type QuoteService interface {
	// Lookup returns the quote for a symbol, or (nil, nil) if the
	// symbol is unknown to the quote source.
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}
