package domain

import "github.com/shopspring/decimal"

// Position is the derived holding of a single symbol. It is never
// stored: it is recomputed from the ledger on every read.
type Position struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Shares int64           `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Value  decimal.Decimal `json:"value"`
}

// AggregateShares sums signed share counts grouped by symbol over a
// ledger slice. The second return value carries the company name last
// seen for each symbol, for display.
func AggregateShares(txns []*Transaction) (map[string]int64, map[string]string) {
	shares := make(map[string]int64)
	names := make(map[string]string)
	for _, txn := range txns {
		shares[txn.Symbol] += txn.Shares
		names[txn.Symbol] = txn.Name
	}
	return shares, names
}

// SharesOf sums the signed share counts of a single-symbol ledger slice.
func SharesOf(txns []*Transaction) int64 {
	var total int64
	for _, txn := range txns {
		total += txn.Shares
	}
	return total
}
