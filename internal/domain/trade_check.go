package domain

import "github.com/shopspring/decimal"

// CheckTrade validates a transaction against the balance and holdings
// it would be applied to. Both ledger implementations call it while
// holding their per-user serialization (row lock or mutex), so the
// check and the apply are one atomic unit.
//
// A buy that exactly exhausts the balance is permitted; a sell of the
// exact full holding is permitted.
func CheckTrade(txn *Transaction, cash decimal.Decimal, heldShares int64) error {
	switch txn.Kind {
	case KindBuy:
		total := txn.Price.Mul(decimal.NewFromInt(txn.Shares))
		if total.GreaterThan(cash) {
			return ErrInsufficientFunds
		}
	case KindSell:
		if -txn.Shares > heldShares {
			return ErrInsufficientShares
		}
	default:
		return &ValidationError{Message: "unknown transaction kind: " + txn.Kind}
	}
	return nil
}
