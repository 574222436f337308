package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one immutable entry in a user's ledger. Shares is
// signed: positive for a buy, negative for a sell. The full sequence
// of transactions is the sole authority for a user's holdings.
type Transaction struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"` // execution price per share
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}

// TransactionKind constants
const (
	KindBuy  = "BUY"
	KindSell = "SELL"
)

// CashDelta returns the signed effect of the transaction on the
// user's cash balance: −shares×price (a buy costs cash, a sell with
// negative shares yields positive proceeds).
func (t *Transaction) CashDelta() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(t.Shares)).Neg()
}
