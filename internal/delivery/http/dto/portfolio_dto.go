package dto

// PositionOutput represents a derived position in API responses
type PositionOutput struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Shares int64  `json:"shares"`
	Price  string `json:"price"`
	Value  string `json:"value"`
}

// PortfolioOutput represents the portfolio view: cash, positions, and
// total net worth at current quoted prices
type PortfolioOutput struct {
	Cash      string            `json:"cash"`
	Positions []*PositionOutput `json:"positions"`
	NetWorth  string            `json:"net_worth"`
}
