package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"stockfolio/internal/delivery/http/dto"
	"stockfolio/internal/domain"
	"stockfolio/internal/middleware"
	"stockfolio/internal/service"
)

// PortfolioHandler handles portfolio and quote requests
type PortfolioHandler struct {
	portfolioSvc *service.PortfolioService
	userRepo     domain.UserRepository
	quoteSvc     domain.QuoteService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(
	portfolioSvc *service.PortfolioService,
	userRepo domain.UserRepository,
	quoteSvc domain.QuoteService,
) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioSvc: portfolioSvc,
		userRepo:     userRepo,
		quoteSvc:     quoteSvc,
	}
}

// GetPortfolio returns cash, current positions, and net worth
// GET /api/portfolio
func (h *PortfolioHandler) GetPortfolio(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	cash, err := h.userRepo.GetBalance(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	positions, err := h.portfolioSvc.Positions(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	out := &dto.PortfolioOutput{
		Cash:      cash.StringFixed(2),
		Positions: make([]*dto.PositionOutput, 0, len(positions)),
	}

	netWorth := cash
	for _, pos := range positions {
		netWorth = netWorth.Add(pos.Value)
		out.Positions = append(out.Positions, &dto.PositionOutput{
			Symbol: pos.Symbol,
			Name:   pos.Name,
			Shares: pos.Shares,
			Price:  pos.Price.StringFixed(2),
			Value:  pos.Value.StringFixed(2),
		})
	}
	out.NetWorth = netWorth.StringFixed(2)

	return SuccessResponse(c, out)
}

// GetHistory returns the full transaction ledger, newest-last
// GET /api/portfolio/history
func (h *PortfolioHandler) GetHistory(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	txns, err := h.portfolioSvc.History(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	out := make([]*dto.TransactionOutput, 0, len(txns))
	for _, txn := range txns {
		out = append(out, &dto.TransactionOutput{
			ID:        txn.ID.String(),
			Symbol:    txn.Symbol,
			Name:      txn.Name,
			Shares:    txn.Shares,
			Price:     txn.Price.StringFixed(2),
			Kind:      txn.Kind,
			CreatedAt: txn.CreatedAt.Format(time.RFC3339),
		})
	}

	return SuccessResponse(c, out)
}

// GetSymbols returns the distinct symbols the user has traded
// GET /api/portfolio/symbols
func (h *PortfolioHandler) GetSymbols(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	symbols, err := h.portfolioSvc.Symbols(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, map[string]interface{}{"symbols": symbols})
}

// GetQuote returns the current quote for a symbol
// GET /api/quote/:symbol
func (h *PortfolioHandler) GetQuote(c echo.Context) error {
	symbol := c.Param("symbol")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	quote, err := h.quoteSvc.Lookup(ctx, symbol)
	if err != nil {
		return DomainErrorResponse(c, err)
	}
	if quote == nil {
		return DomainErrorResponse(c, domain.ErrStockNotFound)
	}

	return SuccessResponse(c, dto.QuoteOutput{
		Symbol: quote.Symbol,
		Name:   quote.Name,
		Price:  quote.Price.StringFixed(2),
	})
}
