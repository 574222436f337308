package http

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"stockfolio/internal/delivery/http/dto"
	"stockfolio/internal/domain"
	"stockfolio/internal/middleware"
	"stockfolio/internal/usecase"
)

// TradeHandler handles buy/sell requests
type TradeHandler struct {
	tradingSvc *usecase.TradingService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(tradingSvc *usecase.TradingService) *TradeHandler {
	return &TradeHandler{tradingSvc: tradingSvc}
}

// Buy executes a buy intent
// POST /api/trade/buy
func (h *TradeHandler) Buy(c echo.Context) error {
	return h.trade(c, h.tradingSvc.Buy)
}

// Sell executes a sell intent
// POST /api/trade/sell
func (h *TradeHandler) Sell(c echo.Context) error {
	return h.trade(c, h.tradingSvc.Sell)
}

type tradeFunc func(ctx context.Context, userID uuid.UUID, symbol string, shares int64) (*domain.Transaction, error)

func (h *TradeHandler) trade(c echo.Context, execute tradeFunc) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.TradeRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 15*time.Second)
	defer cancel()

	txn, err := execute(ctx, userID, req.Symbol, req.Shares)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.TransactionOutput{
		ID:        txn.ID.String(),
		Symbol:    txn.Symbol,
		Name:      txn.Name,
		Shares:    txn.Shares,
		Price:     txn.Price.StringFixed(2),
		Kind:      txn.Kind,
		CreatedAt: txn.CreatedAt.Format(time.RFC3339),
	})
}
