package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"stockfolio/internal/domain"
)

// QuoteGateway implements QuoteService against an IEX-style quote API
type QuoteGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewQuoteGateway creates a new quote API client
func NewQuoteGateway(baseURL, apiKey string) domain.QuoteService {
	return &QuoteGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// quoteResponse mirrors the quote API payload. Prices arrive as JSON
// numbers and are decoded straight into decimals.
type quoteResponse struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	LatestPrice decimal.Decimal `json:"latestPrice"`
}

// Lookup fetches the current quote for a symbol. A 404 from the quote
// API means the symbol does not exist and returns (nil, nil); other
// failures are errors.
func (g *QuoteGateway) Lookup(ctx context.Context, symbol string) (*domain.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, nil
	}

	endpoint := fmt.Sprintf("%s/stable/stock/%s/quote?token=%s",
		g.baseURL, url.PathEscape(symbol), url.QueryEscape(g.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("quote API error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var quote quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return nil, fmt.Errorf("failed to decode quote response: %w", err)
	}

	return &domain.Quote{
		Symbol: symbol,
		Name:   quote.CompanyName,
		Price:  quote.LatestPrice,
	}, nil
}
