package rateproviders

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ExchangeHostProvider fetches latest rates from an exchangerate.host style endpoint:
// GET <baseURL>/latest?base=<base>, response
// { "success": true, "rates": { "EUR": 0.92, ... } }. No api key required.
type ExchangeHostProvider struct {
	name       string
	baseURL    string
	priority   int
	httpClient *http.Client
}

type exchangeHostResponse struct {
	Success bool                   `json:"success"`
	Base    string                 `json:"base"`
	Rates   map[string]json.Number `json:"rates"`
}

// NewExchangeHostProvider creates the provider.
func NewExchangeHostProvider(baseURL string, priority int, timeout time.Duration) *ExchangeHostProvider {
	return &ExchangeHostProvider{
		name:       "exchange-host",
		baseURL:    baseURL,
		priority:   priority,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *ExchangeHostProvider) Name() string  { return p.name }
func (p *ExchangeHostProvider) Priority() int { return p.priority }

// FetchLatest returns today's quotes against the base currency.
func (p *ExchangeHostProvider) FetchLatest(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s", p.baseURL, url.QueryEscape(baseCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("failed to fetch rates: %w", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var apiResp exchangeHostResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("failed to decode response: %w", err))
	}
	if !apiResp.Success {
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("API reported failure"))
	}

	return parseQuotes(p.name, apiResp.Rates)
}
