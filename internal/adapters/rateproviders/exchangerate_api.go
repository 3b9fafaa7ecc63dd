// Package rateproviders contains HTTP adapters for upstream exchange rate providers.
// Every provider call is bounded by its own client timeout; a timeout or any other
// failure surfaces as an apperrors.ProviderError so the fallback chain can move on.
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

// ExchangeRateAPIProvider fetches latest rates from an exchangerate-api.com style
// endpoint: GET <baseURL>/latest/<base>?access_key=<key>, response
// { "result": "success", "conversion_rates": { "EUR": 0.92, ... } }.
type ExchangeRateAPIProvider struct {
	name       string
	baseURL    string
	apiKey     string
	priority   int
	httpClient *http.Client
}

type exchangeRateAPIResponse struct {
	Result          string                 `json:"result"`
	BaseCode        string                 `json:"base_code"`
	ConversionRates map[string]json.Number `json:"conversion_rates"`
	ErrorType       string                 `json:"error-type,omitempty"`
}

// NewExchangeRateAPIProvider creates the provider. The api key is optional and sent
// as a query parameter when present.
func NewExchangeRateAPIProvider(baseURL, apiKey string, priority int, timeout time.Duration) *ExchangeRateAPIProvider {
	return &ExchangeRateAPIProvider{
		name:       "exchangerate-api",
		baseURL:    baseURL,
		apiKey:     apiKey,
		priority:   priority,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (p *ExchangeRateAPIProvider) Name() string  { return p.name }
func (p *ExchangeRateAPIProvider) Priority() int { return p.priority }

// FetchLatest returns today's quotes against the base currency.
func (p *ExchangeRateAPIProvider) FetchLatest(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error) {
	endpoint := fmt.Sprintf("%s/latest/%s", p.baseURL, url.PathEscape(baseCode))
	if p.apiKey != "" {
		endpoint += "?access_key=" + url.QueryEscape(p.apiKey)
	}

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

	var apiResp exchangeRateAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("failed to decode response: %w", err))
	}
	if apiResp.Result != "success" {
		return nil, apperrors.NewProviderError(p.name, fmt.Errorf("API returned result=%s error=%s", apiResp.Result, apiResp.ErrorType))
	}

	return parseQuotes(p.name, apiResp.ConversionRates)
}

// parseQuotes converts a provider's raw number map into decimals, rejecting malformed
// values so a partially garbled payload fails the whole provider rather than storing
// bad rates.
func parseQuotes(providerName string, raw map[string]json.Number) (map[string]decimal.Decimal, error) {
	quotes := make(map[string]decimal.Decimal, len(raw))
	for code, value := range raw {
		rate, err := decimal.NewFromString(value.String())
		if err != nil {
			return nil, apperrors.NewProviderError(providerName, fmt.Errorf("malformed rate for %s: %w", code, err))
		}
		quotes[code] = rate
	}
	return quotes, nil
}
