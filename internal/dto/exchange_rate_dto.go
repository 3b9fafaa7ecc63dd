package dto

import (
	"time"

	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExchangeRateResponse defines the API shape of one exchange rate row.
type ExchangeRateResponse struct {
	RateID             string          `json:"rateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	FxDate             string          `json:"fxDate"`
	Source             string          `json:"source"`
	IsStale            bool            `json:"isStale"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		RateID:             rate.RateID,
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		Rate:               rate.Rate,
		FxDate:             rate.FxDate.Format("2006-01-02"),
		Source:             rate.Source,
		IsStale:            rate.IsStale,
		CreatedAt:          rate.CreatedAt,
	}
}

// ToListExchangeRateResponse converts a slice of rate rows to response DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// StaleRatesResponse reports whether today's rate set contains stale entries; drives
// the "rates may be outdated" banner.
type StaleRatesResponse struct {
	HasStaleRates bool `json:"hasStaleRates"`
}
