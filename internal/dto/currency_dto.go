package dto

import "github.com/pennywise/fxcore_app/internal/core/domain"

// CurrencyResponse defines the API shape of one supported currency.
type CurrencyResponse struct {
	CurrencyCode   string `json:"currencyCode"`
	Symbol         string `json:"symbol"`
	Name           string `json:"name"`
	DecimalPlaces  int32  `json:"decimalPlaces"`
	SymbolPosition string `json:"symbolPosition"`
}

// ToCurrencyResponse converts a domain.Currency to its response DTO.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:   c.CurrencyCode,
		Symbol:         c.Symbol,
		Name:           c.Name,
		DecimalPlaces:  c.DecimalPlaces,
		SymbolPosition: string(c.SymbolPosition),
	}
}

// ToListCurrencyResponse converts a slice of currencies to response DTOs.
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	responses := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		responses[i] = ToCurrencyResponse(&currencies[i])
	}
	return responses
}
