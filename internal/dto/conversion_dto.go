package dto

import (
	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the structure for a conversion call.
type ConvertRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	EnteredCurrency string          `json:"enteredCurrency" binding:"required,currency_code"`
	AccountCurrency string          `json:"accountCurrency" binding:"required,currency_code"`
	PrimaryCurrency string          `json:"primaryCurrency" binding:"required,currency_code"`
	IncludeFees     bool            `json:"includeFees"`
	FeePercentage   decimal.Decimal `json:"feePercentage"`
}

// ToDomain converts the request DTO to the domain request.
func (r ConvertRequest) ToDomain() domain.ConversionRequest {
	return domain.ConversionRequest{
		Amount:          r.Amount,
		EnteredCurrency: r.EnteredCurrency,
		AccountCurrency: r.AccountCurrency,
		PrimaryCurrency: r.PrimaryCurrency,
		IncludeFees:     r.IncludeFees,
		FeePercentage:   r.FeePercentage,
	}
}

// ConversionResponse defines the API shape of a conversion result.
type ConversionResponse struct {
	EnteredAmount   decimal.Decimal `json:"enteredAmount"`
	EnteredCurrency string          `json:"enteredCurrency"`
	EnteredSymbol   string          `json:"enteredSymbol"`
	AccountAmount   decimal.Decimal `json:"accountAmount"`
	AccountCurrency string          `json:"accountCurrency"`
	AccountSymbol   string          `json:"accountSymbol"`
	PrimaryAmount   decimal.Decimal `json:"primaryAmount"`
	PrimaryCurrency string          `json:"primaryCurrency"`
	PrimarySymbol   string          `json:"primarySymbol"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	ConversionCase  string          `json:"conversionCase"`
	ConversionFee   decimal.Decimal `json:"conversionFee"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	Source          string          `json:"source"`
	AuditID         string          `json:"auditID"`
}

// ToConversionResponse converts a domain.ConversionResult to its response DTO.
func ToConversionResponse(result *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		EnteredAmount:   result.EnteredAmount,
		EnteredCurrency: result.EnteredCurrency,
		EnteredSymbol:   result.EnteredSymbol,
		AccountAmount:   result.AccountAmount,
		AccountCurrency: result.AccountCurrency,
		AccountSymbol:   result.AccountSymbol,
		PrimaryAmount:   result.PrimaryAmount,
		PrimaryCurrency: result.PrimaryCurrency,
		PrimarySymbol:   result.PrimarySymbol,
		ExchangeRate:    result.ExchangeRate,
		ConversionCase:  string(result.ConversionCase),
		ConversionFee:   result.ConversionFee,
		TotalCost:       result.TotalCost,
		Source:          result.ConversionSource,
		AuditID:         result.AuditID,
	}
}
