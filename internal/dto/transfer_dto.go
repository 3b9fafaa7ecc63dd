package dto

import (
	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the structure for creating a transfer.
type CreateTransferRequest struct {
	FromAccountID       string          `json:"fromAccountID" binding:"required"`
	ToAccountID         string          `json:"toAccountID" binding:"required"`
	FromAccountCurrency string          `json:"fromAccountCurrency" binding:"required,currency_code"`
	ToAccountCurrency   string          `json:"toAccountCurrency" binding:"required,currency_code"`
	PrimaryCurrency     string          `json:"primaryCurrency" binding:"required,currency_code"`
	Amount              decimal.Decimal `json:"amount" binding:"required"`
	EnteredCurrency     string          `json:"enteredCurrency" binding:"required,currency_code"`
	IncludeFees         bool            `json:"includeFees"`
	FeePercentage       decimal.Decimal `json:"feePercentage"`
}

// ToDomain converts the request DTO to the domain request.
func (r CreateTransferRequest) ToDomain() domain.TransferRequest {
	return domain.TransferRequest{
		FromAccountID:       r.FromAccountID,
		ToAccountID:         r.ToAccountID,
		FromAccountCurrency: r.FromAccountCurrency,
		ToAccountCurrency:   r.ToAccountCurrency,
		PrimaryCurrency:     r.PrimaryCurrency,
		Amount:              r.Amount,
		EnteredCurrency:     r.EnteredCurrency,
		IncludeFees:         r.IncludeFees,
		FeePercentage:       r.FeePercentage,
	}
}

// TransferResponse defines the API shape of a completed transfer.
type TransferResponse struct {
	FromAccountID  string             `json:"fromAccountID"`
	ToAccountID    string             `json:"toAccountID"`
	SourceLeg      ConversionResponse `json:"sourceLeg"`
	DestinationLeg ConversionResponse `json:"destinationLeg"`
	FXGainLoss     decimal.Decimal    `json:"fxGainLoss"`
	TotalFees      decimal.Decimal    `json:"totalFees"`
}

// ToTransferResponse converts a domain.TransferResult to its response DTO.
func ToTransferResponse(result *domain.TransferResult) TransferResponse {
	return TransferResponse{
		FromAccountID:  result.FromAccountID,
		ToAccountID:    result.ToAccountID,
		SourceLeg:      ToConversionResponse(&result.SourceLeg),
		DestinationLeg: ToConversionResponse(&result.DestinationLeg),
		FXGainLoss:     result.FXGainLoss,
		TotalFees:      result.TotalFees,
	}
}

// TransferValidationResponse is the outcome of a pre-flight transfer check.
type TransferValidationResponse struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// ToTransferValidationResponse converts a domain.TransferValidation to its DTO.
func ToTransferValidationResponse(v *domain.TransferValidation) TransferValidationResponse {
	return TransferValidationResponse{
		IsValid:  v.IsValid,
		Errors:   v.Errors,
		Warnings: v.Warnings,
	}
}
