package dto

import (
	"time"

	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountBalanceRequest is the caller-supplied snapshot of one account entering a
// reconciliation.
type AccountBalanceRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Currency     string          `json:"currency" binding:"required,currency_code"`
	Balance      decimal.Decimal `json:"balance" binding:"required"`
	OriginalRate decimal.Decimal `json:"originalRate" binding:"required"`
	Period       string          `json:"period" binding:"required"`
}

// ToDomain converts the request DTO to the domain balance snapshot.
func (r AccountBalanceRequest) ToDomain() domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:    r.AccountID,
		Currency:     r.Currency,
		Balance:      r.Balance,
		OriginalRate: r.OriginalRate,
		Period:       r.Period,
	}
}

// ReconcileAccountRequest reconciles one account at an explicit current rate.
type ReconcileAccountRequest struct {
	Account     AccountBalanceRequest `json:"account" binding:"required"`
	CurrentRate decimal.Decimal       `json:"currentRate" binding:"required"`
}

// ReconcileBatchRequest reconciles a set of accounts against fresh rates.
type ReconcileBatchRequest struct {
	PrimaryCurrency string                  `json:"primaryCurrency" binding:"required,currency_code"`
	Accounts        []AccountBalanceRequest `json:"accounts" binding:"required,dive"`
}

// ReconciliationResponse defines the API shape of one reconciliation result.
type ReconciliationResponse struct {
	AccountID            string          `json:"accountID"`
	Currency             string          `json:"currency"`
	Period               string          `json:"period"`
	OriginalBalance      decimal.Decimal `json:"originalBalance"`
	CurrentBalance       decimal.Decimal `json:"currentBalance"`
	OriginalRate         decimal.Decimal `json:"originalRate"`
	CurrentRate          decimal.Decimal `json:"currentRate"`
	FXGainLoss           decimal.Decimal `json:"fxGainLoss"`
	FXGainLossPercentage decimal.Decimal `json:"fxGainLossPercentage"`
	UnrealizedGainLoss   decimal.Decimal `json:"unrealizedGainLoss"`
	RealizedGainLoss     decimal.Decimal `json:"realizedGainLoss"`
	LastReconciliation   time.Time       `json:"lastReconciliation"`
	NextReconciliation   time.Time       `json:"nextReconciliation"`
}

// ToReconciliationResponse converts a domain.ReconciliationResult to its DTO.
func ToReconciliationResponse(result *domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:            result.AccountID,
		Currency:             result.Currency,
		Period:               result.Period,
		OriginalBalance:      result.OriginalBalance,
		CurrentBalance:       result.CurrentBalance,
		OriginalRate:         result.OriginalRate,
		CurrentRate:          result.CurrentRate,
		FXGainLoss:           result.FXGainLoss,
		FXGainLossPercentage: result.FXGainLossPercentage,
		UnrealizedGainLoss:   result.UnrealizedGainLoss,
		RealizedGainLoss:     result.RealizedGainLoss,
		LastReconciliation:   result.LastReconciliation,
		NextReconciliation:   result.NextReconciliation,
	}
}

// ToListReconciliationResponse converts a slice of results to response DTOs.
func ToListReconciliationResponse(results []domain.ReconciliationResult) []ReconciliationResponse {
	responses := make([]ReconciliationResponse, len(results))
	for i := range results {
		responses[i] = ToReconciliationResponse(&results[i])
	}
	return responses
}

// FXGainLossSummaryResponse aggregates latest-per-account gain/loss for a period.
type FXGainLossSummaryResponse struct {
	Period    string                     `json:"period"`
	Total     decimal.Decimal            `json:"total"`
	ByAccount map[string]decimal.Decimal `json:"byAccount"`
}

// ToFXGainLossSummaryResponse converts a domain summary to its DTO.
func ToFXGainLossSummaryResponse(summary *domain.FXGainLossSummary) FXGainLossSummaryResponse {
	return FXGainLossSummaryResponse{
		Period:    summary.Period,
		Total:     summary.Total,
		ByAccount: summary.ByAccount,
	}
}

// SignificantChangeResponse reports whether an account's latest FX move is significant.
type SignificantChangeResponse struct {
	AccountID     string `json:"accountID"`
	IsSignificant bool   `json:"isSignificant"`
}
