package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationFrequency controls how often an account is due for revaluation.
type ReconciliationFrequency string

const (
	FrequencyDaily     ReconciliationFrequency = "daily"
	FrequencyWeekly    ReconciliationFrequency = "weekly"
	FrequencyMonthly   ReconciliationFrequency = "monthly"
	FrequencyQuarterly ReconciliationFrequency = "quarterly"
)

// Interval returns the duration between reconciliations for the frequency.
// Months and quarters use fixed 30/90 day periods.
func (f ReconciliationFrequency) Interval() time.Duration {
	switch f {
	case FrequencyDaily:
		return 24 * time.Hour
	case FrequencyWeekly:
		return 7 * 24 * time.Hour
	case FrequencyQuarterly:
		return 90 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// Valid reports whether f is a recognized frequency.
func (f ReconciliationFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly:
		return true
	}
	return false
}

// AccountBalance is the caller-supplied snapshot of one account entering a
// reconciliation batch: its balance in the account currency and the rate at which that
// balance was last valued against the primary currency.
type AccountBalance struct {
	AccountID    string          `json:"accountID"`
	Currency     string          `json:"currency"`
	Balance      decimal.Decimal `json:"balance"`
	OriginalRate decimal.Decimal `json:"originalRate"`
	Period       string          `json:"period"`
}

// ReconciliationResult records one revaluation of an account's balance at a current
// exchange rate for an accounting period.
type ReconciliationResult struct {
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

// FXGainLoss is one row of the append-only FX movement history for an account.
type FXGainLoss struct {
	AccountID          string          `json:"accountID"`
	Currency           string          `json:"currency"`
	Period             string          `json:"period"`
	OriginalAmount     decimal.Decimal `json:"originalAmount"`
	CurrentAmount      decimal.Decimal `json:"currentAmount"`
	OriginalRate       decimal.Decimal `json:"originalRate"`
	CurrentRate        decimal.Decimal `json:"currentRate"`
	GainLoss           decimal.Decimal `json:"gainLoss"`
	GainLossPercentage decimal.Decimal `json:"gainLossPercentage"`
	IsRealized         bool            `json:"isRealized"`
	RecordedAt         time.Time       `json:"recordedAt"`
}

// FXGainLossSummary aggregates the latest-per-account gain/loss for a period.
type FXGainLossSummary struct {
	Period     string                     `json:"period"`
	Total      decimal.Decimal            `json:"total"`
	ByAccount  map[string]decimal.Decimal `json:"byAccount"`
	AccountIDs []string                   `json:"accountIDs"`
}

// ReconciliationConfig holds the recognized reconciliation options.
type ReconciliationConfig struct {
	AutoReconcile              bool
	Frequency                  ReconciliationFrequency
	ThresholdPercentage        decimal.Decimal
	FreezePeriods              []string
	NotifyOnSignificantChanges bool
	SignificantChangeThreshold decimal.Decimal
}

// DefaultReconciliationConfig returns the standard options: monthly cadence, 0.1% rate
// move threshold, 5% significant change threshold.
func DefaultReconciliationConfig() ReconciliationConfig {
	return ReconciliationConfig{
		AutoReconcile:              false,
		Frequency:                  FrequencyMonthly,
		ThresholdPercentage:        decimal.NewFromFloat(0.1),
		NotifyOnSignificantChanges: true,
		SignificantChangeThreshold: decimal.NewFromFloat(5),
	}
}
