package domain

import "github.com/shopspring/decimal"

// TransferRequest describes a money movement between two accounts, potentially across
// currencies. Account balances and currencies are caller-supplied context; this core
// never reads accounts directly.
type TransferRequest struct {
	FromAccountID       string          `json:"fromAccountID"`
	ToAccountID         string          `json:"toAccountID"`
	FromAccountCurrency string          `json:"fromAccountCurrency"`
	ToAccountCurrency   string          `json:"toAccountCurrency"`
	PrimaryCurrency     string          `json:"primaryCurrency"`
	Amount              decimal.Decimal `json:"amount"`
	EnteredCurrency     string          `json:"enteredCurrency"`
	IncludeFees         bool            `json:"includeFees"`
	FeePercentage       decimal.Decimal `json:"feePercentage"`
}

// TransferResult pairs the two legs of one logical money movement: an expense leaving
// the source account and an income entering the destination account, each independently
// currency-converted so the books balance per account.
type TransferResult struct {
	FromAccountID  string           `json:"fromAccountID"`
	ToAccountID    string           `json:"toAccountID"`
	SourceLeg      ConversionResult `json:"sourceLeg"`
	DestinationLeg ConversionResult `json:"destinationLeg"`
	// FXGainLoss is the destination leg's primary-currency amount minus the source
	// leg's, capturing the economic effect of converting through two different rates.
	FXGainLoss decimal.Decimal `json:"fxGainLoss"`
	TotalFees  decimal.Decimal `json:"totalFees"`
}

// TransferValidation is the outcome of a pre-flight transfer check. Errors block the
// transfer; warnings do not.
type TransferValidation struct {
	IsValid  bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}
