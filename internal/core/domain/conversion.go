package domain

import (
	"github.com/shopspring/decimal"
)

// ConversionCase classifies a conversion request by which of the three currency roles
// (entered, account, primary) coincide. Exactly one case applies to any triple.
type ConversionCase string

const (
	// CaseAllSame: entered = account = primary; no conversion needed.
	CaseAllSame ConversionCase = "all_same"
	// CaseAmountAccountSame: entered = account, primary differs; convert entered→primary only.
	CaseAmountAccountSame ConversionCase = "amount_account_same"
	// CaseAmountPrimarySame: entered = primary, account differs; convert entered→account only.
	CaseAmountPrimarySame ConversionCase = "amount_primary_same"
	// CaseAccountPrimarySame: account = primary, entered differs; one conversion reused for both.
	CaseAccountPrimarySame ConversionCase = "account_primary_same"
	// CaseAllDifferent: no two currencies equal; convert entered→account and entered→primary.
	CaseAllDifferent ConversionCase = "all_different"

	// CaseAmountDifferentOthersSame is a legacy alias for CaseAccountPrimarySame. The
	// classifier never emits it; it is kept so audit records written by older clients
	// under that label still match a declared case.
	CaseAmountDifferentOthersSame ConversionCase = "amount_different_others_same"
)

// ClassifyConversion returns the conversion case for a currency triple.
func ClassifyConversion(entered, account, primary string) ConversionCase {
	switch {
	case entered == account && account == primary:
		return CaseAllSame
	case entered == account:
		return CaseAmountAccountSame
	case entered == primary:
		return CaseAmountPrimarySame
	case account == primary:
		return CaseAccountPrimarySame
	default:
		return CaseAllDifferent
	}
}

// RequiredLookups returns the minimal number of rate lookups the case needs.
func (c ConversionCase) RequiredLookups() int {
	switch c {
	case CaseAllSame:
		return 0
	case CaseAllDifferent:
		return 2
	default:
		return 1
	}
}

// DefaultFeePercentage is the conversion fee applied when a request enables fees
// without specifying its own percentage (0.25%).
var DefaultFeePercentage = decimal.NewFromFloat(0.0025)

// SameCurrencySource marks conversions that required no rate lookup.
const SameCurrencySource = "same_currency"

// ConversionRequest is the input to a single conversion. Amount is the value as
// entered by the user; sign and direction are the caller's concern, so Amount must be
// non-negative here.
type ConversionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	EnteredCurrency string          `json:"enteredCurrency"`
	AccountCurrency string          `json:"accountCurrency"`
	PrimaryCurrency string          `json:"primaryCurrency"`
	IncludeFees     bool            `json:"includeFees"`
	FeePercentage   decimal.Decimal `json:"feePercentage"`
}

// ConversionResult carries the three-way amount breakdown of one conversion plus fee
// and audit metadata. Produced fresh per call and never persisted by this subsystem.
type ConversionResult struct {
	EnteredAmount   decimal.Decimal `json:"enteredAmount"`
	EnteredCurrency string          `json:"enteredCurrency"`
	EnteredSymbol   string          `json:"enteredSymbol"`

	AccountAmount   decimal.Decimal `json:"accountAmount"`
	AccountCurrency string          `json:"accountCurrency"`
	AccountSymbol   string          `json:"accountSymbol"`

	PrimaryAmount   decimal.Decimal `json:"primaryAmount"`
	PrimaryCurrency string          `json:"primaryCurrency"`
	PrimarySymbol   string          `json:"primarySymbol"`

	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	ConversionCase   ConversionCase  `json:"conversionCase"`
	ConversionFee    decimal.Decimal `json:"conversionFee"`
	TotalCost        decimal.Decimal `json:"totalCost"`
	ConversionSource string          `json:"conversionSource"`
	RateRecord       *ExchangeRate   `json:"rateRecord,omitempty"`
	AuditID          string          `json:"auditID"`
}
