package fx

import "github.com/shopspring/decimal"

// RoundToCurrency rounds a monetary amount to the currency's own decimal precision.
// This is the only place amounts are rounded so services stay consistent.
func RoundToCurrency(amount decimal.Decimal, decimalPlaces int32) decimal.Decimal {
	return amount.Round(decimalPlaces)
}

// PercentageOf computes part as a percentage of whole. Returns zero when whole is zero
// to keep batch reconciliation from dividing by zero on empty balances.
func PercentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(decimal.NewFromInt(100))
}

// PercentageChange computes the relative move from old to new as a percentage.
func PercentageChange(oldValue, newValue decimal.Decimal) decimal.Decimal {
	if oldValue.IsZero() {
		return decimal.Zero
	}
	return newValue.Sub(oldValue).Div(oldValue).Mul(decimal.NewFromInt(100))
}
