package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatePrecision is the number of decimal places at which exchange rates are stored
// and compared.
const RatePrecision int32 = 6

// ExchangeRate is an immutable point-in-time quote: 1 unit of the base currency equals
// Rate units of the target currency on FxDate. Rows are created once per day per pair
// by the rate fetcher and never mutated, only superseded by a new day's row. A stale
// row is an explicit copy of a prior day's quote with IsStale=true and a bumped FxDate.
type ExchangeRate struct {
	RateID             string          `json:"rateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	FxDate             time.Time       `json:"fxDate"`
	Source             string          `json:"source"`
	IsStale            bool            `json:"isStale"`
	AuditFields
}

// NormalizeRate rounds a raw provider quote to the canonical rate precision.
func NormalizeRate(rate decimal.Decimal) decimal.Decimal {
	return rate.Round(RatePrecision)
}

// TruncateToDate normalizes a timestamp to the calendar date a rate applies to.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
