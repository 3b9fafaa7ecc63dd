package domain

// SymbolPosition indicates where a currency symbol is rendered relative to the amount.
type SymbolPosition string

const (
	SymbolBefore SymbolPosition = "before"
	SymbolAfter  SymbolPosition = "after"
)

// Currency represents a supported currency. The supported set is configuration data
// supplied at startup, not behavior; DecimalPlaces drives monetary rounding
// (2 for most currencies, 0 for yen-like currencies).
type Currency struct {
	CurrencyCode   string         `json:"currencyCode"` // e.g., "USD"
	Symbol         string         `json:"symbol"`       // e.g., "$"
	Name           string         `json:"name"`         // e.g., "US Dollar"
	DecimalPlaces  int32          `json:"decimalPlaces"`
	SymbolPosition SymbolPosition `json:"symbolPosition"`
}

// DefaultCurrencies is the built-in supported currency table. It can be overridden or
// extended through configuration.
func DefaultCurrencies() []Currency {
	return []Currency{
		{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "GBP", Symbol: "£", Name: "British Pound", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", DecimalPlaces: 0, SymbolPosition: SymbolBefore},
		{CurrencyCode: "KRW", Symbol: "₩", Name: "South Korean Won", DecimalPlaces: 0, SymbolPosition: SymbolBefore},
		{CurrencyCode: "AUD", Symbol: "A$", Name: "Australian Dollar", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "CAD", Symbol: "C$", Name: "Canadian Dollar", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "CHF", Symbol: "Fr", Name: "Swiss Franc", DecimalPlaces: 2, SymbolPosition: SymbolAfter},
		{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "SGD", Symbol: "S$", Name: "Singapore Dollar", DecimalPlaces: 2, SymbolPosition: SymbolBefore},
		{CurrencyCode: "AED", Symbol: "د.إ", Name: "UAE Dirham", DecimalPlaces: 2, SymbolPosition: SymbolAfter},
	}
}
