package services

import (
	"context"

	"github.com/pennywise/fxcore_app/internal/core/domain"
)

// CurrencyReaderSvc defines read operations over the supported currency table.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all supported currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// IsSupported reports whether the code is in the supported set.
	IsSupported(ctx context.Context, currencyCode string) bool

	// IsRestricted reports whether transfers in this currency are blocked.
	IsRestricted(ctx context.Context, currencyCode string) bool
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
}
