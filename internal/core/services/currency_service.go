package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
)

// CurrencyService serves the supported currency table. The table is static
// configuration data loaded once at construction; lookups never touch storage.
type CurrencyService struct {
	currencies map[string]domain.Currency
	restricted map[string]struct{}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

// NewCurrencyService creates a CurrencyService from the supported currency table and
// the list of restricted currency codes. An empty table falls back to the defaults.
func NewCurrencyService(currencies []domain.Currency, restrictedCodes []string) *CurrencyService {
	if len(currencies) == 0 {
		currencies = domain.DefaultCurrencies()
	}
	byCode := make(map[string]domain.Currency, len(currencies))
	for _, c := range currencies {
		byCode[strings.ToUpper(c.CurrencyCode)] = c
	}
	restricted := make(map[string]struct{}, len(restrictedCodes))
	for _, code := range restrictedCodes {
		restricted[strings.ToUpper(code)] = struct{}{}
	}
	return &CurrencyService{currencies: byCode, restricted: restricted}
}

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(currencyCode)
	if len(code) != 3 {
		return nil, fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	currency, ok := s.currencies[code]
	if !ok {
		return nil, fmt.Errorf("%w: currency %s is not supported", apperrors.ErrNotFound, code)
	}
	return &currency, nil
}

// ListCurrencies retrieves all supported currencies sorted by code.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

// IsSupported reports whether the code is in the supported set.
func (s *CurrencyService) IsSupported(ctx context.Context, currencyCode string) bool {
	_, ok := s.currencies[strings.ToUpper(currencyCode)]
	return ok
}

// IsRestricted reports whether transfers in this currency are blocked.
func (s *CurrencyService) IsRestricted(ctx context.Context, currencyCode string) bool {
	_, ok := s.restricted[strings.ToUpper(currencyCode)]
	return ok
}
