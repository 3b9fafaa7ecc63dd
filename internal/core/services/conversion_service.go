package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/utils/fx"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConversionService converts one amount across up to three currency roles (entered,
// account, primary) in a single deterministic, auditable operation. It performs only
// the minimal rate lookups the case classification requires.
type ConversionService struct {
	BaseService
	rateSvc     portssvc.RateReaderSvc
	currencySvc portssvc.CurrencySvcFacade
}

var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)

// NewConversionService creates a ConversionService.
func NewConversionService(rateSvc portssvc.RateReaderSvc, currencySvc portssvc.CurrencySvcFacade) *ConversionService {
	return &ConversionService{
		rateSvc:     rateSvc,
		currencySvc: currencySvc,
	}
}

// Convert classifies the request, performs the required conversions at each target
// currency's own precision, applies the optional conversion fee in the entered
// currency, and stamps provenance plus a fresh audit id.
//
// When both the account and primary conversions are needed (all_different), the
// headline ExchangeRate and RateRecord are the entered→account leg's; the primary
// leg's rate is recoverable from the amounts.
func (s *ConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	entered, account, primary, err := s.validateRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	conversionCase := domain.ClassifyConversion(entered.CurrencyCode, account.CurrencyCode, primary.CurrencyCode)

	result := &domain.ConversionResult{
		EnteredAmount:   fx.RoundToCurrency(req.Amount, entered.DecimalPlaces),
		EnteredCurrency: entered.CurrencyCode,
		EnteredSymbol:   entered.Symbol,
		AccountCurrency: account.CurrencyCode,
		AccountSymbol:   account.Symbol,
		PrimaryCurrency: primary.CurrencyCode,
		PrimarySymbol:   primary.Symbol,
		ConversionCase:  conversionCase,
		AuditID:         uuid.NewString(),
	}

	switch conversionCase {
	case domain.CaseAllSame:
		result.AccountAmount = fx.RoundToCurrency(req.Amount, account.DecimalPlaces)
		result.PrimaryAmount = fx.RoundToCurrency(req.Amount, primary.DecimalPlaces)
		result.ExchangeRate = decimal.NewFromInt(1)
		result.ConversionSource = domain.SameCurrencySource

	case domain.CaseAmountAccountSame:
		rate, err := s.rateSvc.GetRate(ctx, entered.CurrencyCode, primary.CurrencyCode, time.Time{})
		if err != nil {
			return nil, err
		}
		result.AccountAmount = fx.RoundToCurrency(req.Amount, account.DecimalPlaces)
		result.PrimaryAmount = fx.RoundToCurrency(req.Amount.Mul(rate.Rate), primary.DecimalPlaces)
		result.ExchangeRate = rate.Rate
		result.ConversionSource = rate.Source
		result.RateRecord = rate

	case domain.CaseAmountPrimarySame:
		rate, err := s.rateSvc.GetRate(ctx, entered.CurrencyCode, account.CurrencyCode, time.Time{})
		if err != nil {
			return nil, err
		}
		result.AccountAmount = fx.RoundToCurrency(req.Amount.Mul(rate.Rate), account.DecimalPlaces)
		result.PrimaryAmount = fx.RoundToCurrency(req.Amount, primary.DecimalPlaces)
		result.ExchangeRate = rate.Rate
		result.ConversionSource = rate.Source
		result.RateRecord = rate

	case domain.CaseAccountPrimarySame, domain.CaseAmountDifferentOthersSame:
		// account == primary: one conversion, reused for both roles.
		rate, err := s.rateSvc.GetRate(ctx, entered.CurrencyCode, account.CurrencyCode, time.Time{})
		if err != nil {
			return nil, err
		}
		converted := req.Amount.Mul(rate.Rate)
		result.AccountAmount = fx.RoundToCurrency(converted, account.DecimalPlaces)
		result.PrimaryAmount = fx.RoundToCurrency(converted, primary.DecimalPlaces)
		result.ExchangeRate = rate.Rate
		result.ConversionSource = rate.Source
		result.RateRecord = rate

	case domain.CaseAllDifferent:
		accountRate, err := s.rateSvc.GetRate(ctx, entered.CurrencyCode, account.CurrencyCode, time.Time{})
		if err != nil {
			return nil, err
		}
		primaryRate, err := s.rateSvc.GetRate(ctx, entered.CurrencyCode, primary.CurrencyCode, time.Time{})
		if err != nil {
			return nil, err
		}
		result.AccountAmount = fx.RoundToCurrency(req.Amount.Mul(accountRate.Rate), account.DecimalPlaces)
		result.PrimaryAmount = fx.RoundToCurrency(req.Amount.Mul(primaryRate.Rate), primary.DecimalPlaces)
		result.ExchangeRate = accountRate.Rate
		result.ConversionSource = accountRate.Source
		result.RateRecord = accountRate
	}

	result.ConversionFee = decimal.Zero
	result.TotalCost = result.EnteredAmount
	if req.IncludeFees {
		pct := req.FeePercentage
		if pct.IsZero() {
			pct = domain.DefaultFeePercentage
		}
		result.ConversionFee = fx.RoundToCurrency(req.Amount.Mul(pct), entered.DecimalPlaces)
		result.TotalCost = result.EnteredAmount.Add(result.ConversionFee)
	}

	s.LogInfo(ctx, "Conversion completed",
		slog.String("audit_id", result.AuditID),
		slog.String("case", string(result.ConversionCase)),
		slog.String("entered", result.EnteredCurrency),
		slog.String("account", result.AccountCurrency),
		slog.String("primary", result.PrimaryCurrency),
		slog.String("source", result.ConversionSource))
	return result, nil
}

// validateRequest checks the amount and resolves all three currency roles against the
// supported table.
func (s *ConversionService) validateRequest(ctx context.Context, req domain.ConversionRequest) (entered, account, primary *domain.Currency, err error) {
	if req.Amount.IsNegative() {
		return nil, nil, nil, fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}
	if req.FeePercentage.IsNegative() {
		return nil, nil, nil, fmt.Errorf("%w: fee percentage must be non-negative", apperrors.ErrValidation)
	}

	entered, err = s.lookupCurrency(ctx, req.EnteredCurrency, "entered")
	if err != nil {
		return nil, nil, nil, err
	}
	account, err = s.lookupCurrency(ctx, req.AccountCurrency, "account")
	if err != nil {
		return nil, nil, nil, err
	}
	primary, err = s.lookupCurrency(ctx, req.PrimaryCurrency, "primary")
	if err != nil {
		return nil, nil, nil, err
	}
	return entered, account, primary, nil
}

func (s *ConversionService) lookupCurrency(ctx context.Context, code, role string) (*domain.Currency, error) {
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported %s currency %q", apperrors.ErrValidation, role, code)
	}
	return currency, nil
}
