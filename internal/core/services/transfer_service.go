package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/utils/fx"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// feeWarningThreshold is the fraction of the transfer amount above which projected
// fees trigger a validation warning (1%).
var feeWarningThreshold = decimal.NewFromFloat(0.01)

// TransferService expresses a money movement between two accounts as a matched pair of
// legs (an expense leaving the source, an income entering the destination), each
// independently currency-converted so the books balance per account even when
// currencies differ. It never persists anything; atomicity is the caller's concern.
type TransferService struct {
	BaseService
	conversionSvc portssvc.ConversionSvcFacade
	currencySvc   portssvc.CurrencySvcFacade
}

var _ portssvc.TransferSvcFacade = (*TransferService)(nil)

// NewTransferService creates a TransferService.
func NewTransferService(conversionSvc portssvc.ConversionSvcFacade, currencySvc portssvc.CurrencySvcFacade) *TransferService {
	return &TransferService{
		conversionSvc: conversionSvc,
		currencySvc:   currencySvc,
	}
}

// CreateTransfer validates the request, converts the source and destination legs, and
// computes FX gain/loss across them. Validation errors block the transfer before any
// conversion is attempted; a conversion failure on either leg fails the whole transfer.
func (s *TransferService) CreateTransfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error) {
	validation, err := s.ValidateTransfer(ctx, req)
	if err != nil {
		return nil, err
	}
	if !validation.IsValid {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(validation.Errors, "; "))
	}
	for _, warning := range validation.Warnings {
		s.LogWarn(ctx, "Transfer warning", slog.String("warning", warning))
	}

	sourceLeg, err := s.conversionSvc.Convert(ctx, domain.ConversionRequest{
		Amount:          req.Amount,
		EnteredCurrency: req.EnteredCurrency,
		AccountCurrency: req.FromAccountCurrency,
		PrimaryCurrency: req.PrimaryCurrency,
		IncludeFees:     req.IncludeFees,
		FeePercentage:   req.FeePercentage,
	})
	if err != nil {
		return nil, fmt.Errorf("source leg conversion failed: %w", err)
	}

	destinationLeg, err := s.conversionSvc.Convert(ctx, domain.ConversionRequest{
		Amount:          req.Amount,
		EnteredCurrency: req.EnteredCurrency,
		AccountCurrency: req.ToAccountCurrency,
		PrimaryCurrency: req.PrimaryCurrency,
		IncludeFees:     req.IncludeFees,
		FeePercentage:   req.FeePercentage,
	})
	if err != nil {
		return nil, fmt.Errorf("destination leg conversion failed: %w", err)
	}

	result := &domain.TransferResult{
		FromAccountID:  req.FromAccountID,
		ToAccountID:    req.ToAccountID,
		SourceLeg:      *sourceLeg,
		DestinationLeg: *destinationLeg,
		FXGainLoss:     destinationLeg.PrimaryAmount.Sub(sourceLeg.PrimaryAmount),
		TotalFees:      sourceLeg.ConversionFee.Add(destinationLeg.ConversionFee),
	}

	s.LogInfo(ctx, "Transfer created",
		slog.String("from_account", req.FromAccountID),
		slog.String("to_account", req.ToAccountID),
		slog.String("fx_gain_loss", result.FXGainLoss.String()),
		slog.String("total_fees", result.TotalFees.String()))
	return result, nil
}

// CreateSameCurrencyTransfer is the shortcut for two accounts sharing a currency: the
// rate is fixed at 1, the fee is 0, and no conversion engine call is made.
func (s *TransferService) CreateSameCurrencyTransfer(ctx context.Context, fromAccountID, toAccountID, currencyCode string, amount decimal.Decimal) (*domain.TransferResult, error) {
	if fromAccountID == toAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currencyCode)
	}

	rounded := fx.RoundToCurrency(amount, currency.DecimalPlaces)
	leg := domain.ConversionResult{
		EnteredAmount:    rounded,
		EnteredCurrency:  currency.CurrencyCode,
		EnteredSymbol:    currency.Symbol,
		AccountAmount:    rounded,
		AccountCurrency:  currency.CurrencyCode,
		AccountSymbol:    currency.Symbol,
		PrimaryAmount:    rounded,
		PrimaryCurrency:  currency.CurrencyCode,
		PrimarySymbol:    currency.Symbol,
		ExchangeRate:     decimal.NewFromInt(1),
		ConversionCase:   domain.CaseAllSame,
		ConversionFee:    decimal.Zero,
		TotalCost:        rounded,
		ConversionSource: domain.SameCurrencySource,
	}

	sourceLeg := leg
	sourceLeg.AuditID = uuid.NewString()
	destinationLeg := leg
	destinationLeg.AuditID = uuid.NewString()

	return &domain.TransferResult{
		FromAccountID:  fromAccountID,
		ToAccountID:    toAccountID,
		SourceLeg:      sourceLeg,
		DestinationLeg: destinationLeg,
		FXGainLoss:     decimal.Zero,
		TotalFees:      decimal.Zero,
	}, nil
}

// ValidateTransfer runs the pre-flight checks: errors for restricted currencies,
// non-positive amounts, and identical accounts; warnings for cross-currency exposure
// and projected fees exceeding 1% of the amount.
func (s *TransferService) ValidateTransfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferValidation, error) {
	validation := &domain.TransferValidation{
		Errors:   []string{},
		Warnings: []string{},
	}

	if req.FromAccountID == req.ToAccountID {
		validation.Errors = append(validation.Errors, "source and destination accounts must differ")
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		validation.Errors = append(validation.Errors, "amount must be positive")
	}

	for _, code := range []string{req.EnteredCurrency, req.FromAccountCurrency, req.ToAccountCurrency, req.PrimaryCurrency} {
		if !s.currencySvc.IsSupported(ctx, code) {
			validation.Errors = append(validation.Errors, fmt.Sprintf("currency %q is not supported", code))
		} else if s.currencySvc.IsRestricted(ctx, code) {
			validation.Errors = append(validation.Errors, fmt.Sprintf("currency %q is restricted for transfers", code))
		}
	}

	crossCurrency := req.FromAccountCurrency != req.ToAccountCurrency ||
		req.EnteredCurrency != req.FromAccountCurrency
	if crossCurrency {
		validation.Warnings = append(validation.Warnings, "transfer crosses currencies; amounts are subject to exchange rate movement")
	}

	if req.IncludeFees && req.Amount.IsPositive() {
		pct := req.FeePercentage
		if pct.IsZero() {
			pct = domain.DefaultFeePercentage
		}
		// Both legs charge the conversion fee.
		projectedFees := req.Amount.Mul(pct).Mul(decimal.NewFromInt(2))
		if projectedFees.GreaterThan(req.Amount.Mul(feeWarningThreshold)) {
			validation.Warnings = append(validation.Warnings, "projected conversion fees exceed 1% of the transfer amount")
		}
	}

	validation.IsValid = len(validation.Errors) == 0
	return validation, nil
}
