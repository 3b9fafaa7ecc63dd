package services

import (
	"context"

	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransferSvcFacade expresses a money movement between two accounts as a matched pair
// of independently converted legs.
type TransferSvcFacade interface {
	// CreateTransfer validates the request, runs both conversion legs, and computes
	// FX gain/loss and total fees. All-or-nothing: either leg failing fails the whole.
	CreateTransfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferResult, error)

	// CreateSameCurrencyTransfer is the shortcut for two accounts sharing a currency:
	// rate fixed at 1, no fee, no conversion engine call.
	CreateSameCurrencyTransfer(ctx context.Context, fromAccountID, toAccountID, currencyCode string, amount decimal.Decimal) (*domain.TransferResult, error)

	// ValidateTransfer runs the pre-flight checks without converting anything.
	ValidateTransfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferValidation, error)
}
