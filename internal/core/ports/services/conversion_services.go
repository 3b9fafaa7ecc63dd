package services

import (
	"context"

	"github.com/pennywise/fxcore_app/internal/core/domain"
)

// ConversionSvcFacade converts one amount across the entered/account/primary currency
// roles in a single deterministic, auditable operation.
type ConversionSvcFacade interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
}
