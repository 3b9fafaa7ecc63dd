package fx_test

import (
	"testing"

	"github.com/pennywise/fxcore_app/internal/utils/fx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToCurrency(t *testing.T) {
	amount := decimal.RequireFromString("123.456789")

	assert.True(t, decimal.RequireFromString("123.46").Equal(fx.RoundToCurrency(amount, 2)))
	assert.True(t, decimal.RequireFromString("123").Equal(fx.RoundToCurrency(amount, 0)))
	assert.True(t, decimal.RequireFromString("123.457").Equal(fx.RoundToCurrency(amount, 3)))
}

func TestPercentageOf(t *testing.T) {
	result := fx.PercentageOf(decimal.NewFromInt(25), decimal.NewFromInt(200))
	assert.True(t, decimal.RequireFromString("12.5").Equal(result))

	assert.True(t, fx.PercentageOf(decimal.NewFromInt(25), decimal.Zero).IsZero(),
		"zero whole must not divide by zero")
}

func TestPercentageChange(t *testing.T) {
	result := fx.PercentageChange(decimal.NewFromInt(80), decimal.NewFromInt(100))
	assert.True(t, decimal.NewFromInt(25).Equal(result))

	result = fx.PercentageChange(decimal.NewFromInt(100), decimal.NewFromInt(80))
	assert.True(t, decimal.NewFromInt(-20).Equal(result))

	assert.True(t, fx.PercentageChange(decimal.Zero, decimal.NewFromInt(5)).IsZero())
}
