package domain_test

import (
	"testing"

	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestClassifyConversion(t *testing.T) {
	testCases := []struct {
		name     string
		entered  string
		account  string
		primary  string
		expected domain.ConversionCase
	}{
		{"all three equal", "USD", "USD", "USD", domain.CaseAllSame},
		{"entered equals account", "USD", "USD", "INR", domain.CaseAmountAccountSame},
		{"entered equals primary", "USD", "EUR", "USD", domain.CaseAmountPrimarySame},
		{"account equals primary", "USD", "EUR", "EUR", domain.CaseAccountPrimarySame},
		{"all different", "USD", "EUR", "INR", domain.CaseAllDifferent},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.ClassifyConversion(tc.entered, tc.account, tc.primary))
		})
	}
}

func TestClassifyConversion_NeverEmitsLegacyAlias(t *testing.T) {
	codes := []string{"USD", "EUR", "INR"}
	for _, entered := range codes {
		for _, account := range codes {
			for _, primary := range codes {
				result := domain.ClassifyConversion(entered, account, primary)
				assert.NotEqual(t, domain.CaseAmountDifferentOthersSame, result,
					"triple %s/%s/%s must classify to a canonical case", entered, account, primary)
			}
		}
	}
}

func TestRequiredLookups(t *testing.T) {
	assert.Equal(t, 0, domain.CaseAllSame.RequiredLookups())
	assert.Equal(t, 1, domain.CaseAmountAccountSame.RequiredLookups())
	assert.Equal(t, 1, domain.CaseAmountPrimarySame.RequiredLookups())
	assert.Equal(t, 1, domain.CaseAccountPrimarySame.RequiredLookups())
	assert.Equal(t, 1, domain.CaseAmountDifferentOthersSame.RequiredLookups())
	assert.Equal(t, 2, domain.CaseAllDifferent.RequiredLookups())
}
