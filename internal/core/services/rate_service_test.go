package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise/fxcore_app/internal/adapters/memory"
	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portsproviders "github.com/pennywise/fxcore_app/internal/core/ports/providers"
	"github.com/pennywise/fxcore_app/internal/core/services"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
	name     string
	priority int
}

func (m *MockRateProvider) Name() string  { return m.name }
func (m *MockRateProvider) Priority() int { return m.priority }

func (m *MockRateProvider) FetchLatest(ctx context.Context, baseCode string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, baseCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	rateRepo  *memory.RateRepository
	primary   *MockRateProvider
	secondary *MockRateProvider
	service   *services.RateService
	now       time.Time
	today     time.Time
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.rateRepo = memory.NewRateRepository()
	suite.primary = &MockRateProvider{name: "exchangerate-api", priority: 1}
	suite.secondary = &MockRateProvider{name: "exchange-host", priority: 2}
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	suite.today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	currencySvc := services.NewCurrencyService(nil, nil)
	suite.service = services.NewRateService(
		suite.rateRepo,
		currencySvc,
		[]portsproviders.RateProvider{suite.secondary, suite.primary}, // intentionally out of order
		"USD",
		services.WithClock(func() time.Time { return suite.now }),
	)
}

func (suite *RateServiceTestSuite) seedRate(base, target string, rate string, fxDate time.Time, isStale bool) {
	err := suite.rateRepo.SaveRates(context.Background(), []domain.ExchangeRate{{
		RateID:             uuid.NewString(),
		BaseCurrencyCode:   base,
		TargetCurrencyCode: target,
		Rate:               decimal.RequireFromString(rate),
		FxDate:             fxDate,
		Source:             "exchangerate-api",
		IsStale:            isStale,
	}})
	suite.Require().NoError(err)
}

// --- Fetch tests ---

func (suite *RateServiceTestSuite) TestFetchTodaysRates_PrimaryProviderSuccess() {
	ctx := context.Background()
	suite.primary.On("FetchLatest", ctx, "USD").Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.85"),
		"JPY": decimal.RequireFromString("150.12"),
		"USD": decimal.RequireFromString("1"),      // base currency, skipped
		"XAU": decimal.RequireFromString("0.0005"), // unsupported, skipped
		"GBP": decimal.RequireFromString("-1"),     // non-positive, skipped
	}, nil).Once()

	rates, err := suite.service.FetchTodaysRates(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(rates, 2)
	for _, rate := range rates {
		suite.Equal("USD", rate.BaseCurrencyCode)
		suite.Equal("exchangerate-api", rate.Source)
		suite.False(rate.IsStale)
		suite.True(rate.FxDate.Equal(suite.today))
	}

	// Persisted, not just returned.
	stored, err := suite.rateRepo.FindRatesForDate(ctx, suite.today)
	suite.Require().NoError(err)
	suite.Len(stored, 2)
	suite.primary.AssertExpectations(suite.T())
	suite.secondary.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestFetchTodaysRates_FallsBackToSecondaryProvider() {
	ctx := context.Background()
	suite.primary.On("FetchLatest", ctx, "USD").
		Return(nil, apperrors.NewProviderError("exchangerate-api", apperrors.ErrProvider)).Once()
	suite.secondary.On("FetchLatest", ctx, "USD").Return(map[string]decimal.Decimal{
		"EUR": decimal.RequireFromString("0.86"),
	}, nil).Once()

	rates, err := suite.service.FetchTodaysRates(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(rates, 1)
	suite.Equal("exchange-host", rates[0].Source)
	suite.primary.AssertExpectations(suite.T())
	suite.secondary.AssertExpectations(suite.T())
}

func (suite *RateServiceTestSuite) TestFetchTodaysRates_IdempotentWhenRatesExist() {
	ctx := context.Background()
	suite.seedRate("USD", "EUR", "0.85", suite.today, false)

	rates, err := suite.service.FetchTodaysRates(ctx)

	suite.Require().NoError(err)
	suite.Len(rates, 1)
	suite.primary.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
	suite.secondary.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestFetchTodaysRates_AllProvidersFail_CarriesYesterdayForward() {
	ctx := context.Background()
	yesterday := suite.today.AddDate(0, 0, -1)
	suite.seedRate("USD", "EUR", "0.84", yesterday, false)
	suite.seedRate("USD", "JPY", "149.5", yesterday, false)

	suite.primary.On("FetchLatest", ctx, "USD").
		Return(nil, apperrors.NewProviderError("exchangerate-api", apperrors.ErrProvider)).Once()
	suite.secondary.On("FetchLatest", ctx, "USD").
		Return(nil, apperrors.NewProviderError("exchange-host", apperrors.ErrProvider)).Once()

	rates, err := suite.service.FetchTodaysRates(ctx)

	suite.Require().NoError(err)
	suite.Require().Len(rates, 2)
	for _, rate := range rates {
		suite.True(rate.IsStale, "carried-forward rates must be marked stale")
		suite.True(rate.FxDate.Equal(suite.today))
	}

	hasStale, err := suite.service.CheckStaleRates(ctx)
	suite.Require().NoError(err)
	suite.True(hasStale)
}

func (suite *RateServiceTestSuite) TestFetchTodaysRates_AllProvidersFail_NoHistory() {
	ctx := context.Background()
	suite.primary.On("FetchLatest", ctx, "USD").
		Return(nil, apperrors.NewProviderError("exchangerate-api", apperrors.ErrProvider)).Once()
	suite.secondary.On("FetchLatest", ctx, "USD").
		Return(nil, apperrors.NewProviderError("exchange-host", apperrors.ErrProvider)).Once()

	rates, err := suite.service.FetchTodaysRates(ctx)

	suite.Require().NoError(err)
	suite.Empty(rates)
}

// --- GetRate tests ---

func (suite *RateServiceTestSuite) TestGetRate_SamePairShortCircuits() {
	rate, err := suite.service.GetRate(context.Background(), "USD", "USD", time.Time{})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1).Equal(rate.Rate))
	suite.Equal(domain.SameCurrencySource, rate.Source)
}

func (suite *RateServiceTestSuite) TestGetRate_DirectRate() {
	suite.seedRate("USD", "INR", "88", suite.today, false)

	rate, err := suite.service.GetRate(context.Background(), "USD", "INR", time.Time{})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(88).Equal(rate.Rate))
}

func (suite *RateServiceTestSuite) TestGetRate_InverseRate() {
	suite.seedRate("USD", "EUR", "0.8", suite.today, false)

	rate, err := suite.service.GetRate(context.Background(), "EUR", "USD", time.Time{})

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("1.25").Equal(rate.Rate))
	suite.Equal("EUR", rate.BaseCurrencyCode)
	suite.Equal("USD", rate.TargetCurrencyCode)
}

func (suite *RateServiceTestSuite) TestGetRate_CrossRateViaBaseCurrency() {
	suite.seedRate("USD", "EUR", "0.8", suite.today, false)
	suite.seedRate("USD", "INR", "80", suite.today, false)

	rate, err := suite.service.GetRate(context.Background(), "EUR", "INR", time.Time{})

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(100).Equal(rate.Rate), "EUR->INR should be 80 / 0.8, got %s", rate.Rate)
}

func (suite *RateServiceTestSuite) TestGetRate_CrossRateInheritsStaleness() {
	suite.seedRate("USD", "EUR", "0.8", suite.today, true)
	suite.seedRate("USD", "INR", "80", suite.today, false)

	rate, err := suite.service.GetRate(context.Background(), "EUR", "INR", time.Time{})

	suite.Require().NoError(err)
	suite.True(rate.IsStale, "a cross rate built from any stale leg is stale")
}

func (suite *RateServiceTestSuite) TestGetRate_FallsBackOneDay() {
	yesterday := suite.today.AddDate(0, 0, -1)
	suite.seedRate("USD", "EUR", "0.84", yesterday, false)

	rate, err := suite.service.GetRate(context.Background(), "USD", "EUR", time.Time{})

	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("0.84").Equal(rate.Rate))
}

func (suite *RateServiceTestSuite) TestGetRate_UnavailableAfterFallback() {
	_, err := suite.service.GetRate(context.Background(), "USD", "EUR", time.Time{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *RateServiceTestSuite) TestGetRate_InvalidCurrencyCode() {
	_, err := suite.service.GetRate(context.Background(), "US", "EUR", time.Time{})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *RateServiceTestSuite) TestCheckStaleRates_FalseWhenAllFresh() {
	suite.seedRate("USD", "EUR", "0.85", suite.today, false)

	hasStale, err := suite.service.CheckStaleRates(context.Background())

	suite.Require().NoError(err)
	suite.False(hasStale)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
