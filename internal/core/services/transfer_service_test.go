package services_test

import (
	"context"
	"testing"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/pennywise/fxcore_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ConversionSvcFacade ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

// --- Test Suite ---
type TransferServiceTestSuite struct {
	suite.Suite
	mockConversion *MockConversionService
	service        *services.TransferService
}

func (suite *TransferServiceTestSuite) SetupTest() {
	suite.mockConversion = new(MockConversionService)
	currencySvc := services.NewCurrencyService(nil, []string{"KRW"})
	suite.service = services.NewTransferService(suite.mockConversion, currencySvc)
}

func (suite *TransferServiceTestSuite) crossCurrencyRequest() domain.TransferRequest {
	return domain.TransferRequest{
		FromAccountID:       "acc-usd",
		ToAccountID:         "acc-eur",
		FromAccountCurrency: "USD",
		ToAccountCurrency:   "EUR",
		PrimaryCurrency:     "USD",
		Amount:              decimal.NewFromInt(100),
		EnteredCurrency:     "USD",
	}
}

func legMatcher(accountCurrency string) interface{} {
	return mock.MatchedBy(func(req domain.ConversionRequest) bool {
		return req.AccountCurrency == accountCurrency
	})
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_PairedLegs() {
	ctx := context.Background()
	req := suite.crossCurrencyRequest()

	sourceLeg := &domain.ConversionResult{
		PrimaryAmount: decimal.NewFromInt(100),
		ConversionFee: decimal.RequireFromString("0.25"),
	}
	destinationLeg := &domain.ConversionResult{
		PrimaryAmount: decimal.RequireFromString("99.50"),
		ConversionFee: decimal.RequireFromString("0.25"),
	}
	suite.mockConversion.On("Convert", ctx, legMatcher("USD")).Return(sourceLeg, nil).Once()
	suite.mockConversion.On("Convert", ctx, legMatcher("EUR")).Return(destinationLeg, nil).Once()

	result, err := suite.service.CreateTransfer(ctx, req)

	suite.Require().NoError(err)
	suite.Equal("acc-usd", result.FromAccountID)
	suite.Equal("acc-eur", result.ToAccountID)
	suite.True(decimal.RequireFromString("-0.50").Equal(result.FXGainLoss),
		"gain/loss is destination primary minus source primary")
	suite.True(decimal.RequireFromString("0.50").Equal(result.TotalFees))
	suite.mockConversion.AssertExpectations(suite.T())
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_ValidationBlocksConversion() {
	ctx := context.Background()
	req := suite.crossCurrencyRequest()
	req.ToAccountID = req.FromAccountID

	_, err := suite.service.CreateTransfer(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockConversion.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateTransfer_DestinationLegFailureFailsWhole() {
	ctx := context.Background()
	req := suite.crossCurrencyRequest()

	suite.mockConversion.On("Convert", ctx, legMatcher("USD")).
		Return(&domain.ConversionResult{PrimaryAmount: decimal.NewFromInt(100)}, nil).Once()
	suite.mockConversion.On("Convert", ctx, legMatcher("EUR")).
		Return(nil, apperrors.ErrRateUnavailable).Once()

	_, err := suite.service.CreateTransfer(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
}

func (suite *TransferServiceTestSuite) TestCreateSameCurrencyTransfer() {
	result, err := suite.service.CreateSameCurrencyTransfer(context.Background(),
		"acc-1", "acc-2", "USD", decimal.RequireFromString("42.424"))

	suite.Require().NoError(err)
	suite.True(result.FXGainLoss.IsZero())
	suite.True(result.TotalFees.IsZero())
	suite.True(decimal.NewFromInt(1).Equal(result.SourceLeg.ExchangeRate))
	suite.Equal(domain.CaseAllSame, result.SourceLeg.ConversionCase)
	suite.Equal(domain.SameCurrencySource, result.SourceLeg.ConversionSource)
	suite.True(decimal.RequireFromString("42.42").Equal(result.SourceLeg.EnteredAmount))
	suite.NotEmpty(result.SourceLeg.AuditID)
	suite.NotEqual(result.SourceLeg.AuditID, result.DestinationLeg.AuditID)
	suite.mockConversion.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything)
}

func (suite *TransferServiceTestSuite) TestCreateSameCurrencyTransfer_Rejections() {
	ctx := context.Background()

	_, err := suite.service.CreateSameCurrencyTransfer(ctx, "acc-1", "acc-1", "USD", decimal.NewFromInt(10))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateSameCurrencyTransfer(ctx, "acc-1", "acc-2", "USD", decimal.Zero)
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.CreateSameCurrencyTransfer(ctx, "acc-1", "acc-2", "XAU", decimal.NewFromInt(10))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransferServiceTestSuite) TestValidateTransfer_Errors() {
	ctx := context.Background()
	req := suite.crossCurrencyRequest()
	req.ToAccountID = req.FromAccountID
	req.Amount = decimal.NewFromInt(-1)
	req.ToAccountCurrency = "XAU"

	validation, err := suite.service.ValidateTransfer(ctx, req)

	suite.Require().NoError(err)
	suite.False(validation.IsValid)
	suite.Contains(validation.Errors, "source and destination accounts must differ")
	suite.Contains(validation.Errors, "amount must be positive")
	suite.Contains(validation.Errors, `currency "XAU" is not supported`)
}

func (suite *TransferServiceTestSuite) TestValidateTransfer_RestrictedCurrency() {
	ctx := context.Background()
	req := suite.crossCurrencyRequest()
	req.ToAccountCurrency = "KRW"

	validation, err := suite.service.ValidateTransfer(ctx, req)

	suite.Require().NoError(err)
	suite.False(validation.IsValid)
	suite.Contains(validation.Errors, `currency "KRW" is restricted for transfers`)
}

func (suite *TransferServiceTestSuite) TestValidateTransfer_CrossCurrencyWarning() {
	validation, err := suite.service.ValidateTransfer(context.Background(), suite.crossCurrencyRequest())

	suite.Require().NoError(err)
	suite.True(validation.IsValid)
	suite.NotEmpty(validation.Warnings)
}

func (suite *TransferServiceTestSuite) TestValidateTransfer_FeeWarningOnlyAboveThreshold() {
	ctx := context.Background()

	// Default fee (0.25% per leg) stays under the 1% warning threshold.
	req := suite.crossCurrencyRequest()
	req.IncludeFees = true
	validation, err := suite.service.ValidateTransfer(ctx, req)
	suite.Require().NoError(err)
	for _, warning := range validation.Warnings {
		suite.NotContains(warning, "fees")
	}

	// A 1% per-leg fee projects to 2% and triggers the warning.
	req.FeePercentage = decimal.RequireFromString("0.01")
	validation, err = suite.service.ValidateTransfer(ctx, req)
	suite.Require().NoError(err)
	suite.Contains(validation.Warnings, "projected conversion fees exceed 1% of the transfer amount")
}

func TestTransferServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransferServiceTestSuite))
}
