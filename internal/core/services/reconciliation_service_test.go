package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise/fxcore_app/internal/adapters/memory"
	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	"github.com/pennywise/fxcore_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type ReconciliationServiceTestSuite struct {
	suite.Suite
	historyRepo *memory.FXHistoryRepository
	mockRates   *MockRateReader
	service     *services.ReconciliationService
	now         time.Time
}

func (suite *ReconciliationServiceTestSuite) SetupTest() {
	suite.historyRepo = memory.NewFXHistoryRepository()
	suite.mockRates = new(MockRateReader)
	suite.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	suite.service = services.NewReconciliationService(
		suite.historyRepo,
		suite.mockRates,
		domain.DefaultReconciliationConfig(),
		services.WithReconciliationClock(func() time.Time { return suite.now }),
	)
}

func (suite *ReconciliationServiceTestSuite) eurAccount() domain.AccountBalance {
	return domain.AccountBalance{
		AccountID:    "acc-eur",
		Currency:     "EUR",
		Balance:      decimal.NewFromInt(1000),
		OriginalRate: decimal.NewFromInt(1),
		Period:       "2025-03",
	}
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_Gain() {
	ctx := context.Background()

	result, err := suite.service.ReconcileAccount(ctx, suite.eurAccount(), decimal.RequireFromString("1.1"))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(1100).Equal(result.CurrentBalance))
	suite.True(decimal.NewFromInt(100).Equal(result.FXGainLoss), "rate appreciation is a gain")
	suite.True(decimal.NewFromInt(10).Equal(result.FXGainLossPercentage))
	suite.True(result.UnrealizedGainLoss.Equal(result.FXGainLoss))
	suite.True(result.RealizedGainLoss.IsZero())
	suite.True(result.LastReconciliation.Equal(suite.now))
	suite.True(result.NextReconciliation.Equal(suite.now.Add(domain.FrequencyMonthly.Interval())))

	// Both histories are written.
	last, err := suite.historyRepo.LatestReconciliation(ctx, "acc-eur")
	suite.Require().NoError(err)
	suite.True(last.FXGainLoss.Equal(result.FXGainLoss))

	history, err := suite.historyRepo.GainLossHistory(ctx, "acc-eur")
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.False(history[0].IsRealized)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_Loss() {
	result, err := suite.service.ReconcileAccount(context.Background(), suite.eurAccount(), decimal.RequireFromString("0.9"))

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(-100).Equal(result.FXGainLoss), "rate depreciation is a loss")
	suite.True(decimal.NewFromInt(-10).Equal(result.FXGainLossPercentage))
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_UnchangedRateIsZero() {
	result, err := suite.service.ReconcileAccount(context.Background(), suite.eurAccount(), decimal.NewFromInt(1))

	suite.Require().NoError(err)
	suite.True(result.FXGainLoss.IsZero())
	suite.True(result.FXGainLossPercentage.IsZero())
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_Rejections() {
	ctx := context.Background()

	account := suite.eurAccount()
	account.AccountID = ""
	_, err := suite.service.ReconcileAccount(ctx, account, decimal.NewFromInt(1))
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ReconcileAccount(ctx, suite.eurAccount(), decimal.Zero)
	suite.ErrorIs(err, apperrors.ErrValidation)

	account = suite.eurAccount()
	account.OriginalRate = decimal.NewFromInt(-1)
	_, err = suite.service.ReconcileAccount(ctx, account, decimal.NewFromInt(1))
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAccount_FrozenPeriodRefused() {
	config := domain.DefaultReconciliationConfig()
	config.FreezePeriods = []string{"2025-03"}
	service := services.NewReconciliationService(suite.historyRepo, suite.mockRates, config,
		services.WithReconciliationClock(func() time.Time { return suite.now }))

	_, err := service.ReconcileAccount(context.Background(), suite.eurAccount(), decimal.NewFromInt(1))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	history, err := suite.historyRepo.GainLossHistory(context.Background(), "acc-eur")
	suite.Require().NoError(err)
	suite.Empty(history, "a refused reconciliation must not write history")
}

func (suite *ReconciliationServiceTestSuite) TestReconcileAllAccounts_SkipsFailures() {
	ctx := context.Background()
	accounts := []domain.AccountBalance{
		suite.eurAccount(),
		{
			AccountID:    "acc-jpy",
			Currency:     "JPY",
			Balance:      decimal.NewFromInt(50000),
			OriginalRate: decimal.RequireFromString("0.0067"),
			Period:       "2025-03",
		},
	}

	suite.mockRates.On("GetRate", ctx, "EUR", "USD", time.Time{}).
		Return(storedRate("EUR", "USD", "1.1"), nil).Once()
	suite.mockRates.On("GetRate", ctx, "JPY", "USD", time.Time{}).
		Return(nil, apperrors.ErrRateUnavailable).Once()

	results, err := suite.service.ReconcileAllAccounts(ctx, accounts, "USD")

	suite.Require().NoError(err)
	suite.Require().Len(results, 1)
	suite.Equal("acc-eur", results[0].AccountID)
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *ReconciliationServiceTestSuite) TestIsReconciliationNeeded_NeverReconciled() {
	needed, err := suite.service.IsReconciliationNeeded(context.Background(), "acc-new", decimal.NewFromInt(1))

	suite.Require().NoError(err)
	suite.True(needed)
}

func (suite *ReconciliationServiceTestSuite) TestIsReconciliationNeeded_RecentReconciliation() {
	ctx := context.Background()
	suite.Require().NoError(suite.historyRepo.AppendReconciliation(ctx, domain.ReconciliationResult{
		AccountID:          "acc-eur",
		CurrentRate:        decimal.NewFromInt(1),
		LastReconciliation: suite.now.AddDate(0, 0, -5),
	}))

	needed, err := suite.service.IsReconciliationNeeded(ctx, "acc-eur", decimal.NewFromInt(2))

	suite.Require().NoError(err)
	suite.False(needed, "within the frequency interval no reconciliation is due")
}

func (suite *ReconciliationServiceTestSuite) TestIsReconciliationNeeded_RateMoveThreshold() {
	ctx := context.Background()
	suite.Require().NoError(suite.historyRepo.AppendReconciliation(ctx, domain.ReconciliationResult{
		AccountID:          "acc-eur",
		CurrentRate:        decimal.NewFromInt(1),
		LastReconciliation: suite.now.AddDate(0, 0, -40),
	}))

	// 0.05% move is below the 0.1% threshold.
	needed, err := suite.service.IsReconciliationNeeded(ctx, "acc-eur", decimal.RequireFromString("1.0005"))
	suite.Require().NoError(err)
	suite.False(needed)

	// 1% move is above it.
	needed, err = suite.service.IsReconciliationNeeded(ctx, "acc-eur", decimal.RequireFromString("1.01"))
	suite.Require().NoError(err)
	suite.True(needed)
}

func (suite *ReconciliationServiceTestSuite) TestCalculateTotalFXGainLoss() {
	ctx := context.Background()
	suite.Require().NoError(suite.historyRepo.AppendGainLoss(ctx, domain.FXGainLoss{
		AccountID: "acc-b", Period: "2025-03", GainLoss: decimal.NewFromInt(-40), RecordedAt: suite.now,
	}))
	suite.Require().NoError(suite.historyRepo.AppendGainLoss(ctx, domain.FXGainLoss{
		AccountID: "acc-a", Period: "2025-03", GainLoss: decimal.NewFromInt(100), RecordedAt: suite.now,
	}))
	suite.Require().NoError(suite.historyRepo.AppendGainLoss(ctx, domain.FXGainLoss{
		AccountID: "acc-a", Period: "2025-02", GainLoss: decimal.NewFromInt(999), RecordedAt: suite.now.AddDate(0, -1, 0),
	}))

	summary, err := suite.service.CalculateTotalFXGainLoss(ctx, "2025-03")

	suite.Require().NoError(err)
	suite.Equal("2025-03", summary.Period)
	suite.True(decimal.NewFromInt(60).Equal(summary.Total))
	suite.Equal([]string{"acc-a", "acc-b"}, summary.AccountIDs)
	suite.True(decimal.NewFromInt(100).Equal(summary.ByAccount["acc-a"]))
}

func (suite *ReconciliationServiceTestSuite) TestCheckForSignificantChanges() {
	ctx := context.Background()

	// No history yet.
	significant, err := suite.service.CheckForSignificantChanges(ctx, "acc-eur")
	suite.Require().NoError(err)
	suite.False(significant)

	suite.Require().NoError(suite.historyRepo.AppendGainLoss(ctx, domain.FXGainLoss{
		AccountID:          "acc-eur",
		Period:             "2025-03",
		GainLossPercentage: decimal.RequireFromString("-7.5"),
		RecordedAt:         suite.now,
	}))

	significant, err = suite.service.CheckForSignificantChanges(ctx, "acc-eur")
	suite.Require().NoError(err)
	suite.True(significant, "a 7.5% move exceeds the 5% threshold")
}

func (suite *ReconciliationServiceTestSuite) TestCheckForSignificantChanges_DisabledNotifications() {
	config := domain.DefaultReconciliationConfig()
	config.NotifyOnSignificantChanges = false
	service := services.NewReconciliationService(suite.historyRepo, suite.mockRates, config)

	suite.Require().NoError(suite.historyRepo.AppendGainLoss(context.Background(), domain.FXGainLoss{
		AccountID:          "acc-eur",
		GainLossPercentage: decimal.NewFromInt(50),
		RecordedAt:         suite.now,
	}))

	significant, err := service.CheckForSignificantChanges(context.Background(), "acc-eur")

	suite.Require().NoError(err)
	suite.False(significant)
}

func TestReconciliationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
