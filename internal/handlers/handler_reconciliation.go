package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/dto"
	"github.com/pennywise/fxcore_app/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// reconciliationHandler handles HTTP requests related to FX reconciliation.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// registerReconciliationRoutes registers routes related to reconciliation.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	reconciliation := rg.Group("/reconciliation")
	{
		reconciliation.POST("/accounts", h.reconcileAccount)
		reconciliation.POST("/run", h.reconcileAllAccounts)
		reconciliation.GET("/needed/:accountID", h.isReconciliationNeeded)
		reconciliation.GET("/gain-loss/:period", h.totalFXGainLoss)
		reconciliation.GET("/significant-changes/:accountID", h.checkSignificantChanges)
	}
}

// reconcileAccount godoc
// @Summary Reconcile one account
// @Description Revalues a single account balance at an explicit current rate and records the FX gain/loss
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   reconciliation body dto.ReconcileAccountRequest true "Account snapshot and current rate"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to reconcile account"
// @Router /reconciliation/accounts [post]
func (h *reconciliationHandler) reconcileAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcileAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReconcileAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.reconciliationService.ReconcileAccount(c.Request.Context(), req.Account.ToDomain(), req.CurrentRate)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error reconciling account", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to reconcile account", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile account"})
		}
		return
	}

	logger.Info("Account reconciled", slog.String("account_id", result.AccountID))
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}

// reconcileAllAccounts godoc
// @Summary Reconcile a batch of accounts
// @Description Fetches a fresh rate per account currency and reconciles each account; failed accounts are skipped
// @Tags reconciliation
// @Accept  json
// @Produce  json
// @Param   reconciliation body dto.ReconcileBatchRequest true "Account snapshots and primary currency"
// @Success 200 {array} dto.ReconciliationResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to reconcile accounts"
// @Router /reconciliation/run [post]
func (h *reconciliationHandler) reconcileAllAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ReconcileBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReconcileAllAccounts", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	accounts := make([]domain.AccountBalance, 0, len(req.Accounts))
	for _, account := range req.Accounts {
		accounts = append(accounts, account.ToDomain())
	}

	results, err := h.reconciliationService.ReconcileAllAccounts(c.Request.Context(), accounts, req.PrimaryCurrency)
	if err != nil {
		logger.Error("Failed to reconcile accounts", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile accounts"})
		return
	}

	logger.Info("Batch reconciliation completed",
		slog.Int("requested", len(req.Accounts)),
		slog.Int("reconciled", len(results)),
	)
	c.JSON(http.StatusOK, dto.ToListReconciliationResponse(results))
}

// isReconciliationNeeded godoc
// @Summary Check whether reconciliation is due
// @Description Reports whether the account is due for reconciliation given the elapsed interval and rate movement
// @Tags reconciliation
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Param   currentRate query string true "Current exchange rate"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string "Missing or invalid current rate"
// @Failure 500 {object} map[string]string "Failed to check reconciliation status"
// @Router /reconciliation/needed/{accountID} [get]
func (h *reconciliationHandler) isReconciliationNeeded(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	currentRate, err := decimal.NewFromString(c.Query("currentRate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "currentRate query parameter must be a decimal number"})
		return
	}

	needed, err := h.reconciliationService.IsReconciliationNeeded(c.Request.Context(), accountID, currentRate)
	if err != nil {
		logger.Error("Failed to check reconciliation status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check reconciliation status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"isNeeded": needed})
}

// totalFXGainLoss godoc
// @Summary Total FX gain/loss for a period
// @Description Sums the latest recorded gain/loss per account for the given period
// @Tags reconciliation
// @Produce  json
// @Param   period path string true "Reconciliation period"
// @Success 200 {object} dto.FXGainLossSummaryResponse
// @Failure 500 {object} map[string]string "Failed to calculate FX gain/loss"
// @Router /reconciliation/gain-loss/{period} [get]
func (h *reconciliationHandler) totalFXGainLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	period := c.Param("period")

	summary, err := h.reconciliationService.CalculateTotalFXGainLoss(c.Request.Context(), period)
	if err != nil {
		logger.Error("Failed to calculate FX gain/loss", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate FX gain/loss"})
		return
	}

	c.JSON(http.StatusOK, dto.ToFXGainLossSummaryResponse(summary))
}

// checkSignificantChanges godoc
// @Summary Check for significant FX changes
// @Description Reports whether the account's latest gain/loss percentage exceeds the configured threshold
// @Tags reconciliation
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.SignificantChangeResponse
// @Failure 500 {object} map[string]string "Failed to check for significant changes"
// @Router /reconciliation/significant-changes/{accountID} [get]
func (h *reconciliationHandler) checkSignificantChanges(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	significant, err := h.reconciliationService.CheckForSignificantChanges(c.Request.Context(), accountID)
	if err != nil {
		logger.Error("Failed to check for significant changes", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check for significant changes"})
		return
	}

	c.JSON(http.StatusOK, dto.SignificantChangeResponse{AccountID: accountID, IsSignificant: significant})
}
