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
)

// transferHandler handles HTTP requests related to transfers.
type transferHandler struct {
	transferService portssvc.TransferSvcFacade
}

func newTransferHandler(ts portssvc.TransferSvcFacade) *transferHandler {
	return &transferHandler{
		transferService: ts,
	}
}

// registerTransferRoutes registers routes related to transfers.
func registerTransferRoutes(rg *gin.RouterGroup, transferService portssvc.TransferSvcFacade) {
	h := newTransferHandler(transferService)

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.POST("/validate", h.validateTransfer)
	}
}

// createTransfer godoc
// @Summary Create a transfer
// @Description Moves money between two accounts as a matched pair of conversion legs, taking the same-currency shortcut when every currency role matches
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "No rate available for a required pair"
// @Failure 500 {object} map[string]string "Failed to create transfer"
// @Router /transfers [post]
func (h *transferHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(
		slog.String("from_account_id", req.FromAccountID),
		slog.String("to_account_id", req.ToAccountID),
	)

	var (
		result *domain.TransferResult
		err    error
	)
	if req.FromAccountCurrency == req.ToAccountCurrency && req.EnteredCurrency == req.FromAccountCurrency {
		result, err = h.transferService.CreateSameCurrencyTransfer(c.Request.Context(),
			req.FromAccountID, req.ToAccountID, req.FromAccountCurrency, req.Amount)
	} else {
		result, err = h.transferService.CreateTransfer(c.Request.Context(), req.ToDomain())
	}
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error creating transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("Rate unavailable for transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create transfer", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transfer"})
		}
		return
	}

	logger.Info("Transfer created successfully")
	c.JSON(http.StatusCreated, dto.ToTransferResponse(result))
}

// validateTransfer godoc
// @Summary Validate a transfer
// @Description Runs the pre-flight transfer checks without converting or recording anything
// @Tags transfers
// @Accept  json
// @Produce  json
// @Param   transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferValidationResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 500 {object} map[string]string "Failed to validate transfer"
// @Router /transfers/validate [post]
func (h *transferHandler) validateTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ValidateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	validation, err := h.transferService.ValidateTransfer(c.Request.Context(), req.ToDomain())
	if err != nil {
		logger.Error("Failed to validate transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate transfer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToTransferValidationResponse(validation))
}
