package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/dto"
	"github.com/pennywise/fxcore_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests for the conversion engine.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to conversions.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)

	rg.POST("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount across the three currency roles
// @Description Converts an entered amount into account and primary currency amounts in one operation
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion details"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "No rate available for a required pair"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Router /convert [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.Convert(c.Request.Context(), req.ToDomain())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error converting amount", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("Rate unavailable for conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to convert amount", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert"})
		}
		return
	}

	logger.Info("Conversion completed",
		slog.String("audit_id", result.AuditID),
		slog.String("conversion_case", string(result.ConversionCase)),
	)
	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}
