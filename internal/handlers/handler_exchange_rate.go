package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/pennywise/fxcore_app/internal/apperrors"
	"github.com/pennywise/fxcore_app/internal/core/domain"
	portssvc "github.com/pennywise/fxcore_app/internal/core/ports/services"
	"github.com/pennywise/fxcore_app/internal/dto"
	"github.com/pennywise/fxcore_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.RateSvcFacade
}

func newExchangeRateHandler(rs portssvc.RateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		rateService: rs,
	}
}

// registerExchangeRateRoutes registers routes related to exchange rates.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.listRatesForDate)
		rates.POST("/refresh", h.refreshRates)
		rates.GET("/stale", h.checkStaleRates)
		rates.GET("/:from/:to", h.getExchangeRate)
	}
}

// listRatesForDate godoc
// @Summary List exchange rates for a date
// @Description Retrieves all stored exchange rates effective on the given date (defaults to today)
// @Tags exchange rates
// @Produce  json
// @Param   date query string false "FX date (YYYY-MM-DD)"
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid date format"
// @Failure 500 {object} map[string]string "Failed to list exchange rates"
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listRatesForDate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	fxDate := domain.TruncateToDate(time.Now().UTC())
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		fxDate = domain.TruncateToDate(parsed)
	}

	rates, err := h.rateService.GetRatesForDate(c.Request.Context(), fxDate)
	if err != nil {
		logger.Error("Failed to list exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exchange rates"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// refreshRates godoc
// @Summary Refresh today's exchange rates
// @Description Fetches today's rates from the configured providers, falling back to carrying yesterday's rates forward
// @Tags exchange rates
// @Produce  json
// @Success 200 {array} dto.ExchangeRateResponse
// @Failure 500 {object} map[string]string "Failed to refresh exchange rates"
// @Router /exchange-rates/refresh [post]
func (h *exchangeRateHandler) refreshRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to refresh exchange rates")

	rates, err := h.rateService.FetchTodaysRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to refresh exchange rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh exchange rates"})
		return
	}

	logger.Info("Exchange rates refreshed", slog.Int("count", len(rates)))
	c.JSON(http.StatusOK, dto.ToListExchangeRateResponse(rates))
}

// checkStaleRates godoc
// @Summary Check for stale rates
// @Description Reports whether today's rate set contains entries carried forward from a previous day
// @Tags exchange rates
// @Produce  json
// @Success 200 {object} dto.StaleRatesResponse
// @Failure 500 {object} map[string]string "Failed to check stale rates"
// @Router /exchange-rates/stale [get]
func (h *exchangeRateHandler) checkStaleRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	hasStale, err := h.rateService.CheckStaleRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to check stale rates", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check stale rates"})
		return
	}

	c.JSON(http.StatusOK, dto.StaleRatesResponse{HasStaleRates: hasStale})
}

// getExchangeRate godoc
// @Summary Get an exchange rate
// @Description Retrieves the exchange rate for a currency pair on a date (defaults to today), resolving inverse and cross rates when no direct rate is stored
// @Tags exchange rates
// @Produce  json
// @Param   from path string true "Base Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path string true "Target Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   date query string false "FX date (YYYY-MM-DD)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date format"
// @Failure 404 {object} map[string]string "No rate available for the pair"
// @Failure 500 {object} map[string]string "Failed to retrieve exchange rate"
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) getExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fromCode := strings.ToUpper(c.Param("from"))
	toCode := strings.ToUpper(c.Param("to"))

	if len(fromCode) != 3 || len(toCode) != 3 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Currency codes must be 3 letters"})
		return
	}

	var fxDate time.Time
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		fxDate = parsed
	}

	logger = logger.With(slog.String("from_code", fromCode), slog.String("to_code", toCode))

	rate, err := h.rateService.GetRate(c.Request.Context(), fromCode, toCode, fxDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Validation error getting exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("Exchange rate unavailable")
			c.JSON(http.StatusNotFound, gin.H{"error": "No exchange rate available for this pair"})
		default:
			logger.Error("Failed to get exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve exchange rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}
