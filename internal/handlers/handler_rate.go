package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/NotaSpese/expense_report_app/internal/apperrors"
	portssvc "github.com/NotaSpese/expense_report_app/internal/core/ports/services"
	"github.com/NotaSpese/expense_report_app/internal/dto"
	"github.com/NotaSpese/expense_report_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade) *rateHandler {
	return &rateHandler{rateService: rs}
}

// registerRateRoutes registers routes related to exchange rates.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade) {
	h := newRateHandler(rateService)

	rates := rg.Group("/rates")
	{
		rates.PUT("/:currencyCode", h.upsertRate)
		rates.GET("", h.getRateTable)
	}
}

// upsertRate stores the value of one EUR in the addressed currency.
func (h *rateHandler) upsertRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyCode := c.Param("currencyCode")

	var req dto.UpsertRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpsertRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + userIDHeader + " header"})
		return
	}

	rate, err := h.rateService.UpsertRate(c.Request.Context(), currencyCode, req.Rate, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to upsert exchange rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store exchange rate"})
		}
		return
	}

	logger.Info("Exchange rate stored", slog.String("currency", rate.CurrencyCode))
	c.JSON(http.StatusOK, dto.ToRateResponse(rate))
}

// getRateTable returns the currently effective rate table.
func (h *rateHandler) getRateTable(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	table, err := h.rateService.CurrentRateTable(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load rate table", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rate table"})
		return
	}
	c.JSON(http.StatusOK, dto.ToRateTableResponse(table))
}
