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

// userIDHeader carries the caller identity resolved by the identity
// provider fronting this service.
const userIDHeader = "X-User-ID"

// reportHandler handles HTTP requests related to expense reports.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// newReportHandler creates a new reportHandler.
func newReportHandler(rs portssvc.ReportSvcFacade) *reportHandler {
	return &reportHandler{reportService: rs}
}

// registerReportRoutes registers routes related to expense reports.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := newReportHandler(reportService)

	reports := rg.Group("/reports")
	{
		reports.POST("", h.createReport)
		reports.GET("", h.listReports)
		reports.GET("/:reportID", h.getReport)
		reports.POST("/:reportID/expenses", h.addExpenseLine)
		reports.DELETE("/:reportID/expenses/:expenseID", h.deleteExpenseLine)
	}
}

func callerUserID(c *gin.Context) (string, bool) {
	userID := c.GetHeader(userIDHeader)
	return userID, userID != ""
}

// createReport creates a new expense report for the calling user.
func (h *reportHandler) createReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateReport", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + userIDHeader + " header"})
		return
	}

	report, err := h.reportService.CreateReport(c.Request.Context(), req, userID)
	if err != nil {
		logger.Error("Failed to create report in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	logger.Info("Report created successfully", slog.String("report_id", report.ReportID))
	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// listReports lists the reports of the calling user.
func (h *reportHandler) listReports(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := callerUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + userIDHeader + " header"})
		return
	}

	reports, err := h.reportService.ListReports(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to list reports", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}
	c.JSON(http.StatusOK, dto.ToReportResponses(reports))
}

// getReport retrieves a report with its expense lines.
func (h *reportHandler) getReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")

	report, lines, err := h.reportService.GetReport(c.Request.Context(), reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		} else {
			logger.Error("Failed to get report", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve report"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":   dto.ToReportResponse(report),
		"expenses": dto.ToExpenseLineResponses(lines),
	})
}

// addExpenseLine appends a typed expense line to a report.
func (h *reportHandler) addExpenseLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")

	var req dto.CreateExpenseLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddExpenseLine", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := callerUserID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing " + userIDHeader + " header"})
		return
	}

	line, err := h.reportService.AddExpenseLine(c.Request.Context(), reportID, req, userID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		default:
			logger.Error("Failed to add expense line", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add expense line"})
		}
		return
	}

	logger.Info("Expense line added successfully",
		slog.String("report_id", reportID),
		slog.String("expense_id", line.ExpenseID))
	c.JSON(http.StatusCreated, dto.ToExpenseLineResponse(line))
}

// deleteExpenseLine removes one expense line from a report.
func (h *reportHandler) deleteExpenseLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	reportID := c.Param("reportID")
	expenseID := c.Param("expenseID")

	if err := h.reportService.DeleteExpenseLine(c.Request.Context(), reportID, expenseID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Expense line not found"})
		} else {
			logger.Error("Failed to delete expense line", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense line"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}
