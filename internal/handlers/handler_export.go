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

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeZip  = "application/zip"
)

// exportHandler handles HTTP requests for report exports.
type exportHandler struct {
	exportService portssvc.ExportSvcFacade
}

// newExportHandler creates a new exportHandler.
func newExportHandler(es portssvc.ExportSvcFacade) *exportHandler {
	return &exportHandler{exportService: es}
}

// registerExportRoutes registers routes related to report exports.
func registerExportRoutes(rg *gin.RouterGroup, exportService portssvc.ExportSvcFacade) {
	h := newExportHandler(exportService)

	exports := rg.Group("/exports")
	{
		exports.POST("/spreadsheet", h.exportSpreadsheet)
		exports.POST("/archive", h.exportArchive)
	}
}

// exportSpreadsheet streams the xlsx export of the requested reports.
func (h *exportHandler) exportSpreadsheet(c *gin.Context) {
	req, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportSpreadsheet(c.Request.Context(), req.ReportIDs, req.TargetCurrency)
	if err != nil {
		h.respondExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentTypeXLSX, data)
}

// exportArchive streams the zip export (spreadsheet plus receipts) of the
// requested reports.
func (h *exportHandler) exportArchive(c *gin.Context) {
	req, ok := h.bindExportRequest(c)
	if !ok {
		return
	}

	data, filename, err := h.exportService.ExportArchive(c.Request.Context(), req.ReportIDs, req.TargetCurrency)
	if err != nil {
		h.respondExportError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentTypeZip, data)
}

func (h *exportHandler) bindExportRequest(c *gin.Context) (dto.ExportRequest, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for export", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return dto.ExportRequest{}, false
	}
	return req, true
}

func (h *exportHandler) respondExportError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Error("Export failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
	}
}
