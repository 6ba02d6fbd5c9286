package handlers

import (
	portssvc "github.com/NotaSpese/expense_report_app/internal/core/ports/services"
	"github.com/NotaSpese/expense_report_app/pkg/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerReportRoutes(v1, services.Report)
	registerRateRoutes(v1, services.Rate)
	registerExportRoutes(v1, services.Export)
}
