package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	portssvc "github.com/finovabs/backoffice_app/internal/core/ports/services"
	"github.com/finovabs/backoffice_app/internal/core/services"
	"github.com/finovabs/backoffice_app/internal/dto"
	"github.com/finovabs/backoffice_app/internal/middleware"
)

// monitorHandler exposes the operator-facing "run now" entry point of the
// daily monitor.
type monitorHandler struct {
	monitorService portssvc.MonitorSvcFacade
}

// newMonitorHandler creates a new monitorHandler.
func newMonitorHandler(ms portssvc.MonitorSvcFacade) *monitorHandler {
	return &monitorHandler{monitorService: ms}
}

// registerMonitorRoutes registers the manual scan trigger.
func registerMonitorRoutes(rg *gin.RouterGroup, monitorService portssvc.MonitorSvcFacade, scanLimiter *limiter.Limiter) {
	h := newMonitorHandler(monitorService)

	monitor := rg.Group("/monitor")
	monitor.POST("/run", middleware.RateLimit(scanLimiter), h.runScan)
}

// runScan godoc
// @Summary Run an obligation scan now
// @Description Sweeps all open obligations for due-date alerts and returns the counts
// @Tags monitor
// @Produce  json
// @Success 200 {object} dto.ScanSummaryResponse
// @Failure 409 {object} map[string]string "A scan is already running"
// @Security BearerAuth
// @Router /monitor/run [post]
func (h *monitorHandler) runScan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	summary, err := h.monitorService.RunScan(c.Request.Context())
	if err != nil {
		if errors.Is(err, services.ErrScanAlreadyRunning) {
			logger.Warn("Manual scan rejected, another scan is running")
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Manual scan failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to run scan"})
		return
	}

	c.JSON(http.StatusOK, dto.ToScanSummaryResponse(summary))
}
