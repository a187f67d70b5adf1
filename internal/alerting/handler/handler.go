package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/clinicstock/alert-engine/internal/alerting"
	"github.com/clinicstock/alert-engine/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AlertRunHandler exposes the run trigger. The schedule itself lives outside
// this service (cron hitting this endpoint, default every 6 hours).
type AlertRunHandler struct {
	uc     alerting.UseCase
	logger logger.ZapLogger
}

func NewAlertRunHandler(uc alerting.UseCase, log logger.ZapLogger) *AlertRunHandler {
	return &AlertRunHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *AlertRunHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", h.Health)

	v1 := r.Group("/api/v1")
	v1.POST("/alert-runs", h.TriggerRun)
}

func (h *AlertRunHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *AlertRunHandler) TriggerRun(c *gin.Context) {
	summary, err := h.uc.Run(c.Request.Context())
	if err != nil {
		if errors.Is(err, alerting.ErrRunInProgress) {
			c.JSON(http.StatusConflict, errorPayload(err))
			return
		}
		h.logger.Error("alert run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorPayload(err))
		return
	}

	// Write-level failures are reported inside the summary with success=false;
	// the response shape stays the same either way.
	c.JSON(http.StatusOK, summary)
}

func errorPayload(err error) gin.H {
	return gin.H{
		"success":   false,
		"message":   err.Error(),
		"timestamp": time.Now().UTC(),
	}
}
