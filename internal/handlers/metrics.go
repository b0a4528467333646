package handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/memohai/ssmcontacts/internal/metrics"
)

// MetricsHandler exposes the request metrics on GET /metrics.
type MetricsHandler struct {
	recorder *metrics.Recorder
}

// NewMetricsHandler creates a handler serving recorder.
func NewMetricsHandler(recorder *metrics.Recorder) *MetricsHandler {
	return &MetricsHandler{recorder: recorder}
}

// Register mounts GET /metrics on the Echo instance.
func (h *MetricsHandler) Register(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(h.recorder.Handler()))
}
