package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/campushub/internal/app/models/dto"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// Gauge reads one in-process counter
type Gauge func() int

// HealthController reports liveness, the state of each store and a few
// in-process gauges
type HealthController struct {
	checks  map[string]HealthCheck
	gauges  map[string]Gauge
	timeout time.Duration
}

// NewHealthController creates a new HealthController
func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{checks: checks, gauges: make(map[string]Gauge), timeout: 2 * time.Second}
}

// WithGauge adds a named gauge to the health report. Gauges never affect the status.
func (c *HealthController) WithGauge(name string, gauge Gauge) *HealthController {
	c.gauges[name] = gauge
	return c
}

// HealthResponse is the body of the health endpoint
type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Gauges       map[string]int    `json:"gauges,omitempty"`
}

// Health answers 200 while every dependency responds and 503 otherwise
func (c *HealthController) Health(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), c.timeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Dependencies: make(map[string]string, len(c.checks))}
	status := http.StatusOK
	for name, check := range c.checks {
		if err := check(checkCtx); err != nil {
			resp.Dependencies[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[name] = "up"
	}

	if len(c.gauges) > 0 {
		resp.Gauges = make(map[string]int, len(c.gauges))
		for name, gauge := range c.gauges {
			resp.Gauges[name] = gauge()
		}
	}

	body := dto.NewSuccessResponse(resp)
	body.Success = status == http.StatusOK
	ctx.JSON(status, body)
}
