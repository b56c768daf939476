package handlers

import (
	"net/http"
	"time"

	"heat-demand/internal/api/models"
	"heat-demand/internal/config"
	"heat-demand/internal/data"
	"heat-demand/internal/engine"
	"heat-demand/internal/metrics"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// CalculateHandler runs calculation batches.
type CalculateHandler struct {
	engine *engine.Engine
}

func NewCalculateHandler() *CalculateHandler {
	return &CalculateHandler{engine: engine.New()}
}

// Calculate handles POST /api/v1/calculate.
func (h *CalculateHandler) Calculate(c *gin.Context) {
	var req models.CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err)
		return
	}

	// JSON is a YAML subset, so the project payload goes through the same
	// decoder as the on-disk config.
	var cfg config.Config
	if err := yaml.Unmarshal(req.Project, &cfg); err != nil {
		badRequest(c, "INVALID_PROJECT", err)
		return
	}
	project, err := cfg.ToProject()
	if err != nil {
		badRequest(c, "INVALID_PROJECT", err)
		return
	}
	if err := project.Validate(); err != nil {
		badRequest(c, "INVALID_PROJECT", err)
		return
	}

	climate, err := data.ParseClimateJSON(req.Climate)
	if err != nil {
		badRequest(c, "INVALID_CLIMATE", err)
		return
	}

	start := time.Now()
	res, err := h.engine.Run(project, climate)
	if err != nil {
		badRequest(c, "CALCULATION_ERROR", err)
		return
	}
	metrics.BatchesTotal.Inc()
	metrics.BatchDuration.Observe(time.Since(start).Seconds())
	metrics.ZonesExcluded.Add(float64(len(res.Excluded)))
	for i := range res.Zones {
		if res.Zones[i].Failed() {
			metrics.ZonesFailed.Inc()
		} else {
			metrics.ZonesCalculated.Inc()
		}
	}

	c.JSON(http.StatusOK, models.FromResult(res, req.Options.IncludeMonths))
}

func badRequest(c *gin.Context, code string, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
