package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"costofliving/models"
	"costofliving/services"
	"costofliving/utils"
)

// CostLookup resolves a city to its cost breakdown.
type CostLookup interface {
	Lookup(ctx context.Context, city string) (*models.CostResult, error)
}

// NotFoundResponse is returned when a city cannot be resolved.
type NotFoundResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
	Tip        string `json:"tip"`
}

// ServerErrorResponse is returned on unexpected failures.
type ServerErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details string `json:"details"`
}

// Handler holds HTTP request handlers
type Handler struct {
	costs   CostLookup
	logger  *utils.Logger
	version string
}

// NewHandler creates a new handler instance
func NewHandler(costs CostLookup, logger *utils.Logger, version string) *Handler {
	return &Handler{costs: costs, logger: logger, version: version}
}

// CostOfLiving handles GET /api/cost-of-living/:city
func (h *Handler) CostOfLiving(c *gin.Context) {
	city := strings.TrimSpace(c.Param("city"))

	result, err := h.costs.Lookup(c.Request.Context(), city)
	if err != nil {
		var nf *services.CityNotFoundError
		if errors.As(err, &nf) {
			c.JSON(http.StatusNotFound, NotFoundResponse{
				Error:      "City not found",
				Message:    fmt.Sprintf("Could not find cost of living data for %q", city),
				Suggestion: nf.Suggestion,
				Tip:        nf.Tip,
			})
			return
		}

		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ServerErrorResponse{
			Error:   "Internal server error",
			Message: "Failed to fetch cost of living data",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck handles liveness probes.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Capabilities lists the API surface.
func (h *Handler) Capabilities(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "costofliving",
		"version": h.version,
		"endpoints": []gin.H{
			{"method": http.MethodGet, "path": "/api/cost-of-living/:city", "description": "Monthly cost of living estimate for a city"},
			{"method": http.MethodGet, "path": "/api/health", "description": "Liveness probe"},
			{"method": http.MethodGet, "path": "/api", "description": "This listing"},
		},
		"categories":    []string{"housing", "groceries", "transportation", "utilities", "entertainment"},
		"currency":      "USD",
		"dataSources":   []string{"Numbeo", "Reddit"},
		"exampleCities": services.ExampleCities,
	})
}
