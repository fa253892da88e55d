package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/voyago/voyago/internal/domain"
	"github.com/voyago/voyago/internal/ports"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details.
type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// supportedDestinations is the static catalogue exposed by the API.
var supportedDestinations = []gin.H{
	{"name": "Paris", "country": "France", "price_level": "high"},
	{"name": "London", "country": "United Kingdom", "price_level": "high"},
	{"name": "Tokyo", "country": "Japan", "price_level": "high"},
	{"name": "Bangkok", "country": "Thailand", "price_level": "low"},
	{"name": "New York", "country": "United States", "price_level": "very high"},
	{"name": "Berlin", "country": "Germany", "price_level": "medium"},
	{"name": "Rome", "country": "Italy", "price_level": "medium"},
}

// handleHealth reports server and worker health.
func (s *Server) handleHealth(c *gin.Context) {
	workers := make(map[string]gin.H)
	healthy := true
	for _, w := range s.planner.Workers() {
		active := w.Active()
		if !active {
			healthy = false
		}
		workers[w.ID()] = gin.H{
			"active":       active,
			"capabilities": w.Capabilities(),
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"workers":   workers,
	})
}

// handleSubmitTrip runs the planning pipeline for a trip request. The
// pipeline is synchronous; the response carries the full plan result.
func (s *Server) handleSubmitTrip(c *gin.Context) {
	var req domain.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Error("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	result := s.planner.PlanTrip(c.Request.Context(), req)
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// handleGetTrip returns a stored plan result by ID.
func (s *Server) handleGetTrip(c *gin.Context) {
	planID := c.Param("id")

	result, err := s.store.Get(c.Request.Context(), planID)
	if err != nil {
		if errors.Is(err, ports.ErrResultNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{
				Error: ErrorDetail{
					Code:    "NOT_FOUND",
					Message: "Plan not found",
				},
			})
			return
		}
		s.logger.Error("failed to get plan result",
			zap.String("plan_id", planID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "STORAGE_ERROR",
				Message: "Failed to retrieve plan",
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// handleListTrips returns all stored plan IDs.
func (s *Server) handleListTrips(c *gin.Context) {
	planIDs, err := s.store.List(c.Request.Context())
	if err != nil {
		s.logger.Error("failed to list plans", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "STORAGE_ERROR",
				Message: "Failed to list plans",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plans": planIDs,
		"total": len(planIDs),
	})
}

// handleListDestinations returns the destinations with curated data.
func (s *Server) handleListDestinations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"destinations": supportedDestinations,
		"total":        len(supportedDestinations),
	})
}
