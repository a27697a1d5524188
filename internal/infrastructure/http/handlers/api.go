// Package handlers provides HTTP handlers for the REST API
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/pkg/errors"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// HealthHandlers serves liveness endpoints
type HealthHandlers struct {
	version string
	logger  *zap.Logger
}

// NewHealthHandlers creates health check handlers
func NewHealthHandlers(version string, logger *zap.Logger) *HealthHandlers {
	return &HealthHandlers{version: version, logger: logger}
}

// HealthCheck handles GET /api/v1/health
func (h *HealthHandlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   h.version,
		},
	}

	writeJSON(w, h.logger, http.StatusOK, response)
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("Failed to encode JSON response", zap.Error(err))
	}
}

// writeErrorJSON writes an error response with a plain message
func writeErrorJSON(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, APIResponse{
		Success: false,
		Error:   message,
	})
}

// writeAppError maps an error to its HTTP status and structured body.
// AppErrors carry their own status code; anything else is a 500.
func writeAppError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		logger.Error("unhandled error", zap.Error(err))
		writeErrorJSON(w, logger, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	requestID := chimiddleware.GetReqID(r.Context())
	writeJSON(w, logger, appErr.StatusCode(), APIResponse{
		Success: false,
		Error:   errors.ToErrorResponse(appErr, requestID).Error,
	})
}
