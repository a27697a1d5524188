// Package handlers provides HTTP handlers for authentication API endpoints
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appuser "github.com/saskialein/plan-to-plate/internal/application/user"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/middleware"
)

// AuthAPIHandlers handles authentication API requests
type AuthAPIHandlers struct {
	userService *appuser.UserService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewAuthAPIHandlers creates a new authentication API handlers instance
func NewAuthAPIHandlers(userService *appuser.UserService, logger *zap.Logger) *AuthAPIHandlers {
	return &AuthAPIHandlers{
		userService: userService,
		validate:    validator.New(),
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthAPIHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var cmd appuser.RegisterCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	auth, err := h.userService.Register(r.Context(), cmd)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	h.logger.Info("user registered", zap.String("email", cmd.Email))

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    auth,
	})
}

// Login handles POST /api/v1/auth/login
func (h *AuthAPIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var cmd appuser.LoginCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	auth, err := h.userService.Login(r.Context(), cmd)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    auth,
	})
}

// Profile handles GET /api/v1/auth/profile
func (h *AuthAPIHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	userDTO, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    userDTO,
	})
}
