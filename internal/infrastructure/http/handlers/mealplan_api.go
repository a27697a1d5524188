// Package handlers provides HTTP handlers for saved meal plan endpoints
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/middleware"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
)

// MealPlanAPIHandlers handles saved meal plan API requests
type MealPlanAPIHandlers struct {
	mealPlanService inbound.MealPlanService
	logger          *zap.Logger
}

// NewMealPlanAPIHandlers creates a new meal plan API handlers instance
func NewMealPlanAPIHandlers(mealPlanService inbound.MealPlanService, logger *zap.Logger) *MealPlanAPIHandlers {
	return &MealPlanAPIHandlers{
		mealPlanService: mealPlanService,
		logger:          logger,
	}
}

// saveMealPlanRequest is the JSON body for saving a generated plan
type saveMealPlanRequest struct {
	Name string          `json:"name"`
	Plan json.RawMessage `json:"plan"`
}

// SaveMealPlan handles POST /api/v1/meal-plans
func (h *MealPlanAPIHandlers) SaveMealPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req saveMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	plan, err := mealplan.ParseWeekPlan(req.Plan)
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	planDTO, err := h.mealPlanService.SaveMealPlan(r.Context(), inbound.SaveMealPlanCommand{
		Name:    req.Name,
		Plan:    plan,
		OwnerID: userID,
	})
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    planDTO,
	})
}

// ListMealPlans handles GET /api/v1/meal-plans
func (h *MealPlanAPIHandlers) ListMealPlans(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	params := paginationFromQuery(r)
	list, err := h.mealPlanService.ListMealPlans(r.Context(), userID, params)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
	})
}

// DeleteMealPlan handles DELETE /api/v1/meal-plans/{id}
func (h *MealPlanAPIHandlers) DeleteMealPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	planID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid meal plan id")
		return
	}

	if err := h.mealPlanService.DeleteMealPlan(r.Context(), planID, userID); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Meal plan deleted successfully",
	})
}
