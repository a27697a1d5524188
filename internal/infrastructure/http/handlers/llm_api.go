// Package handlers provides HTTP handlers for LLM-backed API endpoints
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/middleware"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
)

// LLMAPIHandlers handles meal-plan generation and chat requests
type LLMAPIHandlers struct {
	mealPlanService inbound.MealPlanService
	chatService     inbound.ChatService
	validate        *validator.Validate
	logger          *zap.Logger
}

// NewLLMAPIHandlers creates a new LLM API handlers instance
func NewLLMAPIHandlers(
	mealPlanService inbound.MealPlanService,
	chatService inbound.ChatService,
	logger *zap.Logger,
) *LLMAPIHandlers {
	return &LLMAPIHandlers{
		mealPlanService: mealPlanService,
		chatService:     chatService,
		validate:        validator.New(),
		logger:          logger,
	}
}

// mealPlanRequest is the JSON body for meal plan generation
type mealPlanRequest struct {
	Diets          []string `json:"diets"`
	Vegetables     []string `json:"vegetables" validate:"required,min=1"`
	NumberOfPeople int      `json:"number_of_people" validate:"required,min=1"`
	StartDay       string   `json:"start_day" validate:"required"`
}

// GenerateMealPlan handles POST /api/v1/llm/meal-plan
func (h *LLMAPIHandlers) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req mealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.mealPlanService.GenerateMealPlan(r.Context(), inbound.GenerateMealPlanCommand{
		Diets:          req.Diets,
		Vegetables:     req.Vegetables,
		NumberOfPeople: req.NumberOfPeople,
		StartDay:       req.StartDay,
		OwnerID:        userID,
	})
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    plan,
	})
}

// chatRequest is the JSON body for the chat assistant
type chatRequest struct {
	SessionID string `json:"session_id"`
	Query     string `json:"query" validate:"required"`
}

// Chat handles POST /api/v1/llm/chat
func (h *LLMAPIHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	answer, err := h.chatService.Query(r.Context(), inbound.ChatQueryCommand{
		SessionID: req.SessionID,
		Query:     req.Query,
	})
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"response": answer},
	})
}

// ChatHistory handles GET /api/v1/llm/chat/{sessionID}/history
func (h *LLMAPIHandlers) ChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "session id is required")
		return
	}

	history, err := h.chatService.History(r.Context(), sessionID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    history,
	})
}

// ClearChatHistory handles DELETE /api/v1/llm/chat/{sessionID}/history
func (h *LLMAPIHandlers) ClearChatHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "session id is required")
		return
	}

	if err := h.chatService.ClearHistory(r.Context(), sessionID); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Chat history cleared",
	})
}
