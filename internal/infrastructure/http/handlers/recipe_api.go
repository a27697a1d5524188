// Package handlers provides HTTP handlers for recipe API endpoints
package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/infrastructure/http/middleware"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
)

const maxUploadBytes = 16 << 20

// RecipeAPIHandlers handles recipe API requests
type RecipeAPIHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeAPIHandlers creates a new recipe API handlers instance
func NewRecipeAPIHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeAPIHandlers {
	return &RecipeAPIHandlers{
		recipeService: recipeService,
		logger:        logger,
	}
}

// createRecipeRequest is the JSON body for recipe creation without upload
type createRecipeRequest struct {
	Title           string   `json:"title"`
	URL             string   `json:"url"`
	Description     string   `json:"description"`
	Categories      []string `json:"categories"`
	StoreInVectorDB bool     `json:"store_in_vector_db"`
	Comment         string   `json:"comment"`
}

// CreateRecipe handles POST /api/v1/recipes.
// Accepts either a JSON body or multipart/form-data with an uploaded file.
func (h *RecipeAPIHandlers) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	cmd, err := h.decodeCreateCommand(r)
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}
	cmd.OwnerID = userID

	recipeDTO, err := h.recipeService.CreateRecipe(r.Context(), *cmd)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    recipeDTO,
	})
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeAPIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	params := paginationFromQuery(r)
	list, err := h.recipeService.GetRecipesByOwner(r.Context(), userID, params)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    list,
	})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	recipeDTO, err := h.recipeService.GetRecipeByID(r.Context(), recipeID, userID)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipeDTO,
	})
}

// updateRecipeRequest is the JSON body for partial recipe updates
type updateRecipeRequest struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Categories      *[]string `json:"categories"`
	StoreInVectorDB *bool     `json:"store_in_vector_db"`
}

// UpdateRecipe handles PUT /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	var req updateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	recipeDTO, err := h.recipeService.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:        recipeID,
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		Categories:      req.Categories,
		StoreInVectorDB: req.StoreInVectorDB,
	})
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    recipeDTO,
	})
}

// DeleteRecipe handles DELETE /api/v1/recipes/{id}
func (h *RecipeAPIHandlers) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	if err := h.recipeService.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Message: "Recipe deleted successfully",
	})
}

// AddComment handles POST /api/v1/recipes/{id}/comments
func (h *RecipeAPIHandlers) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeErrorJSON(w, h.logger, http.StatusUnauthorized, "User not authenticated")
		return
	}

	recipeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid recipe id")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	comment, err := h.recipeService.AddComment(r.Context(), inbound.AddCommentCommand{
		RecipeID: recipeID,
		UserID:   userID,
		Content:  req.Content,
	})
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, APIResponse{
		Success: true,
		Data:    comment,
	})
}

// GenerateSignedURL handles POST /api/v1/recipes/generate-signed-url
func (h *RecipeAPIHandlers) GenerateSignedURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FileName string `json:"file_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	url, err := h.recipeService.GenerateSignedURL(r.Context(), req.FileName)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]string{"signed_url": url},
	})
}

// FetchOpenGraph handles POST /api/v1/recipes/fetch-opengraph
func (h *RecipeAPIHandlers) FetchOpenGraph(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorJSON(w, h.logger, http.StatusBadRequest, "Invalid JSON payload")
		return
	}

	metadata, err := h.recipeService.FetchOpenGraph(r.Context(), req.URL)
	if err != nil {
		writeAppError(w, r, h.logger, err)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, APIResponse{
		Success: true,
		Data:    metadata,
	})
}

// decodeCreateCommand builds the create command from either a multipart
// upload or a JSON body
func (h *RecipeAPIHandlers) decodeCreateCommand(r *http.Request) (*inbound.CreateRecipeCommand, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "multipart/form-data") {
		var req createRecipeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &inbound.CreateRecipeCommand{
			Title:           req.Title,
			URL:             req.URL,
			Description:     req.Description,
			Categories:      req.Categories,
			StoreInVectorDB: req.StoreInVectorDB,
			Comment:         req.Comment,
		}, nil
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return nil, err
	}

	cmd := &inbound.CreateRecipeCommand{
		Title:       r.FormValue("title"),
		URL:         r.FormValue("url"),
		Description: r.FormValue("description"),
		Comment:     r.FormValue("comment"),
	}
	if categories := r.FormValue("categories"); categories != "" {
		for _, c := range strings.Split(categories, ",") {
			if c = strings.TrimSpace(c); c != "" {
				cmd.Categories = append(cmd.Categories, c)
			}
		}
	}
	if flag := r.FormValue("store_in_vector_db"); flag != "" {
		cmd.StoreInVectorDB, _ = strconv.ParseBool(flag)
	}

	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if readErr != nil {
			return nil, readErr
		}
		cmd.FileName = header.Filename
		cmd.FileData = data
		cmd.FileContentType = header.Header.Get("Content-Type")
	}

	return cmd, nil
}

// paginationFromQuery reads skip/limit query parameters
func paginationFromQuery(r *http.Request) inbound.PaginationParams {
	params := inbound.PaginationParams{}
	if skip, err := strconv.Atoi(r.URL.Query().Get("skip")); err == nil && skip > 0 {
		params.Skip = skip
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 {
		params.Limit = limit
	}
	return params
}
