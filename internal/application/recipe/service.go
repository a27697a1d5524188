// Package recipe provides the application layer for recipe management
package recipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/recipe"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// signedURLExpiry is how long generated download links stay valid
const signedURLExpiry = 15 * time.Minute

// Service implements the recipe use cases
type Service struct {
	recipeRepo outbound.RecipeRepository
	storage    outbound.StorageService
	opengraph  outbound.OpenGraphFetcher
	indexer    inbound.IndexService
	logger     *zap.Logger
}

// NewService creates the recipe service
func NewService(
	recipeRepo outbound.RecipeRepository,
	storage outbound.StorageService,
	opengraph outbound.OpenGraphFetcher,
	indexer inbound.IndexService,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipeRepo: recipeRepo,
		storage:    storage,
		opengraph:  opengraph,
		indexer:    indexer,
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe stores a new recipe, uploading its file when one was sent,
// and indexes its content when the recipe opts in
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	if cmd.URL == "" && len(cmd.FileData) == 0 {
		return nil, apperrors.NewBadRequestError("Either 'url' or 'file' must be provided")
	}

	filePath := ""
	if len(cmd.FileData) > 0 {
		key := fmt.Sprintf("recipes/%s", cmd.FileName)
		uploaded, err := s.storage.Upload(ctx, key, cmd.FileData, cmd.FileContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload recipe file: %w", err)
		}
		filePath = uploaded
	}

	entity, err := recipe.NewRecipe(cmd.Title, cmd.URL, filePath, cmd.OwnerID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if cmd.Description != "" {
		if err := entity.UpdateDescription(cmd.Description); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if len(cmd.Categories) > 0 {
		entity.SetCategories(cmd.Categories)
	}
	if cmd.StoreInVectorDB {
		entity.EnableIndexing()
	}
	if cmd.Comment != "" {
		comment, err := recipe.NewComment(cmd.OwnerID, cmd.Comment)
		if err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
		if err := entity.AddComment(comment); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}

	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to save recipe: %w", err)
	}

	if entity.StoreInVectorDB() {
		if err := s.ingest(ctx, entity, cmd.FileData); err != nil {
			s.logger.Error("failed to index new recipe",
				zap.String("recipe_id", entity.ID().String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("recipe created",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("owner_id", cmd.OwnerID.String()),
	)

	dto := s.entityToDTO(entity)
	return &dto, nil
}

// GetRecipeByID returns one recipe owned by the caller
func (s *Service) GetRecipeByID(ctx context.Context, recipeID, userID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, apperrors.NewRecipeNotFoundError(recipeID.String())
	}
	if !entity.IsOwnedBy(userID) {
		return nil, apperrors.NewForbiddenError("Not enough permissions")
	}

	dto := s.entityToDTO(entity)
	return &dto, nil
}

// GetRecipesByOwner returns the caller's recipes
func (s *Service) GetRecipesByOwner(ctx context.Context, ownerID uuid.UUID, params inbound.PaginationParams) (*inbound.RecipeList, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}

	recipes, count, err := s.recipeRepo.FindByOwner(ctx, ownerID, params.Skip, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	list := &inbound.RecipeList{
		Data:  make([]inbound.RecipeDTO, 0, len(recipes)),
		Count: count,
	}
	for _, entity := range recipes {
		list.Data = append(list.Data, s.entityToDTO(entity))
	}
	return list, nil
}

// UpdateRecipe applies partial updates to a recipe owned by the caller.
// Toggling indexing on ingests the recipe's source; toggling it off removes
// its chunks from the index.
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}
	if !entity.IsOwnedBy(cmd.UserID) {
		return nil, apperrors.NewForbiddenError("Not enough permissions")
	}

	if cmd.Title != nil {
		if err := entity.UpdateTitle(*cmd.Title); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Description != nil {
		if err := entity.UpdateDescription(*cmd.Description); err != nil {
			return nil, apperrors.NewValidationError(err.Error())
		}
	}
	if cmd.Categories != nil {
		entity.SetCategories(*cmd.Categories)
	}

	indexingToggledOn := false
	indexingToggledOff := false
	if cmd.StoreInVectorDB != nil && *cmd.StoreInVectorDB != entity.StoreInVectorDB() {
		if *cmd.StoreInVectorDB {
			entity.EnableIndexing()
			indexingToggledOn = true
		} else {
			entity.DisableIndexing()
			indexingToggledOff = true
		}
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if indexingToggledOn {
		if err := s.ingest(ctx, entity, nil); err != nil {
			s.logger.Error("failed to index updated recipe",
				zap.String("recipe_id", entity.ID().String()),
				zap.Error(err),
			)
		}
	}
	if indexingToggledOff {
		if err := s.indexer.DeleteIngestedDocument(ctx, entity.ID().String()); err != nil {
			s.logger.Error("failed to deindex recipe",
				zap.String("recipe_id", entity.ID().String()),
				zap.Error(err),
			)
		}
	}

	dto := s.entityToDTO(entity)
	return &dto, nil
}

// DeleteRecipe removes a recipe owned by the caller together with its
// indexed chunks
func (s *Service) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return apperrors.NewRecipeNotFoundError(recipeID.String())
	}
	if !entity.IsOwnedBy(userID) {
		return apperrors.NewForbiddenError("Not enough permissions")
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	if entity.FilePath() != "" {
		if err := s.storage.Delete(ctx, entity.FilePath()); err != nil {
			s.logger.Error("failed to delete stored recipe file",
				zap.String("recipe_id", recipeID.String()),
				zap.String("file_path", entity.FilePath()),
				zap.Error(err),
			)
		}
	}

	if err := s.indexer.DeleteIngestedDocument(ctx, recipeID.String()); err != nil {
		s.logger.Error("failed to deindex deleted recipe",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("recipe deleted", zap.String("recipe_id", recipeID.String()))
	return nil
}

// AddComment adds a comment to a recipe
func (s *Service) AddComment(ctx context.Context, cmd inbound.AddCommentCommand) (*inbound.CommentDTO, error) {
	if _, err := s.recipeRepo.FindByID(ctx, cmd.RecipeID); err != nil {
		return nil, apperrors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}

	comment, err := recipe.NewComment(cmd.UserID, cmd.Content)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.recipeRepo.AddComment(ctx, cmd.RecipeID, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	return &inbound.CommentDTO{
		ID:        comment.ID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}, nil
}

// GenerateSignedURL returns a time-limited download link for an uploaded
// recipe file
func (s *Service) GenerateSignedURL(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", apperrors.NewBadRequestError("file_name is required")
	}
	return s.storage.GeneratePresignedURL(ctx, fmt.Sprintf("recipes/%s", fileName), signedURLExpiry)
}

// FetchOpenGraph fetches a page's Open Graph metadata
func (s *Service) FetchOpenGraph(ctx context.Context, url string) (map[string]string, error) {
	if url == "" {
		return nil, apperrors.NewBadRequestError("url is required")
	}
	return s.opengraph.Fetch(ctx, url)
}

// ingest sends the recipe's source through the indexing pipeline. For
// file-backed recipes the content bytes come from the create request or,
// when indexing is enabled later, from object storage.
func (s *Service) ingest(ctx context.Context, entity *recipe.Recipe, fileData []byte) error {
	if len(fileData) == 0 && entity.FilePath() != "" {
		data, err := s.storage.Download(ctx, entity.FilePath())
		if err != nil {
			return fmt.Errorf("failed to fetch recipe file for indexing: %w", err)
		}
		fileData = data
	}

	return s.indexer.IngestDocument(ctx, inbound.IngestDocumentCommand{
		RecipeID: entity.ID().String(),
		Title:    entity.Title(),
		Language: "en",
		URL:      entity.URL(),
		FilePath: entity.FilePath(),
		FileData: fileData,
	})
}

// entityToDTO converts a recipe entity to its DTO
func (s *Service) entityToDTO(entity *recipe.Recipe) inbound.RecipeDTO {
	comments := make([]inbound.CommentDTO, 0, len(entity.Comments()))
	for _, comment := range entity.Comments() {
		comments = append(comments, inbound.CommentDTO{
			ID:        comment.ID,
			UserID:    comment.UserID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		})
	}

	return inbound.RecipeDTO{
		ID:              entity.ID(),
		Title:           entity.Title(),
		URL:             entity.URL(),
		FilePath:        entity.FilePath(),
		Description:     entity.Description(),
		Categories:      entity.Categories(),
		StoreInVectorDB: entity.StoreInVectorDB(),
		OwnerID:         entity.OwnerID(),
		Comments:        comments,
		CreatedAt:       entity.CreatedAt().Format(time.RFC3339),
		UpdatedAt:       entity.UpdatedAt().Format(time.RFC3339),
	}
}
