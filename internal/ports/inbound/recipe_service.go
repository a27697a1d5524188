// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"

	"github.com/google/uuid"
)

// RecipeService defines the use cases for recipe management
// This is the primary port that HTTP handlers and other driving adapters will use
type RecipeService interface {
	// Commands - operations that modify state
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	AddComment(ctx context.Context, cmd AddCommentCommand) (*CommentDTO, error)

	// Queries - operations that read state
	GetRecipeByID(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeDTO, error)
	GetRecipesByOwner(ctx context.Context, ownerID uuid.UUID, params PaginationParams) (*RecipeList, error)

	// Source helpers
	GenerateSignedURL(ctx context.Context, fileName string) (string, error)
	FetchOpenGraph(ctx context.Context, url string) (map[string]string, error)
}

// Command objects for operations

// CreateRecipeCommand contains data for creating a new recipe.
// Either URL or the uploaded file must be provided.
type CreateRecipeCommand struct {
	Title           string
	URL             string
	FileName        string
	FileData        []byte
	FileContentType string
	Description     string
	Categories      []string
	StoreInVectorDB bool
	Comment         string
	OwnerID         uuid.UUID
}

// UpdateRecipeCommand contains data for updating a recipe
type UpdateRecipeCommand struct {
	RecipeID        uuid.UUID
	UserID          uuid.UUID
	Title           *string
	Description     *string
	Categories      *[]string
	StoreInVectorDB *bool
}

// AddCommentCommand contains data for commenting on a recipe
type AddCommentCommand struct {
	RecipeID uuid.UUID
	UserID   uuid.UUID
	Content  string
}

// PaginationParams for paginated queries
type PaginationParams struct {
	Skip  int
	Limit int
}

// Response DTOs

// RecipeDTO is the data transfer object for recipes
type RecipeDTO struct {
	ID              uuid.UUID    `json:"id"`
	Title           string       `json:"title"`
	URL             string       `json:"url,omitempty"`
	FilePath        string       `json:"file_path,omitempty"`
	Description     string       `json:"description,omitempty"`
	Categories      []string     `json:"categories,omitempty"`
	StoreInVectorDB bool         `json:"store_in_vector_db"`
	OwnerID         uuid.UUID    `json:"owner_id"`
	Comments        []CommentDTO `json:"comments"`
	CreatedAt       string       `json:"created_at"`
	UpdatedAt       string       `json:"updated_at"`
}

// CommentDTO is the data transfer object for recipe comments
type CommentDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

// RecipeList for paginated results
type RecipeList struct {
	Data  []RecipeDTO `json:"data"`
	Count int         `json:"count"`
}
