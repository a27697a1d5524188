package recipe

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the recipe domain

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	RecipeID  uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	CreatedAt time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeTitleUpdatedEvent is raised when a recipe title is updated
type RecipeTitleUpdatedEvent struct {
	RecipeID  uuid.UUID
	OldTitle  string
	NewTitle  string
	UpdatedAt time.Time
}

func (e RecipeTitleUpdatedEvent) EventName() string {
	return "recipe.title.updated"
}

func (e RecipeTitleUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// RecipeIndexingEnabledEvent is raised when a recipe opts into the
// vector index
type RecipeIndexingEnabledEvent struct {
	RecipeID  uuid.UUID
	Source    string
	EnabledAt time.Time
}

func (e RecipeIndexingEnabledEvent) EventName() string {
	return "recipe.indexing.enabled"
}

func (e RecipeIndexingEnabledEvent) OccurredAt() time.Time {
	return e.EnabledAt
}

// RecipeIndexingDisabledEvent is raised when a recipe opts out of the
// vector index
type RecipeIndexingDisabledEvent struct {
	RecipeID   uuid.UUID
	DisabledAt time.Time
}

func (e RecipeIndexingDisabledEvent) EventName() string {
	return "recipe.indexing.disabled"
}

func (e RecipeIndexingDisabledEvent) OccurredAt() time.Time {
	return e.DisabledAt
}

// CommentAddedEvent is raised when a comment is added to a recipe
type CommentAddedEvent struct {
	RecipeID  uuid.UUID
	CommentID uuid.UUID
	UserID    uuid.UUID
	AddedAt   time.Time
}

func (e CommentAddedEvent) EventName() string {
	return "recipe.comment.added"
}

func (e CommentAddedEvent) OccurredAt() time.Time {
	return e.AddedAt
}
