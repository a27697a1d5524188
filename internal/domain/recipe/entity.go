// Package recipe contains the core domain logic for recipe management.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saskialein/plan-to-plate/internal/domain/shared"
)

// Recipe represents the core recipe entity in our domain.
// A recipe points at its source, either an external URL or an uploaded file.
type Recipe struct {
	// Aggregate root identifier
	id uuid.UUID

	// Basic attributes
	title       string
	description string
	ownerID     uuid.UUID

	// Source location
	url      string
	filePath string

	// Categorization
	categories []string

	// Whether the recipe's content is indexed for plan generation
	storeInVectorDB bool

	// Social features
	comments []Comment

	// Metadata
	createdAt time.Time
	updatedAt time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(title, url, filePath string, ownerID uuid.UUID) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if url == "" && filePath == "" {
		return nil, ErrMissingSource
	}

	now := time.Now()
	recipe := &Recipe{
		id:        uuid.New(),
		title:     title,
		url:       url,
		filePath:  filePath,
		ownerID:   ownerID,
		createdAt: now,
		updatedAt: now,
		events:    []shared.DomainEvent{},
	}

	recipe.addEvent(RecipeCreatedEvent{
		RecipeID:  recipe.id,
		OwnerID:   ownerID,
		Title:     title,
		CreatedAt: now,
	})

	return recipe, nil
}

// Reconstruct rebuilds a recipe from persisted state without validation
// or events
func Reconstruct(
	id, ownerID uuid.UUID,
	title, url, filePath, description string,
	categories []string,
	storeInVectorDB bool,
	comments []Comment,
	createdAt, updatedAt time.Time,
) *Recipe {
	return &Recipe{
		id:              id,
		ownerID:         ownerID,
		title:           title,
		url:             url,
		filePath:        filePath,
		description:     description,
		categories:      categories,
		storeInVectorDB: storeInVectorDB,
		comments:        comments,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		events:          []shared.DomainEvent{},
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// OwnerID returns the owning user's identifier
func (r *Recipe) OwnerID() uuid.UUID {
	return r.ownerID
}

// URL returns the recipe's external source URL, if any
func (r *Recipe) URL() string {
	return r.url
}

// FilePath returns the recipe's uploaded file location, if any
func (r *Recipe) FilePath() string {
	return r.filePath
}

// Source returns the recipe's canonical source, preferring the URL
func (r *Recipe) Source() string {
	if r.url != "" {
		return r.url
	}
	return r.filePath
}

// Categories returns the recipe's categories
func (r *Recipe) Categories() []string {
	return r.categories
}

// StoreInVectorDB reports whether the recipe's content is indexed
func (r *Recipe) StoreInVectorDB() bool {
	return r.storeInVectorDB
}

// Comments returns the recipe's comments
func (r *Recipe) Comments() []Comment {
	return r.comments
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// IsOwnedBy reports whether the given user owns this recipe
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

// UpdateTitle updates the recipe title with validation
func (r *Recipe) UpdateTitle(title string) error {
	if err := validateTitle(title); err != nil {
		return err
	}

	oldTitle := r.title
	r.title = title
	r.updatedAt = time.Now()

	r.addEvent(RecipeTitleUpdatedEvent{
		RecipeID:  r.id,
		OldTitle:  oldTitle,
		NewTitle:  title,
		UpdatedAt: r.updatedAt,
	})

	return nil
}

// UpdateDescription updates the recipe description with validation
func (r *Recipe) UpdateDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}
	r.description = description
	r.updatedAt = time.Now()
	return nil
}

// SetCategories replaces the recipe's categories
func (r *Recipe) SetCategories(categories []string) {
	cleaned := make([]string, 0, len(categories))
	for _, c := range categories {
		if c = strings.TrimSpace(c); c != "" {
			cleaned = append(cleaned, c)
		}
	}
	r.categories = cleaned
	r.updatedAt = time.Now()
}

// EnableIndexing marks the recipe's content for vector indexing
func (r *Recipe) EnableIndexing() {
	if r.storeInVectorDB {
		return
	}
	r.storeInVectorDB = true
	r.updatedAt = time.Now()

	r.addEvent(RecipeIndexingEnabledEvent{
		RecipeID:  r.id,
		Source:    r.Source(),
		EnabledAt: r.updatedAt,
	})
}

// DisableIndexing removes the recipe's content from vector indexing
func (r *Recipe) DisableIndexing() {
	if !r.storeInVectorDB {
		return
	}
	r.storeInVectorDB = false
	r.updatedAt = time.Now()

	r.addEvent(RecipeIndexingDisabledEvent{
		RecipeID:   r.id,
		DisabledAt: r.updatedAt,
	})
}

// AddComment adds a user comment to the recipe
func (r *Recipe) AddComment(comment Comment) error {
	if err := comment.Validate(); err != nil {
		return err
	}

	r.comments = append(r.comments, comment)
	r.updatedAt = time.Now()

	r.addEvent(CommentAddedEvent{
		RecipeID:  r.id,
		CommentID: comment.ID,
		UserID:    comment.UserID,
		AddedAt:   r.updatedAt,
	})

	return nil
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = []shared.DomainEvent{}
	return events
}

// validateTitle validates recipe title
func validateTitle(title string) error {
	if len(title) < 3 {
		return ErrTitleTooShort
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}

// validateDescription validates recipe description
func validateDescription(description string) error {
	if len(description) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}
