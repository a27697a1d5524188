package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Value Objects - Immutable objects that describe aspects of the domain

// Comment represents a user comment on a recipe
type Comment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Content   string
	CreatedAt time.Time
}

// NewComment creates a comment with validation
func NewComment(userID uuid.UUID, content string) (Comment, error) {
	comment := Comment{
		ID:        uuid.New(),
		UserID:    userID,
		Content:   strings.TrimSpace(content),
		CreatedAt: time.Now(),
	}
	if err := comment.Validate(); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

// Validate validates the comment
func (c Comment) Validate() error {
	if c.Content == "" {
		return ErrEmptyComment
	}
	if len(c.Content) > 1000 {
		return ErrCommentTooLong
	}
	return nil
}
