package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrTitleTooShort      = errors.New("recipe title must be at least 3 characters")
	ErrTitleTooLong       = errors.New("recipe title must not exceed 200 characters")
	ErrDescriptionTooLong = errors.New("recipe description must not exceed 2000 characters")
	ErrMissingSource      = errors.New("recipe must have a url or an uploaded file")

	// Comment errors
	ErrEmptyComment   = errors.New("comment content is required")
	ErrCommentTooLong = errors.New("comment must not exceed 1000 characters")

	// Lookup and permission errors
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrUnauthorized   = errors.New("unauthorized to perform this action")
	ErrNotRecipeOwner = errors.New("only recipe owner can perform this action")
)
