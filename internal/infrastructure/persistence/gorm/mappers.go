// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/domain/recipe"
	"github.com/saskialein/plan-to-plate/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Email:        u.Email(),
		FullName:     u.FullName(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		IsSuperuser:  u.IsSuperuser(),
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
		LastLoginAt:  u.LastLoginAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(model *UserModel) *user.User {
	return user.ReconstructUser(
		model.ID,
		model.Email,
		model.FullName,
		model.PasswordHash,
		model.IsActive,
		model.IsSuperuser,
		model.CreatedAt,
		model.UpdatedAt,
		model.LastLoginAt,
	)
}

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID(),
		Title:           r.Title(),
		Description:     r.Description(),
		URL:             r.URL(),
		FilePath:        r.FilePath(),
		Categories:      StringSlice(r.Categories()),
		StoreInVectorDB: r.StoreInVectorDB(),
		OwnerID:         r.OwnerID(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(model *RecipeModel) *recipe.Recipe {
	comments := make([]recipe.Comment, 0, len(model.Comments))
	for _, c := range model.Comments {
		comments = append(comments, recipe.Comment{
			ID:        c.ID,
			UserID:    c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt,
		})
	}

	return recipe.Reconstruct(
		model.ID,
		model.OwnerID,
		model.Title,
		model.URL,
		model.FilePath,
		model.Description,
		[]string(model.Categories),
		model.StoreInVectorDB,
		comments,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// CommentToModel converts a domain comment to a GORM model
func CommentToModel(recipeID uuid.UUID, c recipe.Comment) *CommentModel {
	return &CommentModel{
		ID:        c.ID,
		RecipeID:  recipeID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

// MealPlanToModel converts a domain meal plan to a GORM model
func MealPlanToModel(p *mealplan.MealPlan) (*MealPlanModel, error) {
	planJSON, err := p.Plan().MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize meal plan: %w", err)
	}

	return &MealPlanModel{
		ID:        p.ID(),
		Name:      p.Name(),
		Plan:      PlanJSON(planJSON),
		OwnerID:   p.OwnerID(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}, nil
}

// ModelToMealPlan converts a GORM model to a domain meal plan
func ModelToMealPlan(model *MealPlanModel) (*mealplan.MealPlan, error) {
	plan, err := mealplan.ParseWeekPlan([]byte(model.Plan))
	if err != nil {
		return nil, fmt.Errorf("failed to parse stored meal plan %s: %w", model.ID, err)
	}

	return mealplan.Reconstruct(
		model.ID,
		model.OwnerID,
		model.Name,
		plan,
		model.CreatedAt,
		model.UpdatedAt,
	), nil
}
