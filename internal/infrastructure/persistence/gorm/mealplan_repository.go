// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
)

// MealPlanRepository implements the meal plan repository interface using GORM
type MealPlanRepository struct {
	db *gorm.DB
}

// NewMealPlanRepository creates a new meal plan repository
func NewMealPlanRepository(db *gorm.DB) outbound.MealPlanRepository {
	return &MealPlanRepository{db: db}
}

// Create persists a saved meal plan
func (r *MealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	model, err := MealPlanToModel(plan)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// Delete removes a saved meal plan by ID
func (r *MealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&MealPlanModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return mealplan.ErrPlanNotFound
	}

	return nil
}

// FindByID finds a saved meal plan by ID
func (r *MealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var model MealPlanModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, mealplan.ErrPlanNotFound
		}
		return nil, result.Error
	}

	return ModelToMealPlan(&model)
}

// FindByOwner finds the meal plans saved by a user with pagination
func (r *MealPlanRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*mealplan.MealPlan, int, error) {
	var total int64
	countResult := r.db.WithContext(ctx).Model(&MealPlanModel{}).
		Where("owner_id = ?", ownerID).
		Count(&total)
	if countResult.Error != nil {
		return nil, 0, countResult.Error
	}

	var models []MealPlanModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	plans := make([]*mealplan.MealPlan, len(models))
	for i := range models {
		plan, err := ModelToMealPlan(&models[i])
		if err != nil {
			return nil, 0, err
		}
		plans[i] = plan
	}

	return plans, int(total), nil
}
