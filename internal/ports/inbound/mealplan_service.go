package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
)

// MealPlanService defines the use cases for weekly meal planning
type MealPlanService interface {
	// GenerateMealPlan runs the full retrieval-augmented pipeline and
	// returns a validated, reconciled week plan
	GenerateMealPlan(ctx context.Context, cmd GenerateMealPlanCommand) (*mealplan.WeekPlan, error)

	// Saved plan management
	SaveMealPlan(ctx context.Context, cmd SaveMealPlanCommand) (*MealPlanDTO, error)
	ListMealPlans(ctx context.Context, ownerID uuid.UUID, params PaginationParams) (*MealPlanList, error)
	DeleteMealPlan(ctx context.Context, planID, ownerID uuid.UUID) error
}

// GenerateMealPlanCommand carries the raw generation request
type GenerateMealPlanCommand struct {
	Diets          []string
	Vegetables     []string
	NumberOfPeople int
	StartDay       string
	OwnerID        uuid.UUID
}

// SaveMealPlanCommand carries a plan the caller wants to keep
type SaveMealPlanCommand struct {
	Name    string
	Plan    *mealplan.WeekPlan
	OwnerID uuid.UUID
}

// MealPlanDTO is the data transfer object for saved meal plans
type MealPlanDTO struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Plan      *mealplan.WeekPlan `json:"plan"`
	OwnerID   uuid.UUID          `json:"owner_id"`
	CreatedAt string             `json:"created_at"`
}

// MealPlanList for paginated results
type MealPlanList struct {
	Data  []MealPlanDTO `json:"data"`
	Count int           `json:"count"`
}
