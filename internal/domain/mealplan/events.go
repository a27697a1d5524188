package mealplan

import (
	"time"

	"github.com/google/uuid"
)

// Domain Events - Events that occur within the meal-planning domain

// MealPlanSavedEvent is raised when a generated plan is saved
type MealPlanSavedEvent struct {
	PlanID  uuid.UUID
	OwnerID uuid.UUID
	Name    string
	SavedAt time.Time
}

func (e MealPlanSavedEvent) EventName() string {
	return "mealplan.saved"
}

func (e MealPlanSavedEvent) OccurredAt() time.Time {
	return e.SavedAt
}

// MealPlanDeletedEvent is raised when a saved plan is deleted
type MealPlanDeletedEvent struct {
	PlanID    uuid.UUID
	OwnerID   uuid.UUID
	DeletedAt time.Time
}

func (e MealPlanDeletedEvent) EventName() string {
	return "mealplan.deleted"
}

func (e MealPlanDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}

// MealPlanGeneratedEvent is raised when the generator produces a valid plan
type MealPlanGeneratedEvent struct {
	OwnerID     uuid.UUID
	StartDay    Day
	Candidates  int
	GeneratedAt time.Time
}

func (e MealPlanGeneratedEvent) EventName() string {
	return "mealplan.generated"
}

func (e MealPlanGeneratedEvent) OccurredAt() time.Time {
	return e.GeneratedAt
}
