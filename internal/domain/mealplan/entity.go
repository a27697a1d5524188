package mealplan

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saskialein/plan-to-plate/internal/domain/shared"
)

// MealPlan is a saved weekly plan owned by a user
type MealPlan struct {
	id      uuid.UUID
	ownerID uuid.UUID

	name string
	plan *WeekPlan

	createdAt time.Time
	updatedAt time.Time

	events []shared.DomainEvent
}

// NewMealPlan creates a saved meal plan with validation
func NewMealPlan(name string, plan *WeekPlan, ownerID uuid.UUID) (*MealPlan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlanNameRequired
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	mp := &MealPlan{
		id:        uuid.New(),
		ownerID:   ownerID,
		name:      name,
		plan:      plan,
		createdAt: now,
		updatedAt: now,
		events:    []shared.DomainEvent{},
	}

	mp.addEvent(MealPlanSavedEvent{
		PlanID:  mp.id,
		OwnerID: ownerID,
		Name:    name,
		SavedAt: now,
	})

	return mp, nil
}

// Reconstruct rebuilds a meal plan from persisted state without validation
// or events
func Reconstruct(id, ownerID uuid.UUID, name string, plan *WeekPlan, createdAt, updatedAt time.Time) *MealPlan {
	return &MealPlan{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		plan:      plan,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    []shared.DomainEvent{},
	}
}

// ID returns the plan's unique identifier
func (m *MealPlan) ID() uuid.UUID {
	return m.id
}

// OwnerID returns the owning user's identifier
func (m *MealPlan) OwnerID() uuid.UUID {
	return m.ownerID
}

// Name returns the plan's display name
func (m *MealPlan) Name() string {
	return m.name
}

// Plan returns the weekly plan
func (m *MealPlan) Plan() *WeekPlan {
	return m.plan
}

// CreatedAt returns when the plan was saved
func (m *MealPlan) CreatedAt() time.Time {
	return m.createdAt
}

// UpdatedAt returns when the plan was last updated
func (m *MealPlan) UpdatedAt() time.Time {
	return m.updatedAt
}

// IsOwnedBy reports whether the given user owns this plan
func (m *MealPlan) IsOwnedBy(userID uuid.UUID) bool {
	return m.ownerID == userID
}

// Rename changes the plan's display name
func (m *MealPlan) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrPlanNameRequired
	}
	m.name = name
	m.updatedAt = time.Now()
	return nil
}

// addEvent adds a domain event to be dispatched
func (m *MealPlan) addEvent(event shared.DomainEvent) {
	m.events = append(m.events, event)
}

// Events returns and clears pending domain events
func (m *MealPlan) Events() []shared.DomainEvent {
	events := m.events
	m.events = []shared.DomainEvent{}
	return events
}
