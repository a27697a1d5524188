package mealplan

import (
	"errors"
	"fmt"
)

// Domain errors for meal planning

var (
	// Request validation errors
	ErrInvalidStartDay    = errors.New("start day must be one of the 7 canonical day names")
	ErrNoVegetables       = errors.New("at least one vegetable is required")
	ErrInvalidPeopleCount = errors.New("number of people must be greater than 0")

	// Plan schema errors
	ErrNotAnObject       = errors.New("plan must be a JSON object")
	ErrUnknownDay        = errors.New("unknown day name")
	ErrDuplicateDay      = errors.New("duplicate day")
	ErrMissingDay        = errors.New("missing day")
	ErrWrongDayCount     = errors.New("plan must contain exactly 7 days")
	ErrDayOutOfOrder     = errors.New("day keys are not in the requested rotation")
	ErrInvalidDailyPlan  = errors.New("daily plan must contain breakfast, lunch and dinner")
	ErrMissingRecipeName = errors.New("meal is missing a recipe name")
	ErrMissingMealSource = errors.New("meal must carry a url or ingredients with steps")

	// Saved plan errors
	ErrPlanNameRequired = errors.New("meal plan name is required")
	ErrPlanNotFound     = errors.New("meal plan not found")
	ErrNotPlanOwner     = errors.New("only the plan owner can perform this action")
)

// ReuseViolation reports a broken leftover equality
type ReuseViolation struct {
	Pair ReusePair
}

func (e *ReuseViolation) Error() string {
	return fmt.Sprintf("meals in %s %s and %s %s must be identical",
		e.Pair.First.Day, e.Pair.First.Time, e.Pair.Second.Day, e.Pair.Second.Time)
}

// SoupViolation reports the designated soup appearing in the wrong slot,
// or missing from a designated slot
type SoupViolation struct {
	Slot       Slot
	Recipe     string
	Unexpected bool
}

func (e *SoupViolation) Error() string {
	if e.Unexpected {
		return fmt.Sprintf("soup %q appears outside its designated slots at %s %s",
			e.Recipe, e.Slot.Day, e.Slot.Time)
	}
	return fmt.Sprintf("designated soup slot %s %s holds %q instead of the soup",
		e.Slot.Day, e.Slot.Time, e.Recipe)
}
