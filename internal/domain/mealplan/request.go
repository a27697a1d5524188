package mealplan

import "strings"

// PlanRequest is a validated request for one week of meals
type PlanRequest struct {
	Diets          []string
	Vegetables     []string
	NumberOfPeople int
	StartDay       Day
}

// NewPlanRequest validates the raw request values and normalizes the start day
func NewPlanRequest(diets, vegetables []string, numberOfPeople int, startDay string) (PlanRequest, error) {
	day, err := ParseDay(startDay)
	if err != nil {
		return PlanRequest{}, err
	}

	cleaned := make([]string, 0, len(vegetables))
	for _, v := range vegetables {
		if v = strings.TrimSpace(v); v != "" {
			cleaned = append(cleaned, v)
		}
	}
	if len(cleaned) == 0 {
		return PlanRequest{}, ErrNoVegetables
	}

	if numberOfPeople <= 0 {
		return PlanRequest{}, ErrInvalidPeopleCount
	}

	return PlanRequest{
		Diets:          diets,
		Vegetables:     cleaned,
		NumberOfPeople: numberOfPeople,
		StartDay:       day,
	}, nil
}

// DayOrder returns the 7-day rotation the plan must follow
func (r PlanRequest) DayOrder() []Day {
	return Rotation(r.StartDay)
}

// Query returns the retrieval query string built from the vegetables
func (r PlanRequest) Query() string {
	return strings.Join(r.Vegetables, " ")
}

// RecipeCandidate is a deduplicated projection of a retrieval result,
// offered to the model as reusable content
type RecipeCandidate struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
