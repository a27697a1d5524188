package mealplan

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MealTime is one of the three daily meal slots
type MealTime string

const (
	Breakfast MealTime = "breakfast"
	Lunch     MealTime = "lunch"
	Dinner    MealTime = "dinner"
)

// MealTimes is the fixed slot order within a day
var MealTimes = []MealTime{Breakfast, Lunch, Dinner}

// Slot addresses a single meal within a week
type Slot struct {
	Day  Day
	Time MealTime
}

// Meal is a single planned meal. After reconciliation exactly one of URL or
// the inline Ingredients and RecipeSteps is populated.
type Meal struct {
	Recipe      string   `json:"recipe"`
	URL         string   `json:"url,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	RecipeSteps []string `json:"recipe_steps,omitempty"`
}

// HasSource reports whether the meal carries either a source URL or
// inline ingredients and steps
func (m Meal) HasSource() bool {
	if m.URL != "" {
		return true
	}
	return len(m.Ingredients) > 0 && len(m.RecipeSteps) > 0
}

// Validate checks the meal against the schema rules
func (m Meal) Validate() error {
	if m.Recipe == "" {
		return ErrMissingRecipeName
	}
	if !m.HasSource() {
		return ErrMissingMealSource
	}
	return nil
}

// DailyPlan holds exactly the three meal slots of one day
type DailyPlan struct {
	Breakfast Meal `json:"breakfast"`
	Lunch     Meal `json:"lunch"`
	Dinner    Meal `json:"dinner"`
}

// Meal returns the meal in the given slot
func (d DailyPlan) Meal(t MealTime) Meal {
	switch t {
	case Breakfast:
		return d.Breakfast
	case Lunch:
		return d.Lunch
	case Dinner:
		return d.Dinner
	}
	return Meal{}
}

// SetMeal replaces the meal in the given slot
func (d *DailyPlan) SetMeal(t MealTime, m Meal) {
	switch t {
	case Breakfast:
		d.Breakfast = m
	case Lunch:
		d.Lunch = m
	case Dinner:
		d.Dinner = m
	}
}

// WeekPlan is an ordered mapping from the 7 canonical day names to daily
// plans, starting at a caller-specified day and wrapping in canonical order.
type WeekPlan struct {
	order []Day
	days  map[Day]DailyPlan
}

// NewWeekPlan creates an empty week plan with the given day order
func NewWeekPlan(order []Day) *WeekPlan {
	days := make(map[Day]DailyPlan, len(order))
	for _, d := range order {
		days[d] = DailyPlan{}
	}
	return &WeekPlan{order: append([]Day(nil), order...), days: days}
}

// Order returns the plan's day order
func (p *WeekPlan) Order() []Day {
	return append([]Day(nil), p.order...)
}

// Day returns the daily plan for the given day
func (p *WeekPlan) Day(d Day) (DailyPlan, bool) {
	plan, ok := p.days[d]
	return plan, ok
}

// SetDay replaces the daily plan for the given day
func (p *WeekPlan) SetDay(d Day, plan DailyPlan) {
	p.days[d] = plan
}

// Meal returns the meal at the given slot
func (p *WeekPlan) Meal(s Slot) Meal {
	return p.days[s.Day].Meal(s.Time)
}

// SetMeal replaces the meal at the given slot
func (p *WeekPlan) SetMeal(s Slot, m Meal) {
	day := p.days[s.Day]
	day.SetMeal(s.Time, m)
	p.days[s.Day] = day
}

// Slots visits all 21 meal slots in plan order
func (p *WeekPlan) Slots(visit func(s Slot, m Meal)) {
	for _, d := range p.order {
		for _, t := range MealTimes {
			visit(Slot{Day: d, Time: t}, p.days[d].Meal(t))
		}
	}
}

// Validate checks the full week-plan schema: exactly the 7 canonical days
// in the plan's order, each with three valid meals
func (p *WeekPlan) Validate() error {
	if len(p.order) != len(CanonicalWeek) {
		return fmt.Errorf("%w: got %d days", ErrWrongDayCount, len(p.order))
	}
	seen := make(map[Day]bool, len(p.order))
	for _, d := range p.order {
		if seen[d] {
			return fmt.Errorf("%w: %s", ErrDuplicateDay, d)
		}
		seen[d] = true

		day, ok := p.days[d]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingDay, d)
		}
		for _, t := range MealTimes {
			if err := day.Meal(t).Validate(); err != nil {
				return fmt.Errorf("%s %s: %w", d, t, err)
			}
		}
	}
	return nil
}

// MarshalJSON renders the plan as a JSON object with day keys in plan order
func (p *WeekPlan) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range p.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(string(d))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		day, err := json.Marshal(p.days[d])
		if err != nil {
			return nil, err
		}
		buf.Write(day)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON parses a JSON object into the plan, preserving key order
func (p *WeekPlan) UnmarshalJSON(data []byte) error {
	parsed, err := ParseWeekPlan(data)
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}

// ParseWeekPlan decodes a JSON object into a WeekPlan, preserving the order
// of its day keys. Unknown day names and non-object payloads are rejected.
// The result is not schema-validated; call Validate or ValidateOrder next.
func ParseWeekPlan(data []byte) (*WeekPlan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnObject, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotAnObject
	}

	plan := &WeekPlan{days: make(map[Day]DailyPlan)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrNotAnObject, err)
		}
		key, _ := keyTok.(string)
		day, err := ParseDay(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownDay, key)
		}
		if _, dup := plan.days[day]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDay, day)
		}

		var daily DailyPlan
		if err := dec.Decode(&daily); err != nil {
			return nil, fmt.Errorf("%s: %w", day, ErrInvalidDailyPlan)
		}
		plan.order = append(plan.order, day)
		plan.days[day] = daily
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnObject, err)
	}
	return plan, nil
}

// ValidateOrder checks that the plan's day keys are exactly the given
// rotation, in order
func (p *WeekPlan) ValidateOrder(want []Day) error {
	if len(p.order) != len(want) {
		return fmt.Errorf("%w: got %d days, want %d", ErrWrongDayCount, len(p.order), len(want))
	}
	for i, d := range want {
		if p.order[i] != d {
			return fmt.Errorf("%w: position %d is %s, want %s", ErrDayOutOfOrder, i, p.order[i], d)
		}
	}
	return nil
}
