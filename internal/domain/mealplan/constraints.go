package mealplan

import "strings"

// ReusePair names two slots that must hold the same meal, identical in
// title, ingredients and steps
type ReusePair struct {
	First  Slot
	Second Slot
}

// ReusePairs are the five leftover equalities every plan must satisfy
var ReusePairs = []ReusePair{
	{First: Slot{Sunday, Dinner}, Second: Slot{Monday, Lunch}},
	{First: Slot{Tuesday, Dinner}, Second: Slot{Wednesday, Lunch}},
	{First: Slot{Wednesday, Dinner}, Second: Slot{Thursday, Lunch}},
	{First: Slot{Monday, Breakfast}, Second: Slot{Thursday, Breakfast}},
	{First: Slot{Tuesday, Breakfast}, Second: Slot{Friday, Breakfast}},
}

// SoupSlots are the only three slots where the chicken-stock vegetable soup
// may appear
var SoupSlots = []Slot{
	{Monday, Dinner},
	{Wednesday, Breakfast},
	{Thursday, Dinner},
}

// Soup ingredient sets for the designated chicken-stock vegetable soup
var (
	SoupMandatoryVegetables = []string{"onion", "carrot", "celery", "celery greens"}
	SoupOptionalVegetables  = []string{"potato", "mushroom", "spinach", "fennel"}
)

// IsSoupSlot reports whether the slot is one of the designated soup slots
func IsSoupSlot(s Slot) bool {
	for _, slot := range SoupSlots {
		if slot == s {
			return true
		}
	}
	return false
}

// looksLikeSoup is a conservative title check used by the strict validator
func looksLikeSoup(recipe string) bool {
	title := strings.ToLower(recipe)
	return strings.Contains(title, "soup") && (strings.Contains(title, "chicken stock") ||
		strings.Contains(title, "chicken-stock") || strings.Contains(title, "vegetable"))
}

// CheckReusePairs verifies the five reuse equalities hold structurally
func (p *WeekPlan) CheckReusePairs() error {
	for _, pair := range ReusePairs {
		if !mealsEqual(p.Meal(pair.First), p.Meal(pair.Second)) {
			return &ReuseViolation{Pair: pair}
		}
	}
	return nil
}

// CheckSoupSlots verifies the soup appears in the three designated slots
// and nowhere else
func (p *WeekPlan) CheckSoupSlots() error {
	var violation *SoupViolation
	p.Slots(func(s Slot, m Meal) {
		if violation != nil {
			return
		}
		isSoup := looksLikeSoup(m.Recipe)
		if isSoup && !IsSoupSlot(s) {
			violation = &SoupViolation{Slot: s, Recipe: m.Recipe, Unexpected: true}
		}
		if !isSoup && IsSoupSlot(s) {
			violation = &SoupViolation{Slot: s, Recipe: m.Recipe}
		}
	})
	if violation != nil {
		return violation
	}
	return nil
}

func mealsEqual(a, b Meal) bool {
	if a.Recipe != b.Recipe || a.URL != b.URL {
		return false
	}
	return stringsEqual(a.Ingredients, b.Ingredients) && stringsEqual(a.RecipeSteps, b.RecipeSteps)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
