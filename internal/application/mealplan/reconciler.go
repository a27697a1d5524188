package mealplan

import (
	"strings"

	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
)

// MatchPolicy selects how generated recipe titles are matched against
// candidate titles
type MatchPolicy string

const (
	// MatchSubstring matches when the candidate title appears inside
	// the generated title after normalization. A generated title that
	// happens to contain an unrelated candidate's title will misattribute
	// the URL; the policy is configurable for that reason.
	MatchSubstring MatchPolicy = "substring"

	// MatchExact requires the normalized titles to be equal
	MatchExact MatchPolicy = "exact"
)

// Reconciler cross-references generated meals against the retrieved
// candidate set. Provenance wins over generated detail: a matched meal is
// rewritten to cite the candidate's URL.
type Reconciler struct {
	policy MatchPolicy
	logger *zap.Logger
}

// NewReconciler creates a reconciler with the given match policy
func NewReconciler(policy MatchPolicy, logger *zap.Logger) *Reconciler {
	if policy == "" {
		policy = MatchSubstring
	}
	return &Reconciler{
		policy: policy,
		logger: logger.Named("reconciler"),
	}
}

// Reconcile visits all 21 slots. The first candidate matching a meal's title
// wins, in candidate list order; the meal's URL is overwritten and its
// inline ingredients and steps are cleared. Unmatched meals keep the
// model's inline content, with the URL preferred when the model supplied
// both, so every meal leaves with exactly one source.
func (r *Reconciler) Reconcile(plan *mealplan.WeekPlan, candidates []mealplan.RecipeCandidate) *mealplan.WeekPlan {
	matched := 0
	plan.Slots(func(s mealplan.Slot, m mealplan.Meal) {
		if candidate, ok := r.match(m.Recipe, candidates); ok {
			m.URL = candidate.URL
			m.Ingredients = nil
			m.RecipeSteps = nil
			plan.SetMeal(s, m)
			matched++
			return
		}
		if m.URL != "" && (len(m.Ingredients) > 0 || len(m.RecipeSteps) > 0) {
			m.Ingredients = nil
			m.RecipeSteps = nil
			plan.SetMeal(s, m)
		}
	})

	r.logger.Debug("plan reconciled",
		zap.Int("matched", matched),
		zap.Int("candidates", len(candidates)),
	)
	return plan
}

// match finds the first candidate matching the generated title
func (r *Reconciler) match(recipe string, candidates []mealplan.RecipeCandidate) (mealplan.RecipeCandidate, bool) {
	title := normalizeTitle(recipe)
	for _, candidate := range candidates {
		candidateTitle := normalizeTitle(candidate.Title)
		if candidateTitle == "" {
			continue
		}
		switch r.policy {
		case MatchExact:
			if title == candidateTitle {
				return candidate, true
			}
		default:
			if strings.Contains(title, candidateTitle) {
				return candidate, true
			}
		}
	}
	return mealplan.RecipeCandidate{}, false
}

// normalizeTitle lowercases and collapses whitespace for comparison
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
