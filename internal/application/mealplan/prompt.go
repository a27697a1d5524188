package mealplan

import (
	"fmt"
	"strings"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
)

// PromptBuilder deterministically renders the constraint template for the
// language model
type PromptBuilder struct{}

// NewPromptBuilder creates a prompt builder
func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Build renders the full generation prompt for the request and the
// retrieved candidates
func (b *PromptBuilder) Build(req mealplan.PlanRequest, candidates []mealplan.RecipeCandidate) string {
	var sb strings.Builder

	order := req.DayOrder()
	dayNames := make([]string, len(order))
	for i, d := range order {
		dayNames[i] = d.Title()
	}

	fmt.Fprintf(&sb, "You are a meal-planning assistant. Create a weekly meal plan for %d people", req.NumberOfPeople)
	if len(req.Diets) > 0 {
		fmt.Fprintf(&sb, " following these diets: %s", strings.Join(req.Diets, ", "))
	}
	fmt.Fprintf(&sb, ".\nThe plan should make use of these vegetables: %s.\n\n", strings.Join(req.Vegetables, ", "))

	sb.WriteString("Hard requirements, all of them mandatory:\n")
	fmt.Fprintf(&sb, "1. The plan covers exactly these 7 days in exactly this order: %s. Use the lowercase day names as JSON keys.\n",
		strings.Join(dayNames, ", "))
	sb.WriteString("2. Every meal provides 20-30g or more of protein per serving and uses whole, unprocessed foods.\n")
	sb.WriteString("3. All breakfasts are savory, except Sunday's breakfast which may be sweet.\n")

	fmt.Fprintf(&sb, "4. One designated soup made on chicken stock with these mandatory vegetables: %s",
		strings.Join(mealplan.SoupMandatoryVegetables, ", "))
	fmt.Fprintf(&sb, " (optionally also %s)", strings.Join(mealplan.SoupOptionalVegetables, ", "))
	sb.WriteString(" appears in exactly three slots and nowhere else: ")
	soupSlots := make([]string, len(mealplan.SoupSlots))
	for i, slot := range mealplan.SoupSlots {
		soupSlots[i] = fmt.Sprintf("%s %s", slot.Day.Title(), slot.Time)
	}
	sb.WriteString(strings.Join(soupSlots, ", "))
	sb.WriteString(".\n")

	sb.WriteString("5. The following meal pairs are leftovers and must be completely identical in recipe name, ingredients and steps:\n")
	for _, pair := range mealplan.ReusePairs {
		fmt.Fprintf(&sb, "   - %s %s and %s %s\n",
			pair.First.Day.Title(), pair.First.Time,
			pair.Second.Day.Title(), pair.Second.Time)
	}

	if len(candidates) > 0 {
		sb.WriteString("6. You may reuse any of these saved recipes. When a meal uses one of them, cite its url instead of writing out ingredients and steps:\n")
		for _, c := range candidates {
			fmt.Fprintf(&sb, "   - %q: %s\n", c.Title, c.URL)
		}
	}

	sb.WriteString("\nRespond with a single JSON object and nothing else, no commentary and no markdown. ")
	sb.WriteString("The object has the 7 day names as keys in the order given above. ")
	sb.WriteString(`Each day is an object with "breakfast", "lunch" and "dinner". `)
	sb.WriteString(`Each meal is an object with a "recipe" name and either a "url" `)
	sb.WriteString(`or both "ingredients" and "recipe_steps" as arrays of strings.`)

	return sb.String()
}
