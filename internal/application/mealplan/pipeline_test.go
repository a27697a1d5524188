package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/ingest"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// MockChatModel is a mock implementation of the chat model port
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, maxTokens)
	return args.String(0), args.Error(1)
}

// MockVectorIndex is a mock implementation of the vector index port
type MockVectorIndex struct {
	mock.Mock
}

func (m *MockVectorIndex) Upsert(ctx context.Context, chunks []ingest.EmbeddedChunk) error {
	args := m.Called(ctx, chunks)
	return args.Error(0)
}

func (m *MockVectorIndex) SimilaritySearch(ctx context.Context, query string, k int) ([]outbound.IndexEntry, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.IndexEntry), args.Error(1)
}

func (m *MockVectorIndex) DeleteByRecipe(ctx context.Context, recipeID string) error {
	args := m.Called(ctx, recipeID)
	return args.Error(0)
}

// MockMealPlanRepository is a mock implementation of the saved-plan repository
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) Create(ctx context.Context, plan *mealplan.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*mealplan.MealPlan, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*mealplan.MealPlan), args.Int(1), args.Error(2)
}

// compliantPlan builds a week plan starting at the given day that satisfies
// the schema, the leftover equalities and the soup placement rules
func compliantPlan(start mealplan.Day) *mealplan.WeekPlan {
	plan := mealplan.NewWeekPlan(mealplan.Rotation(start))
	plan.Slots(func(s mealplan.Slot, _ mealplan.Meal) {
		plan.SetMeal(s, mealplan.Meal{
			Recipe:      fmt.Sprintf("%s %s dish", s.Day, s.Time),
			Ingredients: []string{"chicken", "rice"},
			RecipeSteps: []string{"Cook the chicken", "Serve over rice"},
		})
	})

	soup := mealplan.Meal{
		Recipe:      "Chicken Stock Vegetable Soup",
		Ingredients: []string{"chicken stock", "onion", "carrot", "celery", "celery greens"},
		RecipeSteps: []string{"Simmer the stock", "Add the vegetables"},
	}
	for _, s := range mealplan.SoupSlots {
		plan.SetMeal(s, soup)
	}
	for _, pair := range mealplan.ReusePairs {
		plan.SetMeal(pair.Second, plan.Meal(pair.First))
	}
	return plan
}

func planJSON(t *testing.T, plan *mealplan.WeekPlan) string {
	t.Helper()
	data, err := json.Marshal(plan)
	require.NoError(t, err)
	return string(data)
}

func testRequest(t *testing.T) mealplan.PlanRequest {
	t.Helper()
	req, err := mealplan.NewPlanRequest([]string{"vegetarian"}, []string{"carrot", "leek"}, 4, "monday")
	require.NoError(t, err)
	return req
}

func TestGenerator(t *testing.T) {
	logger := zaptest.NewLogger(t)
	order := mealplan.Rotation(mealplan.Monday)

	t.Run("valid response reaches the validated state", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, "prompt", 4096).
			Return(planJSON(t, compliantPlan(mealplan.Monday)), nil)

		gen := NewGenerator(model, 0, false, logger).Generate(context.Background(), "prompt", order)

		assert.Equal(t, StateValidated, gen.State)
		require.NotNil(t, gen.Plan)
		assert.NoError(t, gen.Plan.ValidateOrder(order))
		model.AssertExpectations(t)
	})

	t.Run("commentary around the JSON object is tolerated", func(t *testing.T) {
		model := new(MockChatModel)
		wrapped := "Here is your plan:\n" + planJSON(t, compliantPlan(mealplan.Monday)) + "\nEnjoy!"
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(wrapped, nil)

		gen := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)
		assert.Equal(t, StateValidated, gen.State)
	})

	t.Run("unparseable output fails as malformed", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return("Sorry, I cannot help with that.", nil)

		gen := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)

		assert.Equal(t, StateFailed, gen.State)
		appErr, ok := gen.Err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeModelOutputMalformed, appErr.Code)
	})

	t.Run("truncated JSON fails as malformed", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return(`{"monday": {"breakfast": {"recipe"}`, nil)

		gen := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)

		assert.Equal(t, StateFailed, gen.State)
		appErr, ok := gen.Err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeModelOutputMalformed, appErr.Code)
	})

	t.Run("parseable JSON with wrong shape fails schema validation", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return(`{"monday": {"breakfast": {"recipe": "Eggs"}}}`, nil)

		gen := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)

		assert.Equal(t, StateFailed, gen.State)
		appErr, ok := gen.Err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeSchemaValidationFailed, appErr.Code)
	})

	t.Run("plan in the wrong rotation fails schema validation", func(t *testing.T) {
		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).
			Return(planJSON(t, compliantPlan(mealplan.Wednesday)), nil)

		gen := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)

		assert.Equal(t, StateFailed, gen.State)
		appErr, ok := gen.Err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeSchemaValidationFailed, appErr.Code)
	})

	t.Run("model failure propagates the upstream error", func(t *testing.T) {
		model := new(MockChatModel)
		upstream := apperrors.NewUpstreamUnavailableError("openai", fmt.Errorf("timeout"))
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", upstream)

		gen := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)

		assert.Equal(t, StateFailed, gen.State)
		assert.Equal(t, upstream, gen.Err)
	})

	t.Run("strict mode rejects a broken leftover equality", func(t *testing.T) {
		plan := compliantPlan(mealplan.Monday)
		plan.SetMeal(mealplan.Slot{Day: mealplan.Monday, Time: mealplan.Lunch}, mealplan.Meal{
			Recipe:      "Rogue Lunch",
			Ingredients: []string{"bread"},
			RecipeSteps: []string{"Toast it"},
		})

		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(planJSON(t, plan), nil)

		strict := NewGenerator(model, 4096, true, logger).Generate(context.Background(), "prompt", order)
		assert.Equal(t, StateFailed, strict.State)

		lenient := NewGenerator(model, 4096, false, logger).Generate(context.Background(), "prompt", order)
		assert.Equal(t, StateValidated, lenient.State)
	})
}

func TestReconciler(t *testing.T) {
	logger := zaptest.NewLogger(t)

	mealAt := func(plan *mealplan.WeekPlan, day mealplan.Day, time mealplan.MealTime) mealplan.Meal {
		return plan.Meal(mealplan.Slot{Day: day, Time: time})
	}

	t.Run("substring match rewrites the meal to cite the candidate", func(t *testing.T) {
		plan := compliantPlan(mealplan.Monday)
		plan.SetMeal(mealplan.Slot{Day: mealplan.Friday, Time: mealplan.Dinner}, mealplan.Meal{
			Recipe:      "Spicy Carrot Soup",
			Ingredients: []string{"carrot", "chili"},
			RecipeSteps: []string{"Blend everything"},
		})
		candidates := []mealplan.RecipeCandidate{{Title: "Carrot Soup", URL: "http://x"}}

		result := NewReconciler(MatchSubstring, logger).Reconcile(plan, candidates)

		meal := mealAt(result, mealplan.Friday, mealplan.Dinner)
		assert.Equal(t, "Spicy Carrot Soup", meal.Recipe)
		assert.Equal(t, "http://x", meal.URL)
		assert.Nil(t, meal.Ingredients)
		assert.Nil(t, meal.RecipeSteps)
	})

	t.Run("exact policy requires equal titles", func(t *testing.T) {
		plan := compliantPlan(mealplan.Monday)
		plan.SetMeal(mealplan.Slot{Day: mealplan.Friday, Time: mealplan.Dinner}, mealplan.Meal{
			Recipe:      "Spicy Carrot Soup",
			Ingredients: []string{"carrot", "chili"},
			RecipeSteps: []string{"Blend everything"},
		})
		candidates := []mealplan.RecipeCandidate{
			{Title: "Carrot Soup", URL: "http://x"},
			{Title: "spicy carrot soup", URL: "http://y"},
		}

		result := NewReconciler(MatchExact, logger).Reconcile(plan, candidates)

		meal := mealAt(result, mealplan.Friday, mealplan.Dinner)
		assert.Equal(t, "http://y", meal.URL, "case-insensitive exact match should win")
	})

	t.Run("first matching candidate wins in list order", func(t *testing.T) {
		plan := compliantPlan(mealplan.Monday)
		plan.SetMeal(mealplan.Slot{Day: mealplan.Saturday, Time: mealplan.Lunch}, mealplan.Meal{
			Recipe:      "Leek and Carrot Gratin",
			Ingredients: []string{"leek"},
			RecipeSteps: []string{"Bake"},
		})
		candidates := []mealplan.RecipeCandidate{
			{Title: "Leek and Carrot Gratin", URL: "http://first"},
			{Title: "Carrot Gratin", URL: "http://second"},
		}

		result := NewReconciler(MatchSubstring, logger).Reconcile(plan, candidates)
		assert.Equal(t, "http://first", mealAt(result, mealplan.Saturday, mealplan.Lunch).URL)
	})

	t.Run("unmatched meal with both sources keeps only the url", func(t *testing.T) {
		plan := compliantPlan(mealplan.Monday)
		plan.SetMeal(mealplan.Slot{Day: mealplan.Saturday, Time: mealplan.Dinner}, mealplan.Meal{
			Recipe:      "Model Invented Dish",
			URL:         "http://model-says",
			Ingredients: []string{"mystery"},
			RecipeSteps: []string{"Cook"},
		})

		result := NewReconciler(MatchSubstring, logger).Reconcile(plan, nil)

		meal := mealAt(result, mealplan.Saturday, mealplan.Dinner)
		assert.Equal(t, "http://model-says", meal.URL)
		assert.Nil(t, meal.Ingredients)
		assert.Nil(t, meal.RecipeSteps)
	})

	t.Run("unmatched inline meal is left untouched", func(t *testing.T) {
		plan := compliantPlan(mealplan.Monday)
		before := mealAt(plan, mealplan.Sunday, mealplan.Lunch)

		result := NewReconciler(MatchSubstring, logger).Reconcile(plan, []mealplan.RecipeCandidate{
			{Title: "Completely Unrelated", URL: "http://z"},
		})

		assert.Equal(t, before, mealAt(result, mealplan.Sunday, mealplan.Lunch))
	})
}

func TestPromptBuilder(t *testing.T) {
	req, err := mealplan.NewPlanRequest([]string{"pescatarian"}, []string{"carrot", "fennel"}, 3, "wednesday")
	require.NoError(t, err)

	candidates := []mealplan.RecipeCandidate{{Title: "Carrot Soup", URL: "http://x"}}
	prompt := NewPromptBuilder().Build(req, candidates)

	assert.Contains(t, prompt, "3 people")
	assert.Contains(t, prompt, "pescatarian")
	assert.Contains(t, prompt, "carrot, fennel")
	assert.Contains(t, prompt, "Wednesday, Thursday, Friday, Saturday, Sunday, Monday, Tuesday")
	assert.Contains(t, prompt, "20-30g or more of protein")
	assert.Contains(t, prompt, "savory")
	assert.Contains(t, prompt, "chicken stock")
	assert.Contains(t, prompt, "onion, carrot, celery, celery greens")
	assert.Contains(t, prompt, "Monday dinner, Wednesday breakfast, Thursday dinner")
	assert.Contains(t, prompt, "Sunday dinner and Monday lunch")
	assert.Contains(t, prompt, `"Carrot Soup": http://x`)
	assert.Contains(t, prompt, "single JSON object")

	t.Run("candidate section is omitted without candidates", func(t *testing.T) {
		bare := NewPromptBuilder().Build(req, nil)
		assert.NotContains(t, bare, "saved recipes")
	})

	t.Run("identical input yields an identical prompt", func(t *testing.T) {
		assert.Equal(t, prompt, NewPromptBuilder().Build(req, candidates))
	})
}

func TestRetriever(t *testing.T) {
	logger := zaptest.NewLogger(t)

	t.Run("projects hits to title and url in result order", func(t *testing.T) {
		index := new(MockVectorIndex)
		index.On("SimilaritySearch", mock.Anything, "carrot leek", 10).Return([]outbound.IndexEntry{
			{ID: "a", Metadata: map[string]string{ingest.MetaTitle: "Carrot Soup", ingest.MetaSource: "http://x"}},
			{ID: "b", Metadata: map[string]string{ingest.MetaTitle: "Leek Tart", ingest.MetaSource: "http://y"}},
		}, nil)

		candidates, err := NewRetriever(index, 10, logger).Retrieve(context.Background(), testRequest(t))
		require.NoError(t, err)
		assert.Equal(t, []mealplan.RecipeCandidate{
			{Title: "Carrot Soup", URL: "http://x"},
			{Title: "Leek Tart", URL: "http://y"},
		}, candidates)
		index.AssertExpectations(t)
	})

	t.Run("index failure propagates", func(t *testing.T) {
		index := new(MockVectorIndex)
		indexErr := apperrors.NewIndexUnavailableError(fmt.Errorf("connection refused"))
		index.On("SimilaritySearch", mock.Anything, mock.Anything, mock.Anything).Return(nil, indexErr)

		_, err := NewRetriever(index, 10, logger).Retrieve(context.Background(), testRequest(t))
		assert.Equal(t, indexErr, err)
	})
}

func TestService(t *testing.T) {
	logger := zaptest.NewLogger(t)

	newService := func(model *MockChatModel, index *MockVectorIndex, repo *MockMealPlanRepository) *Service {
		return NewService(
			NewRetriever(index, 10, logger),
			NewPromptBuilder(),
			NewGenerator(model, 4096, false, logger),
			NewReconciler(MatchSubstring, logger),
			repo,
			logger,
		)
	}

	t.Run("GenerateMealPlan runs the full pipeline", func(t *testing.T) {
		index := new(MockVectorIndex)
		index.On("SimilaritySearch", mock.Anything, "carrot leek", 10).Return([]outbound.IndexEntry{
			{ID: "a", Metadata: map[string]string{ingest.MetaTitle: "Chicken Stock Vegetable Soup", ingest.MetaSource: "http://soup"}},
		}, nil)

		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, 4096).
			Return(planJSON(t, compliantPlan(mealplan.Monday)), nil)

		svc := newService(model, index, new(MockMealPlanRepository))
		plan, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{
			Diets:          []string{"vegetarian"},
			Vegetables:     []string{"carrot", "leek"},
			NumberOfPeople: 4,
			StartDay:       "monday",
		})

		require.NoError(t, err)
		require.NotNil(t, plan)

		// reconciliation rewrites the soup slots to cite the candidate
		soup := plan.Meal(mealplan.Slot{Day: mealplan.Monday, Time: mealplan.Dinner})
		assert.Equal(t, "http://soup", soup.URL)
		assert.Nil(t, soup.Ingredients)
	})

	t.Run("GenerateMealPlan rejects an invalid request before retrieval", func(t *testing.T) {
		svc := newService(new(MockChatModel), new(MockVectorIndex), new(MockMealPlanRepository))

		_, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{
			Vegetables:     []string{"carrot"},
			NumberOfPeople: 4,
			StartDay:       "caturday",
		})

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	})

	t.Run("GenerateMealPlan surfaces generation failure", func(t *testing.T) {
		index := new(MockVectorIndex)
		index.On("SimilaritySearch", mock.Anything, mock.Anything, mock.Anything).
			Return([]outbound.IndexEntry{}, nil)

		model := new(MockChatModel)
		model.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("not json", nil)

		svc := newService(model, index, new(MockMealPlanRepository))
		_, err := svc.GenerateMealPlan(context.Background(), inbound.GenerateMealPlanCommand{
			Vegetables:     []string{"carrot"},
			NumberOfPeople: 2,
			StartDay:       "monday",
		})

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeModelOutputMalformed, appErr.Code)
	})

	t.Run("SaveMealPlan persists a valid plan", func(t *testing.T) {
		repo := new(MockMealPlanRepository)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*mealplan.MealPlan")).Return(nil)

		svc := newService(new(MockChatModel), new(MockVectorIndex), repo)
		owner := uuid.New()

		dto, err := svc.SaveMealPlan(context.Background(), inbound.SaveMealPlanCommand{
			Name:    "Week of March 3",
			Plan:    compliantPlan(mealplan.Monday),
			OwnerID: owner,
		})

		require.NoError(t, err)
		assert.Equal(t, "Week of March 3", dto.Name)
		assert.Equal(t, owner, dto.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("SaveMealPlan rejects an invalid plan", func(t *testing.T) {
		svc := newService(new(MockChatModel), new(MockVectorIndex), new(MockMealPlanRepository))

		broken := compliantPlan(mealplan.Monday)
		broken.SetMeal(mealplan.Slot{Day: mealplan.Friday, Time: mealplan.Lunch}, mealplan.Meal{Recipe: "No Source"})

		_, err := svc.SaveMealPlan(context.Background(), inbound.SaveMealPlanCommand{
			Name: "Broken", Plan: broken, OwnerID: uuid.New(),
		})
		require.Error(t, err)
	})

	t.Run("DeleteMealPlan enforces ownership", func(t *testing.T) {
		owner := uuid.New()
		saved, err := mealplan.NewMealPlan("Mine", compliantPlan(mealplan.Monday), owner)
		require.NoError(t, err)

		repo := new(MockMealPlanRepository)
		repo.On("FindByID", mock.Anything, saved.ID()).Return(saved, nil)

		svc := newService(new(MockChatModel), new(MockVectorIndex), repo)
		err = svc.DeleteMealPlan(context.Background(), saved.ID(), uuid.New())

		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("ListMealPlans returns owner plans with count", func(t *testing.T) {
		owner := uuid.New()
		saved, err := mealplan.NewMealPlan("Week A", compliantPlan(mealplan.Monday), owner)
		require.NoError(t, err)

		repo := new(MockMealPlanRepository)
		repo.On("FindByOwner", mock.Anything, owner, 0, 100).
			Return([]*mealplan.MealPlan{saved}, 1, nil)

		svc := newService(new(MockChatModel), new(MockVectorIndex), repo)
		list, err := svc.ListMealPlans(context.Background(), owner, inbound.PaginationParams{})

		require.NoError(t, err)
		assert.Equal(t, 1, list.Count)
		require.Len(t, list.Data, 1)
		assert.Equal(t, "Week A", list.Data[0].Name)
	})
}
