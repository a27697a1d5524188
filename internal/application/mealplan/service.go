package mealplan

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/ports/inbound"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	apperrors "github.com/saskialein/plan-to-plate/pkg/errors"
)

// Service implements the meal-plan use cases: one-shot plan generation and
// saved plan management
type Service struct {
	retriever  *Retriever
	prompts    *PromptBuilder
	generator  *Generator
	reconciler *Reconciler
	planRepo   outbound.MealPlanRepository
	logger     *zap.Logger
}

// NewService creates the meal-plan service
func NewService(
	retriever *Retriever,
	prompts *PromptBuilder,
	generator *Generator,
	reconciler *Reconciler,
	planRepo outbound.MealPlanRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		retriever:  retriever,
		prompts:    prompts,
		generator:  generator,
		reconciler: reconciler,
		planRepo:   planRepo,
		logger:     logger.Named("mealplan-service"),
	}
}

// GenerateMealPlan runs one request through the full pipeline:
// retrieve, build prompt, generate, reconcile
func (s *Service) GenerateMealPlan(ctx context.Context, cmd inbound.GenerateMealPlanCommand) (*mealplan.WeekPlan, error) {
	req, err := mealplan.NewPlanRequest(cmd.Diets, cmd.Vegetables, cmd.NumberOfPeople, cmd.StartDay)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	started := time.Now()
	s.logger.Info("generating meal plan",
		zap.String("start_day", string(req.StartDay)),
		zap.Strings("vegetables", req.Vegetables),
		zap.Int("people", req.NumberOfPeople),
	)

	candidates, err := s.retriever.Retrieve(ctx, req)
	if err != nil {
		return nil, err
	}

	prompt := s.prompts.Build(req, candidates)

	gen := s.generator.Generate(ctx, prompt, req.DayOrder())
	if gen.State != StateValidated {
		s.logger.Warn("plan generation failed",
			zap.String("state", string(gen.State)),
			zap.Error(gen.Err),
		)
		return nil, gen.Err
	}

	plan := s.reconciler.Reconcile(gen.Plan, candidates)

	s.logger.Info("meal plan generated",
		zap.String("start_day", string(req.StartDay)),
		zap.Int("candidates", len(candidates)),
		zap.Duration("took", time.Since(started)),
	)
	return plan, nil
}

// SaveMealPlan persists a generated plan under a display name
func (s *Service) SaveMealPlan(ctx context.Context, cmd inbound.SaveMealPlanCommand) (*inbound.MealPlanDTO, error) {
	plan, err := mealplan.NewMealPlan(cmd.Name, cmd.Plan, cmd.OwnerID)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save meal plan: %w", err)
	}

	s.logger.Info("meal plan saved",
		zap.String("plan_id", plan.ID().String()),
		zap.String("owner_id", plan.OwnerID().String()),
	)

	dto := s.entityToDTO(plan)
	return &dto, nil
}

// ListMealPlans returns the owner's saved plans
func (s *Service) ListMealPlans(ctx context.Context, ownerID uuid.UUID, params inbound.PaginationParams) (*inbound.MealPlanList, error) {
	if params.Limit <= 0 {
		params.Limit = 100
	}

	plans, count, err := s.planRepo.FindByOwner(ctx, ownerID, params.Skip, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}

	list := &inbound.MealPlanList{
		Data:  make([]inbound.MealPlanDTO, 0, len(plans)),
		Count: count,
	}
	for _, plan := range plans {
		list.Data = append(list.Data, s.entityToDTO(plan))
	}
	return list, nil
}

// DeleteMealPlan removes a saved plan owned by the caller
func (s *Service) DeleteMealPlan(ctx context.Context, planID, ownerID uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return apperrors.NewMealPlanNotFoundError(planID.String())
	}

	if !plan.IsOwnedBy(ownerID) {
		return apperrors.NewForbiddenError("Not enough permissions")
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		return fmt.Errorf("failed to delete meal plan: %w", err)
	}

	s.logger.Info("meal plan deleted", zap.String("plan_id", planID.String()))
	return nil
}

// entityToDTO converts a saved plan entity to its DTO
func (s *Service) entityToDTO(plan *mealplan.MealPlan) inbound.MealPlanDTO {
	return inbound.MealPlanDTO{
		ID:        plan.ID(),
		Name:      plan.Name(),
		Plan:      plan.Plan(),
		OwnerID:   plan.OwnerID(),
		CreatedAt: plan.CreatedAt().Format(time.RFC3339),
	}
}
