package mealplan

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/saskialein/plan-to-plate/internal/domain/mealplan"
	"github.com/saskialein/plan-to-plate/internal/ports/outbound"
	"github.com/saskialein/plan-to-plate/pkg/errors"
)

// State names the phases of one generation attempt
type State string

const (
	StateBuilt     State = "built"
	StateInvoked   State = "invoked"
	StateParsedRaw State = "parsed_raw"
	StateValidated State = "validated"
	StateFailed    State = "failed"
)

// Generation is the tagged result of one generation attempt. Each attempt
// is one-shot; no retry happens inside the generator.
type Generation struct {
	State State
	Plan  *mealplan.WeekPlan
	Raw   string
	Err   error
}

// Generator invokes the language model and turns its raw output into a
// validated week plan
type Generator struct {
	model       outbound.ChatModel
	maxTokens   int
	strictCheck bool
	logger      *zap.Logger
}

// NewGenerator creates a plan generator. With strictCheck enabled the soup
// and leftover constraints are verified programmatically on top of the
// schema, instead of trusting prompt wording alone.
func NewGenerator(model outbound.ChatModel, maxTokens int, strictCheck bool, logger *zap.Logger) *Generator {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return &Generator{
		model:       model,
		maxTokens:   maxTokens,
		strictCheck: strictCheck,
		logger:      logger.Named("generator"),
	}
}

// Generate runs one attempt: invoke, parse, validate
func (g *Generator) Generate(ctx context.Context, prompt string, order []mealplan.Day) *Generation {
	gen := &Generation{State: StateBuilt}

	raw, err := g.model.Complete(ctx, prompt, g.maxTokens)
	if err != nil {
		return gen.fail(err)
	}
	gen.State = StateInvoked
	gen.Raw = raw

	payload, ok := extractJSONObject(raw)
	if !ok || !json.Valid([]byte(payload)) {
		g.logger.Warn("model output is not parseable JSON", zap.String("raw", truncate(raw, 500)))
		return gen.fail(errors.NewModelOutputMalformedError("response is not parseable JSON", nil).
			WithMetadata("raw", truncate(raw, 2000)))
	}

	plan, err := mealplan.ParseWeekPlan([]byte(payload))
	if err != nil {
		return gen.fail(errors.NewSchemaValidationError(err.Error()).
			WithMetadata("payload", truncate(payload, 2000)))
	}
	gen.State = StateParsedRaw

	if err := plan.ValidateOrder(order); err != nil {
		return gen.fail(errors.NewSchemaValidationError(err.Error()).
			WithMetadata("payload", truncate(payload, 2000)))
	}
	if err := plan.Validate(); err != nil {
		return gen.fail(errors.NewSchemaValidationError(err.Error()).
			WithMetadata("payload", truncate(payload, 2000)))
	}

	if g.strictCheck {
		if err := plan.CheckSoupSlots(); err != nil {
			return gen.fail(errors.NewSchemaValidationError(err.Error()))
		}
		if err := plan.CheckReusePairs(); err != nil {
			return gen.fail(errors.NewSchemaValidationError(err.Error()))
		}
	}

	gen.State = StateValidated
	gen.Plan = plan
	return gen
}

// fail moves the generation to its terminal failure state
func (g *Generation) fail(err error) *Generation {
	g.State = StateFailed
	g.Err = err
	return g
}

// extractJSONObject returns the text between the outermost braces of the
// response, tolerating commentary the model wraps around its JSON
func extractJSONObject(response string) (string, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return response[start : end+1], true
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
