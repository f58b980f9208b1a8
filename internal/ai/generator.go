package ai

import (
	"context"
	"log"

	"nofat/fitness-server/internal/domain"
)

// Generator runs the plan pipeline: validate, compose prompt, call the
// model, parse-or-fallback. Past validation it always produces a plan; the
// user gets a degraded offline plan rather than a raw network or parse error.
type Generator struct {
	client ChatClient
}

// NewGenerator wires a Generator onto a chat client.
func NewGenerator(client ChatClient) *Generator {
	return &Generator{client: client}
}

// GeneratePlan produces a WorkoutPlan for the request. The only error it can
// return is a pre-flight validation failure; transport and parse failures
// are silently downgraded to the offline fallback. No retries: one attempt,
// fail fast into the fallback.
func (g *Generator) GeneratePlan(ctx context.Context, req PlanRequest) (domain.WorkoutPlan, error) {
	if err := req.Validate(); err != nil {
		return domain.WorkoutPlan{}, err
	}

	prompt := ComposePlanPrompt(req)
	content, err := g.client.ChatCompletion(ctx, []Message{
		{Role: RoleSystem, Content: PlanSystemPrompt},
		{Role: RoleUser, Content: prompt},
	})
	if err != nil {
		log.Printf("plan generation falling back to offline template: %v", err)
		return FallbackPlan(req), nil
	}

	plan, status := ParsePlan(content, req)
	if status != ParseOK {
		log.Printf("plan response unusable (%s), served offline template", status)
	}
	return plan, nil
}
