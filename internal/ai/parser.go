package ai

import (
	"encoding/json"
	"strings"

	"nofat/fitness-server/internal/domain"
)

// ParseStatus tags the outcome of extracting a plan from model output.
type ParseStatus int

const (
	// ParseOK: a JSON object was found and decoded.
	ParseOK ParseStatus = iota
	// ParseNoJSON: no {...} span in the text.
	ParseNoJSON
	// ParseMalformed: a span was found but did not decode.
	ParseMalformed
)

func (s ParseStatus) String() string {
	switch s {
	case ParseOK:
		return "ok"
	case ParseNoJSON:
		return "no-json"
	case ParseMalformed:
		return "malformed"
	}
	return "unknown"
}

// DefaultPlanName is the plan name applied when the model omits one. Callers
// treat a plan still carrying it as unnamed and free to rename.
const DefaultPlanName = "AI 定制计划"

var defaultPlanGoal = domain.PlanGoal{Name: "健身目标", Focus: "提升身体素质"}

// planPayload is the loosely-shaped object we expect the model to emit.
// Every field is optional; defaults are applied in buildPlan.
type planPayload struct {
	Name          string           `json:"name"`
	Goal          *domain.PlanGoal `json:"goal"`
	Level         string           `json:"level"`
	Frequency     string           `json:"frequency"`
	Duration      string           `json:"duration"`
	Workouts      []domain.DayPlan `json:"workouts"`
	NutritionTips []string         `json:"nutritionTips"`
	Tips          []string         `json:"tips"`
}

// ParsePlan turns raw model output into a WorkoutPlan. It never fails: any
// extraction or decode problem falls back to the deterministic offline plan
// for the same request, and the returned status says which path was taken.
//
// A syntactically valid but incomplete response (fewer than 7 days) is
// accepted as-is; only a total parse failure triggers the fallback. Dense
// 7-day expansion happens later at the schedule-builder stage.
func ParsePlan(content string, req PlanRequest) (domain.WorkoutPlan, ParseStatus) {
	candidate, status := extractJSON(content)
	if status != ParseOK {
		return FallbackPlan(req), status
	}

	var payload planPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return FallbackPlan(req), ParseMalformed
	}
	return buildPlan(req, payload), ParseOK
}

// extractJSON strips Markdown fence markers anywhere in the text, then takes
// the span from the first '{' to the last '}' as the JSON candidate.
func extractJSON(content string) (string, ParseStatus) {
	cleaned := strings.ReplaceAll(content, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end < start {
		return "", ParseNoJSON
	}
	return cleaned[start : end+1], ParseOK
}

// buildPlan maps a decoded payload onto the canonical plan shape, making the
// defaulting contract explicit in one place:
//   - name/goal default when absent
//   - level prefers the presentation label of the requested level code over
//     whatever the model echoed
//   - frequency/duration always come from the request; the model's echo of
//     them is untrusted
//   - tips is nutritionTips followed by tips, missing arrays treated as empty
func buildPlan(req PlanRequest, payload planPayload) domain.WorkoutPlan {
	plan := domain.WorkoutPlan{
		Name:      payload.Name,
		Goal:      defaultPlanGoal,
		Frequency: req.Frequency,
		Duration:  req.Duration,
		Workouts:  payload.Workouts,
	}
	if plan.Name == "" {
		plan.Name = DefaultPlanName
	}
	if payload.Goal != nil {
		plan.Goal = *payload.Goal
	}

	if label, ok := levelLabels[req.Level]; ok {
		plan.Level = label
	} else if payload.Level != "" {
		plan.Level = payload.Level
	} else {
		plan.Level = "定制"
	}

	if plan.Workouts == nil {
		plan.Workouts = []domain.DayPlan{}
	}
	plan.Tips = make([]string, 0, len(payload.NutritionTips)+len(payload.Tips))
	plan.Tips = append(plan.Tips, payload.NutritionTips...)
	plan.Tips = append(plan.Tips, payload.Tips...)
	return plan
}
