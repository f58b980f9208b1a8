package ai

import "errors"

// --- Error Definitions ---
var (
	ErrProfileIncomplete = errors.New("age, gender, height and weight are required before generating a plan")
)

// PlanRequest carries everything the plan pipeline needs: the normalized
// profile, the user's goal selections, and the rendered frequency string.
// Frequency is the only place day-of-week information travels downstream,
// so it must contain the weekday labels verbatim.
type PlanRequest struct {
	Name               string
	Age                int
	Gender             string  // "male" or "female"
	Height             float64 // cm
	Weight             float64 // kg
	WaistCircumference float64 // cm, optional
	InjuryHistory      string
	Notes              string

	Goal       string // weight-loss | muscle-gain | endurance | flexibility
	Level      string // beginner | intermediate | advanced
	Duration   string // free-form label, e.g. "30分钟"
	Preference string // home | gym
	Frequency  string // e.g. "每周 2 天：[周一、周三]，时间：07:00"
}

// Validate checks the hard preconditions on the profile fields. Missing body
// metrics are a validation error, never a default-fill opportunity.
func (r PlanRequest) Validate() error {
	if r.Age <= 0 || r.Height <= 0 || r.Weight <= 0 || r.Gender == "" {
		return ErrProfileIncomplete
	}
	return nil
}

// Presentation labels for the request enums. Unknown codes fall through to
// the raw code so garbage in stays visible instead of disappearing.
var (
	goalLabels = map[string]string{
		"weight-loss": "减脂塑形",
		"muscle-gain": "增肌强壮",
		"endurance":   "提升耐力",
		"flexibility": "柔韧灵活",
	}
	levelLabels = map[string]string{
		"beginner":     "初级",
		"intermediate": "中级",
		"advanced":     "高级",
	}
	preferenceLabels = map[string]string{
		"home": "在家 (无器械或小器械)",
		"gym":  "健身房 (器械齐全)",
	}
)

// GoalLabel maps a goal code to its display label.
func GoalLabel(code string) string {
	if label, ok := goalLabels[code]; ok {
		return label
	}
	return code
}

// LevelLabel maps a level code to its display label.
func LevelLabel(code string) string {
	if label, ok := levelLabels[code]; ok {
		return label
	}
	return code
}

// PreferenceLabel maps a training-location code to its display label.
func PreferenceLabel(code string) string {
	if label, ok := preferenceLabels[code]; ok {
		return label
	}
	return code
}
