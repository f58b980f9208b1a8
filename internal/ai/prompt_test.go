package ai_test

import (
	"strings"
	"testing"

	"nofat/fitness-server/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	assert.Equal(t, "22.9", ai.BMI(175, 70))
	assert.Equal(t, "24.2", ai.BMI(180, 78.5))
}

func TestComposePlanPrompt(t *testing.T) {
	req := ai.PlanRequest{
		Name:      "小王",
		Age:       28,
		Gender:    "female",
		Height:    165,
		Weight:    55,
		Goal:      "weight-loss",
		Level:     "beginner",
		Duration:  "30分钟",
		Frequency: "每周 2 天：[周一、周三]，时间：07:00",
	}

	prompt := ai.ComposePlanPrompt(req)

	assert.Contains(t, prompt, "女性")
	assert.Contains(t, prompt, "28岁")
	assert.Contains(t, prompt, "BMI: 20.2")
	// The frequency string must be echoed verbatim; the fallback recovers
	// the day selection from it by substring matching.
	assert.Contains(t, prompt, req.Frequency)
	assert.Contains(t, prompt, "减脂塑形")
	assert.Contains(t, prompt, "初级")

	// The literal schema keys the parser consumes.
	for _, key := range []string{`"name"`, `"goal"`, `"workouts"`, `"nutritionTips"`, `"tips"`} {
		assert.Contains(t, prompt, key)
	}
	assert.Contains(t, prompt, "7天")
}

func TestComposePlanPromptOptionalSections(t *testing.T) {
	req := ai.PlanRequest{
		Age: 30, Gender: "male", Height: 180, Weight: 80,
		Goal: "muscle-gain", Level: "advanced", Duration: "45分钟",
	}

	plain := ai.ComposePlanPrompt(req)
	assert.NotContains(t, plain, "伤病史")
	assert.NotContains(t, plain, "腰围")

	req.WaistCircumference = 85
	req.InjuryHistory = "腰椎间盘突出"
	req.Notes = "只能在家训练"
	full := ai.ComposePlanPrompt(req)
	require.Contains(t, full, "腰围：85cm")
	require.Contains(t, full, "腰椎间盘突出")
	require.Contains(t, full, "只能在家训练")
	assert.Greater(t, len(full), len(plain))
}

func TestGoalAndLevelLabelsFallThrough(t *testing.T) {
	assert.Equal(t, "减脂塑形", ai.GoalLabel("weight-loss"))
	assert.Equal(t, "高级", ai.LevelLabel("advanced"))
	// Unknown codes stay visible instead of disappearing.
	assert.Equal(t, "mystery", ai.GoalLabel("mystery"))
	assert.Equal(t, "?", ai.LevelLabel("?"))
}

func TestPlanSystemPromptPinsJSON(t *testing.T) {
	assert.True(t, strings.Contains(ai.PlanSystemPrompt, "JSON"))
}
