package ai_test

import (
	"strings"
	"testing"

	"nofat/fitness-server/internal/ai"
	"nofat/fitness-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackPlanDeterministic(t *testing.T) {
	req := planRequest()
	assert.Equal(t, ai.FallbackPlan(req), ai.FallbackPlan(req))
}

func TestFallbackPlanDayMatching(t *testing.T) {
	req := planRequest()
	req.Frequency = "每周 2 天：[周一、周三]，时间：07:00"

	plan := ai.FallbackPlan(req)
	require.Len(t, plan.Workouts, 7)

	for i, w := range plan.Workouts {
		assert.Equal(t, domain.WeekDays[i], w.Day)
		switch w.Day {
		case "周一", "周三":
			assert.Equal(t, domain.TrainingDayName, w.Name)
			assert.Equal(t, req.Duration, w.Duration)
			assert.NotEmpty(t, w.Exercises)
		default:
			assert.True(t, w.IsRestDay())
			assert.Equal(t, domain.RestDayDuration, w.Duration)
			assert.Empty(t, w.Exercises)
		}
	}
}

func TestFallbackPlanKnownGoal(t *testing.T) {
	req := planRequest()
	req.Goal = "muscle-gain"
	req.Level = "intermediate"

	plan := ai.FallbackPlan(req)

	assert.Equal(t, "增肌强壮计划"+ai.OfflineSuffix, plan.Name)
	assert.Equal(t, "增肌强壮", plan.Goal.Name)
	assert.Equal(t, "中级", plan.Level)
	assert.Equal(t, req.Frequency, plan.Frequency)

	require.Len(t, plan.Tips, 5)
	assert.True(t, strings.HasPrefix(plan.Tips[0], "⚠️"))
}

func TestFallbackPlanUnknownGoal(t *testing.T) {
	req := planRequest()
	req.Goal = "become-a-wizard"
	req.Level = "legendary"

	plan := ai.FallbackPlan(req)

	assert.Equal(t, "定制计划"+ai.OfflineSuffix, plan.Name)
	assert.Equal(t, "健身目标", plan.Goal.Name)
	assert.Equal(t, "定制", plan.Level)

	// Unknown goals borrow the weight-loss exercise table.
	var training domain.DayPlan
	for _, w := range plan.Workouts {
		if !w.IsRestDay() {
			training = w
			break
		}
	}
	require.NotEmpty(t, training.Exercises)
	assert.Contains(t, training.Exercises[1].Name, "波比跳")
}

func TestFallbackPlanStageRows(t *testing.T) {
	req := planRequest()
	req.Duration = "45分钟"

	plan := ai.FallbackPlan(req)
	var training domain.DayPlan
	for _, w := range plan.Workouts {
		if !w.IsRestDay() {
			training = w
			break
		}
	}

	// Three stages: warm-up, main set, cool-down.
	require.Len(t, training.Exercises, 3)
	for _, ex := range training.Exercises {
		assert.Equal(t, domain.DefaultSets, ex.Sets)
		assert.Equal(t, domain.DefaultRest, ex.Rest)
		assert.Contains(t, ex.Name, "：")
	}
	assert.Equal(t, "5-10分钟", training.Exercises[0].Reps)
	// The main set runs for the whole requested session.
	assert.Equal(t, "45分钟", training.Exercises[1].Reps)
}

func TestFallbackPlanEmptyFrequencyMeansAllRest(t *testing.T) {
	req := planRequest()
	req.Frequency = ""

	plan := ai.FallbackPlan(req)
	require.Len(t, plan.Workouts, 7)
	for _, w := range plan.Workouts {
		assert.True(t, w.IsRestDay())
	}
}
