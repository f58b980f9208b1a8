package domain_test

import (
	"testing"

	"nofat/fitness-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleSelectionNormalized(t *testing.T) {
	sel := domain.ScheduleSelection{
		SelectedDays: []string{"周五", "周一", "周五", "星期八", "周三"},
	}
	// Canonical week order, duplicates and unknown labels dropped.
	assert.Equal(t, []string{"周一", "周三", "周五"}, sel.Normalized())

	assert.Empty(t, domain.ScheduleSelection{}.Normalized())
}

func TestFrequencyLabel(t *testing.T) {
	sel := domain.ScheduleSelection{
		SelectedDays:  []string{"周三", "周一"},
		PreferredTime: "07:00",
	}
	assert.Equal(t, "每周 2 天：[周一、周三]，时间：07:00", sel.FrequencyLabel())
}

func TestExpandWeeklyScheduleAlwaysSevenDays(t *testing.T) {
	sel := domain.ScheduleSelection{
		SelectedDays:  []string{"周一", "周四"},
		PreferredTime: "19:30",
	}
	plan := domain.WorkoutPlan{
		Name:     "燃脂计划",
		Duration: "30分钟",
		Workouts: []domain.DayPlan{
			{Day: "周一", Name: "胸背日", Duration: "30分钟", Exercises: []domain.Exercise{
				{Name: "俯卧撑", Sets: "3组", Reps: "15次", Rest: "60秒"},
			}},
		},
	}

	week := domain.ExpandWeeklySchedule(plan, sel)
	require.Len(t, week, 7)
	for i, day := range week {
		assert.Equal(t, domain.WeekDays[i], day.Day)
	}

	// 周一 was present in the model output: kept, time stamped on.
	monday := week[0]
	assert.Equal(t, "胸背日", monday.Name)
	assert.Equal(t, "19:30", monday.Time)

	// 周四 was selected but missing: synthesized from the plan header and
	// the first workout's exercises.
	thursday := week[3]
	assert.Equal(t, "燃脂计划", thursday.Name)
	assert.Equal(t, "30分钟", thursday.Duration)
	assert.Equal(t, "19:30", thursday.Time)
	require.Len(t, thursday.Exercises, 1)
	assert.Equal(t, "俯卧撑", thursday.Exercises[0].Name)

	// Everything else is an explicit rest placeholder.
	for _, i := range []int{1, 2, 4, 5, 6} {
		assert.True(t, week[i].IsRestDay(), week[i].Day)
		assert.Equal(t, domain.RestDayDuration, week[i].Duration)
		assert.Empty(t, week[i].Exercises)
	}
}

func TestExpandWeeklyScheduleEmptyPlan(t *testing.T) {
	sel := domain.ScheduleSelection{SelectedDays: []string{"周日"}, PreferredTime: "08:00"}
	week := domain.ExpandWeeklySchedule(domain.WorkoutPlan{}, sel)

	require.Len(t, week, 7)
	sunday := week[6]
	assert.Equal(t, domain.TrainingDayName, sunday.Name)
	assert.NotNil(t, sunday.Exercises)
	assert.Empty(t, sunday.Exercises)
}

func TestRestDay(t *testing.T) {
	rest := domain.RestDay("周二")
	assert.Equal(t, "周二", rest.Day)
	assert.Equal(t, domain.RestDayName, rest.Name)
	assert.True(t, rest.IsRestDay())
	assert.NotNil(t, rest.Exercises)
}
