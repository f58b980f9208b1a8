package domain_test

import (
	"testing"

	"nofat/fitness-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgramCatalog(t *testing.T) {
	programs := domain.Programs()
	require.NotEmpty(t, programs)

	p, ok := domain.ProgramByID(programs[0].ID)
	require.True(t, ok)
	assert.Equal(t, programs[0].Title, p.Title)

	_, ok = domain.ProgramByID(-1)
	assert.False(t, ok)
}

func TestProgramScheduleDaysSparse(t *testing.T) {
	p, ok := domain.ProgramByID(1)
	require.True(t, ok)

	sel := domain.ScheduleSelection{
		SelectedDays:  []string{"周六", "周二"},
		PreferredTime: "18:00",
	}
	days := p.ScheduleDays(sel)

	// Template mode is sparse: one entry per selected day, no rest padding.
	require.Len(t, days, 2)
	assert.Equal(t, "周二", days[0].Day)
	assert.Equal(t, "周六", days[1].Day)
	for _, d := range days {
		assert.Equal(t, p.Title, d.Name)
		assert.Equal(t, p.Duration, d.Duration)
		assert.Equal(t, "18:00", d.Time)
		assert.Len(t, d.Exercises, len(p.Details))
	}
}

func TestProgramScheduleDaysDefaults(t *testing.T) {
	p := domain.Program{
		Title:    "测试计划",
		Duration: "20分钟",
		Details: []domain.ProgramDetail{
			{Name: "热身", Duration: "5分钟"},
			{Name: "深蹲", Sets: "3组", Reps: "12次", Rest: "60秒"},
		},
	}
	days := p.ScheduleDays(domain.ScheduleSelection{SelectedDays: []string{"周一"}})
	require.Len(t, days, 1)
	require.Len(t, days[0].Exercises, 2)

	warmup := days[0].Exercises[0]
	assert.Equal(t, domain.DefaultSets, warmup.Sets)
	// A row without reps shows its duration instead.
	assert.Equal(t, "5分钟", warmup.Reps)
	assert.Equal(t, domain.DefaultRest, warmup.Rest)

	squat := days[0].Exercises[1]
	assert.Equal(t, "3组", squat.Sets)
	assert.Equal(t, "12次", squat.Reps)
	assert.Equal(t, "60秒", squat.Rest)
}
