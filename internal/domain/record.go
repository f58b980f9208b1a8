package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout is the day key used by records and daily stats ("2006-01-02").
const DateLayout = "2006-01-02"

// WorkoutRecord is one logged training session.
type WorkoutRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Date      string             `bson:"date" json:"date"` // DateLayout
	Type      string             `bson:"type" json:"type"`
	Title     string             `bson:"title" json:"title"`
	Duration  int                `bson:"duration" json:"duration"` // minutes
	Calories  int                `bson:"calories" json:"calories"`
	Exercises []string           `bson:"exercises,omitempty" json:"exercises,omitempty"`
	Completed bool               `bson:"completed" json:"completed"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DailyStats is the per-day activity rollup. Counters accumulate as records
// are logged for that date.
type DailyStats struct {
	Date          string `bson:"date" json:"date"`
	Calories      int    `bson:"calories" json:"calories"`
	Steps         int    `bson:"steps" json:"steps"`
	ActiveMinutes int    `bson:"activeMinutes" json:"activeMinutes"`
	WorkoutCount  int    `bson:"workoutCount" json:"workoutCount"`
}

// WeekSummary aggregates the last seven days of stats.
type WeekSummary struct {
	TotalWorkouts     int `json:"totalWorkouts"`
	TotalMinutes      int `json:"totalMinutes"`
	TotalCalories     int `json:"totalCalories"`
	AvgCaloriesPerDay int `json:"avgCaloriesPerDay"`
}

// SummarizeWeek reduces a week of daily stats into totals. The calorie
// average is always over seven days, not over the days with activity.
func SummarizeWeek(stats []DailyStats) WeekSummary {
	var s WeekSummary
	for _, d := range stats {
		s.TotalWorkouts += d.WorkoutCount
		s.TotalMinutes += d.ActiveMinutes
		s.TotalCalories += d.Calories
	}
	s.AvgCaloriesPerDay = (s.TotalCalories + 3) / 7 // round to nearest
	return s
}

// WeekDates returns the seven DateLayout keys ending at (and including) the
// given day, oldest first.
func WeekDates(today time.Time) []string {
	dates := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		dates = append(dates, today.AddDate(0, 0, -i).Format(DateLayout))
	}
	return dates
}

// Achievement is one badge from the static catalog, combined with the user's
// unlock state.
type Achievement struct {
	Code         string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Icon         string `json:"icon"`
	Unlocked     bool   `json:"unlocked"`
	UnlockedDate string `json:"unlockedDate,omitempty"`
}

// AchievementUnlock is the persisted unlock marker for one user and badge.
type AchievementUnlock struct {
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Code         string             `bson:"code" json:"code"`
	UnlockedDate string             `bson:"unlockedDate" json:"unlockedDate"`
}

// AchievementCatalog returns the static badge definitions.
func AchievementCatalog() []Achievement {
	return []Achievement{
		{Code: "a1", Name: "初出茅庐", Description: "完成第一次训练", Icon: "🌱"},
		{Code: "a2", Name: "持之以恒", Description: "连续训练 7 天", Icon: "🔥"},
		{Code: "a3", Name: "燃脂达人", Description: "累计消耗 10000 千卡", Icon: "⚡"},
		{Code: "a4", Name: "早起鸟儿", Description: "完成 10 次晨间训练", Icon: "🌅"},
		{Code: "a5", Name: "力量之王", Description: "完成 50 次力量训练", Icon: "💪"},
		{Code: "a6", Name: "有氧健将", Description: "完成 50 次有氧训练", Icon: "🏃"},
		{Code: "a7", Name: "百炼成钢", Description: "累计完成 100 次训练", Icon: "🏆"},
		{Code: "a8", Name: "月度冠军", Description: "单月完成 20 次训练", Icon: "👑"},
	}
}
