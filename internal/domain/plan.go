package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WeekDays is the canonical weekday order. All day iteration and the
// seven-entry invariant of AI plans are defined against this slice.
var WeekDays = []string{"周一", "周二", "周三", "周四", "周五", "周六", "周日"}

// Sentinel values for rest days.
const (
	RestDayName     = "休息"
	RestDayDuration = "0"
	TrainingDayName = "训练日"
)

// Defaults applied when a program template row omits a field.
const (
	DefaultSets = "1组"
	DefaultRest = "无"
)

// Exercise is one row of a workout. All fields are display strings, not
// computed quantities ("3组", "15次", "60秒").
type Exercise struct {
	Name string `bson:"name" json:"name"`
	Sets string `bson:"sets" json:"sets"`
	Reps string `bson:"reps" json:"reps"`
	Rest string `bson:"rest" json:"rest"`
}

// DayPlan is a single day of a weekly plan. Rest days carry the sentinel
// name/duration and an empty exercise list.
type DayPlan struct {
	Day       string     `bson:"day" json:"day"`
	Time      string     `bson:"time,omitempty" json:"time,omitempty"`
	Name      string     `bson:"name" json:"name"`
	Duration  string     `bson:"duration" json:"duration"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

// RestDay builds the explicit rest-day placeholder for the given weekday.
func RestDay(day string) DayPlan {
	return DayPlan{Day: day, Name: RestDayName, Duration: RestDayDuration, Exercises: []Exercise{}}
}

// IsRestDay reports whether a day carries the rest sentinel.
func (d DayPlan) IsRestDay() bool {
	return d.Name == RestDayName
}

// PlanGoal is the goal header of a plan: a short name plus a one-line focus.
type PlanGoal struct {
	Name  string `bson:"name" json:"name"`
	Focus string `bson:"focus" json:"focus"`
}

// WorkoutPlan is a complete weekly training plan, produced either by the AI
// pipeline or by the offline fallback generator.
type WorkoutPlan struct {
	Name      string    `bson:"name" json:"name"`
	Goal      PlanGoal  `bson:"goal" json:"goal"`
	Level     string    `bson:"level" json:"level"`
	Frequency string    `bson:"frequency" json:"frequency"`
	Duration  string    `bson:"duration" json:"duration"`
	Workouts  []DayPlan `bson:"workouts" json:"workouts"`
	Tips      []string  `bson:"tips" json:"tips"`
}

// StoredPlan is the persisted form of a plan. PlanData holds the full
// WorkoutPlan and is round-tripped verbatim; the flat fields exist for
// listing without unpacking the blob. The newest plan per user is the
// active one.
type StoredPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Goal      string             `bson:"goal" json:"goal"`
	Level     string             `bson:"level" json:"level"`
	Frequency string             `bson:"frequency" json:"frequency"`
	Duration  string             `bson:"duration" json:"duration"`
	PlanData  WorkoutPlan        `bson:"planData" json:"planData"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ScheduleSelection is the user's choice of training days and time of day.
type ScheduleSelection struct {
	SelectedDays  []string `json:"selectedDays"`
	PreferredTime string   `json:"preferredTime"` // "HH:MM"
}

// Normalized returns the selected days filtered to known weekday labels, in
// canonical week order and without duplicates, regardless of selection order.
func (s ScheduleSelection) Normalized() []string {
	selected := make(map[string]bool, len(s.SelectedDays))
	for _, d := range s.SelectedDays {
		selected[d] = true
	}
	days := make([]string, 0, len(selected))
	for _, d := range WeekDays {
		if selected[d] {
			days = append(days, d)
		}
	}
	return days
}

// FrequencyLabel renders the selection into the human-readable summary that
// travels with the plan request, e.g. "每周 2 天：[周一、周三]，时间：07:00".
// The weekday labels must appear verbatim: the offline fallback recovers the
// day selection from this string by substring matching.
func (s ScheduleSelection) FrequencyLabel() string {
	days := s.Normalized()
	return fmt.Sprintf("每周 %d 天：[%s]，时间：%s", len(days), strings.Join(days, "、"), s.PreferredTime)
}

// ExpandWeeklySchedule is the AI-mode schedule builder: it expands a plan
// returned by the model (which may cover fewer than seven days) into a dense
// seven-entry week in canonical order. Selected days take the model's entry
// for that weekday when present; when the model skipped a selected day, a
// generic day is synthesized from the plan header and the first workout's
// exercise list. Non-selected days become explicit rest-day placeholders.
func ExpandWeeklySchedule(plan WorkoutPlan, sel ScheduleSelection) []DayPlan {
	selected := make(map[string]bool)
	for _, d := range sel.Normalized() {
		selected[d] = true
	}

	week := make([]DayPlan, 0, len(WeekDays))
	for _, day := range WeekDays {
		if !selected[day] {
			week = append(week, RestDay(day))
			continue
		}
		if match, ok := findDay(plan.Workouts, day); ok {
			match.Day = day
			match.Time = sel.PreferredTime
			week = append(week, match)
			continue
		}
		// Model skipped this selected day: reuse the plan header and the
		// first workout's exercises as a generic substitute.
		generic := DayPlan{
			Day:      day,
			Time:     sel.PreferredTime,
			Name:     plan.Name,
			Duration: plan.Duration,
		}
		if generic.Name == "" {
			generic.Name = TrainingDayName
		}
		if len(plan.Workouts) > 0 {
			generic.Exercises = plan.Workouts[0].Exercises
		}
		if generic.Exercises == nil {
			generic.Exercises = []Exercise{}
		}
		week = append(week, generic)
	}
	return week
}

func findDay(workouts []DayPlan, day string) (DayPlan, bool) {
	for _, w := range workouts {
		if w.Day == day {
			return w, true
		}
	}
	return DayPlan{}, false
}
