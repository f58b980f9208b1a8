package ai

import (
	"strings"

	"nofat/fitness-server/internal/domain"
)

// OfflineSuffix marks fallback-authored plans so the user can tell them apart
// from AI-authored ones.
const OfflineSuffix = " (离线版)"

// fallbackStage is one block of the offline template: warm-up, main set or
// cool-down. An empty duration means "use the requested session duration".
type fallbackStage struct {
	name     string
	duration string
	moves    []string
}

// Static exercise tables keyed by goal code. Unrecognized goals use the
// weight-loss template.
var fallbackTemplates = map[string][]fallbackStage{
	"weight-loss": {
		{name: "热身训练", duration: "5-10分钟", moves: []string{"动态拉伸", "关节活动", "轻度有氧"}},
		{name: "主要训练", moves: []string{"开合跳", "高抬腿", "跳绳", "山地爬行", "波比跳"}},
		{name: "放松整理", duration: "5-10分钟", moves: []string{"静态拉伸", "深呼吸", "肌肉放松"}},
	},
	"muscle-gain": {
		{name: "热身训练", duration: "5-10分钟", moves: []string{"动态拉伸", "关节活动", "轻度有氧"}},
		{name: "主要训练", moves: []string{"卧推", "深蹲", "硬拉", "划船", "肩推"}},
		{name: "放松整理", duration: "5-10分钟", moves: []string{"静态拉伸", "深呼吸", "肌肉放松"}},
	},
	"endurance": {
		{name: "热身训练", duration: "5-10分钟", moves: []string{"动态拉伸", "关节活动", "轻度跑步"}},
		{name: "主要训练", moves: []string{"有氧跑步", "交替冲刺", "负重行走", "阶梯训练"}},
		{name: "放松整理", duration: "5-10分钟", moves: []string{"静态拉伸", "深呼吸", "肌肉放松"}},
	},
	"flexibility": {
		{name: "热身运动", duration: "5-10分钟", moves: []string{"关节转动", "轻度活动"}},
		{name: "主要训练", moves: []string{"前屈", "侧伸", "猫式伸展", "婴儿式", "蛇式"}},
		{name: "放松整理", duration: "5-10分钟", moves: []string{"深呼吸", "冥想"}},
	},
}

// Goal headers for the fallback plan, keyed like fallbackTemplates.
var fallbackGoals = map[string]domain.PlanGoal{
	"weight-loss": {Name: "减脂塑形", Focus: "有氧为主，力量为辅"},
	"muscle-gain": {Name: "增肌强壮", Focus: "力量训练为主"},
	"endurance":   {Name: "提升耐力", Focus: "有氧耐力训练"},
	"flexibility": {Name: "柔韧灵活", Focus: "瑜伽拉伸为主"},
}

// FallbackPlan deterministically synthesizes a minimally valid weekly plan
// with no network access. A weekday is a training day when its label appears
// as a substring of the request's frequency string; the upstream frequency
// format keeps the labels verbatim exactly for this check.
func FallbackPlan(req PlanRequest) domain.WorkoutPlan {
	stages, ok := fallbackTemplates[req.Goal]
	if !ok {
		stages = fallbackTemplates["weight-loss"]
	}

	goal, known := fallbackGoals[req.Goal]
	planName := goal.Name
	if !known {
		goal = defaultPlanGoal
		planName = "定制"
	}

	level, ok := levelLabels[req.Level]
	if !ok {
		level = "定制"
	}

	workouts := make([]domain.DayPlan, 0, len(domain.WeekDays))
	for _, day := range domain.WeekDays {
		if strings.Contains(req.Frequency, day) {
			workouts = append(workouts, domain.DayPlan{
				Day:       day,
				Name:      domain.TrainingDayName,
				Duration:  req.Duration,
				Exercises: stageExercises(stages, req.Duration),
			})
		} else {
			workouts = append(workouts, domain.RestDay(day))
		}
	}

	return domain.WorkoutPlan{
		Name:      planName + "计划" + OfflineSuffix,
		Goal:      goal,
		Level:     level,
		Frequency: req.Frequency,
		Duration:  req.Duration,
		Workouts:  workouts,
		Tips: []string{
			"⚠️ AI 连接超时，这是为您生成的默认计划模板",
			"训练前请充分热身，避免受伤",
			"注意动作标准，质量优于数量",
			"配合合理饮食，效果更佳",
			"训练后进行充分放松和恢复",
		},
	}
}

// stageExercises renders the three template stages as exercise rows. The
// movement list is folded into the row name; stage duration shows as reps.
func stageExercises(stages []fallbackStage, sessionDuration string) []domain.Exercise {
	out := make([]domain.Exercise, 0, len(stages))
	for _, st := range stages {
		d := st.duration
		if d == "" {
			d = sessionDuration
		}
		out = append(out, domain.Exercise{
			Name: st.name + "：" + strings.Join(st.moves, "、"),
			Sets: domain.DefaultSets,
			Reps: d,
			Rest: domain.DefaultRest,
		})
	}
	return out
}
