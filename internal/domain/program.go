package domain

// ProgramDetail is one row of a pre-built program template. Sets/Reps/Rest
// are optional; warm-up and cool-down rows often carry only a duration.
type ProgramDetail struct {
	Name        string `json:"name"`
	Sets        string `json:"sets,omitempty"`
	Reps        string `json:"reps,omitempty"`
	Rest        string `json:"rest,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Program is a pre-built workout program the user can schedule onto selected
// weekdays without going through the AI pipeline.
type Program struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Category string          `json:"category"`
	Level    string          `json:"level"`
	Duration string          `json:"duration"`
	Calories string          `json:"calories"`
	Details  []ProgramDetail `json:"details"`
}

// ScheduleDays is the template-mode schedule builder. Unlike AI mode it is
// deliberately sparse: the output has exactly one entry per selected day and
// non-selected days are omitted rather than padded with rest placeholders.
// Merging the sparse result into an existing dense plan is the caller's job.
// Missing sets/rest fields default to "1组" / "无"; a row without reps uses
// its duration instead.
func (p Program) ScheduleDays(sel ScheduleSelection) []DayPlan {
	exercises := make([]Exercise, 0, len(p.Details))
	for _, d := range p.Details {
		ex := Exercise{Name: d.Name, Sets: d.Sets, Reps: d.Reps, Rest: d.Rest}
		if ex.Sets == "" {
			ex.Sets = DefaultSets
		}
		if ex.Reps == "" {
			ex.Reps = d.Duration
		}
		if ex.Rest == "" {
			ex.Rest = DefaultRest
		}
		exercises = append(exercises, ex)
	}

	days := sel.Normalized()
	out := make([]DayPlan, 0, len(days))
	for _, day := range days {
		out = append(out, DayPlan{
			Day:       day,
			Time:      sel.PreferredTime,
			Name:      p.Title,
			Duration:  p.Duration,
			Exercises: exercises,
		})
	}
	return out
}

// Programs returns the built-in program catalog.
func Programs() []Program {
	return programCatalog
}

// ProgramByID looks up a catalog program.
func ProgramByID(id int) (Program, bool) {
	for _, p := range programCatalog {
		if p.ID == id {
			return p, true
		}
	}
	return Program{}, false
}

var programCatalog = []Program{
	{
		ID:       1,
		Title:    "全身燃脂训练",
		Category: "cardio",
		Level:    "中级",
		Duration: "30分钟",
		Calories: "350 kcal",
		Details: []ProgramDetail{
			{Name: "热身", Duration: "5分钟", Description: "动态拉伸，如高抬腿、开合跳"},
			{Name: "波比跳", Sets: "3组", Reps: "15次", Rest: "60秒"},
			{Name: "跳绳", Sets: "5组", Reps: "1分钟", Rest: "30秒"},
			{Name: "深蹲跳", Sets: "3组", Reps: "20次", Rest: "60秒"},
			{Name: "登山跑", Sets: "3组", Reps: "45秒", Rest: "45秒"},
			{Name: "平板支撑", Sets: "3组", Reps: "1分钟", Rest: "30秒"},
			{Name: "放松拉伸", Duration: "5分钟", Description: "静态拉伸主要肌群"},
		},
	},
	{
		ID:       2,
		Title:    "上肢力量训练",
		Category: "strength",
		Level:    "初级",
		Duration: "40分钟",
		Calories: "280 kcal",
		Details: []ProgramDetail{
			{Name: "热身", Duration: "5分钟", Description: "肩部环绕、手臂摆动"},
			{Name: "俯卧撑", Sets: "4组", Reps: "12次", Rest: "60秒"},
			{Name: "哑铃划船", Sets: "4组", Reps: "10次", Rest: "90秒"},
			{Name: "肩上推举", Sets: "3组", Reps: "12次", Rest: "60秒"},
			{Name: "弯举", Sets: "3组", Reps: "15次", Rest: "45秒"},
			{Name: "放松拉伸", Duration: "5分钟", Description: "胸肩背静态拉伸"},
		},
	},
	{
		ID:       3,
		Title:    "晨间瑜伽流",
		Category: "flexibility",
		Level:    "初级",
		Duration: "20分钟",
		Calories: "120 kcal",
		Details: []ProgramDetail{
			{Name: "呼吸调整", Duration: "3分钟", Description: "腹式呼吸，放空思绪"},
			{Name: "猫式伸展", Sets: "2组", Reps: "10次", Rest: "无"},
			{Name: "下犬式", Sets: "3组", Reps: "30秒", Rest: "无"},
			{Name: "战士一式", Sets: "2组", Reps: "左右各30秒", Rest: "无"},
			{Name: "婴儿式放松", Duration: "3分钟", Description: "收尾放松"},
		},
	},
}
