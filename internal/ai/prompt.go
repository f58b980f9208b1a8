package ai

import (
	"fmt"
	"strconv"
	"strings"
)

// PlanSystemPrompt pins the model to JSON-only output. The parser only has a
// best-effort recovery strategy, so the instruction matters.
const PlanSystemPrompt = "你是一个只输出 JSON 的 API。不要输出任何解释性文字。"

// BMI renders weight/(height in m)^2 with one decimal place.
func BMI(heightCM, weightKG float64) string {
	m := heightCM / 100
	return strconv.FormatFloat(weightKG/(m*m), 'f', 1, 64)
}

// ComposePlanPrompt renders a validated PlanRequest into the instruction
// string sent to the model. The frequency string is echoed verbatim and the
// output schema is spelled out literally so the model has something concrete
// to imitate.
func ComposePlanPrompt(req PlanRequest) string {
	gender := "男性"
	if req.Gender == "female" {
		gender = "女性"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "请为一名%s客户生成私人定制训练计划。\n", gender)
	b.WriteString("【客户档案】\n")
	fmt.Fprintf(&b, "- 年龄：%d岁\n", req.Age)
	fmt.Fprintf(&b, "- 身体数据：%.0fcm / %.0fkg (BMI: %s)", req.Height, req.Weight, BMI(req.Height, req.Weight))
	if req.WaistCircumference > 0 {
		fmt.Fprintf(&b, "\n- 腰围：%.0fcm", req.WaistCircumference)
	}
	if req.InjuryHistory != "" {
		fmt.Fprintf(&b, "\n- ⚠️ 伤病史：%s", req.InjuryHistory)
	}
	if req.Notes != "" {
		fmt.Fprintf(&b, "\n- 📝 特殊说明：%s", req.Notes)
	}

	b.WriteString("\n\n【训练目标与限制】\n")
	fmt.Fprintf(&b, "- 核心目标：%s\n", GoalLabel(req.Goal))
	fmt.Fprintf(&b, "- 训练水平：%s\n", LevelLabel(req.Level))
	fmt.Fprintf(&b, "- 训练场地：%s\n", PreferenceLabel(req.Preference))
	fmt.Fprintf(&b, "- 单次时长：%s\n", req.Duration)
	fmt.Fprintf(&b, "- 📅 时间安排：%s\n", req.Frequency)
	b.WriteString("  (请严格按照上方指定的时间安排生成日程。例如用户选了“周一、周三”，则只有这两天安排训练，其余日子必须标记为“休息”)\n")

	b.WriteString("\n【输出要求】\n")
	b.WriteString("请生成一个纯 JSON 对象，不要包含 Markdown 格式（如 ```json）。结构如下：\n")
	fmt.Fprintf(&b, `{
  "name": "给计划起个响亮的名字",
  "goal": { "name": "目标名称", "focus": "一句话重点" },
  "level": "%s",
  "frequency": "%s",
  "duration": "%s",
  "workouts": [
    {
      "day": "周一 (请对应实际安排)",
      "name": "训练日标题 (休息日填'休息')",
      "duration": "%s (休息日填'0')",
      "exercises": [
        {"name": "动作名称", "sets": "组数", "reps": "次数/时间", "rest": "休息时间"}
      ]
    }
  ],
  "nutritionTips": ["3条简短的饮食建议 (带Emoji)"],
  "tips": ["3条简短的恢复建议 (带Emoji)"]
}`, LevelLabel(req.Level), req.Frequency, req.Duration, req.Duration)
	b.WriteString("\nworkouts 必须覆盖从周一到周日完整的7天，休息日 exercises 为空数组 []。")

	return b.String()
}
