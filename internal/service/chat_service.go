package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"nofat/fitness-server/internal/ai"
	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"
)

// ErrEmptyMessage is returned when a chat message has no content.
var ErrEmptyMessage = errors.New("message content cannot be empty")

// chatSystemPrompt is the default assistant persona. Callers may override it
// per request (the plan pipeline does, to force raw JSON output).
const chatSystemPrompt = `你叫 "Nofat"，是用户的健身AI朋友。
【回复规则】：
1. 使用 Emoji (🎯, 💪) 美化。
2. 简明扼要，不要啰嗦。
3. 🚫 严禁使用 Markdown 的星号 (*, **, ***) 进行加粗或列表。
4. 🚫 不要在回答中包含任何 "*" 符号。
5. 如果需要列点，请使用 Emoji (如 1️⃣, 2️⃣ ) 代替。
6. 如果需要强调，请使用 Emoji (如 💡, ⚠️) 或直接通过语气表达。
7. 语气轻松，像朋友一样。`

// adviceFallback is served when the model is unreachable; the home-page card
// always shows something.
const adviceFallback = "坚持就是胜利！保持训练节奏，你正在变得更强！💪"

// thinkingPlaceholder stands in for an empty model reply.
const thinkingPlaceholder = "思考中..."

// SendMessageInput is one incoming chat message. Save=false runs the exchange
// without touching history; System overrides the default persona.
type SendMessageInput struct {
	Content  string
	ImageURL string
	Save     bool
	System   string
}

// ChatService runs the AI chat assistant and its history.
type ChatService interface {
	SendMessage(ctx context.Context, userID string, input SendMessageInput) (*domain.ChatMessage, error)
	History(ctx context.Context, userID string) ([]domain.ChatMessage, error)
	ClearHistory(ctx context.Context, userID string) error
	WeeklyAdvice(ctx context.Context, userID string) string
}

type chatService struct {
	messageRepo repository.MessageRepository
	statsRepo   repository.StatsRepository
	profileRepo repository.ProfileRepository
	client      ai.ChatClient
}

// NewChatService creates a new instance of chatService.
func NewChatService(messageRepo repository.MessageRepository, statsRepo repository.StatsRepository, profileRepo repository.ProfileRepository, client ai.ChatClient) ChatService {
	return &chatService{
		messageRepo: messageRepo,
		statsRepo:   statsRepo,
		profileRepo: profileRepo,
		client:      client,
	}
}

// SendMessage relays one user message to the model and returns the assistant
// reply. With Save set, both sides of the exchange are persisted; without it,
// nothing touches history and the reply is ephemeral.
func (s *chatService) SendMessage(ctx context.Context, userID string, input SendMessageInput) (*domain.ChatMessage, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	if input.Content == "" && input.ImageURL == "" {
		return nil, ErrEmptyMessage
	}

	if input.Save {
		userMsg := &domain.ChatMessage{
			UserID:   oid,
			Role:     domain.MessageRoleUser,
			Content:  input.Content,
			ImageURL: input.ImageURL,
		}
		if _, err := s.messageRepo.Create(ctx, userMsg); err != nil {
			return nil, err
		}
	}

	systemPrompt := input.System
	if systemPrompt == "" {
		systemPrompt = chatSystemPrompt
	}

	// The chat client speaks plain text; an attached image travels as a
	// reference line the model can read.
	userContent := input.Content
	if input.ImageURL != "" {
		if userContent == "" {
			userContent = "请分析这张图片。"
		}
		userContent += "\n[图片] " + input.ImageURL
	}

	raw, err := s.client.ChatCompletion(ctx, []ai.Message{
		{Role: ai.RoleSystem, Content: systemPrompt},
		{Role: ai.RoleUser, Content: userContent},
	})
	if err != nil {
		if errors.Is(err, ai.ErrEmptyCompletion) {
			raw = thinkingPlaceholder
		} else {
			return nil, err
		}
	}

	reply := &domain.ChatMessage{
		UserID:  oid,
		Role:    domain.MessageRoleAssistant,
		Content: scrubReply(raw),
	}
	if input.Save {
		if _, err := s.messageRepo.Create(ctx, reply); err != nil {
			return nil, err
		}
	} else {
		reply.CreatedAt = time.Now().UTC()
	}
	return reply, nil
}

// History returns the user's chat history, oldest first.
func (s *chatService) History(ctx context.Context, userID string) ([]domain.ChatMessage, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.GetByUserID(ctx, oid)
}

// ClearHistory wipes the user's chat history.
func (s *chatService) ClearHistory(ctx context.Context, userID string) error {
	oid, err := parseObjectID(userID)
	if err != nil {
		return err
	}
	return s.messageRepo.DeleteByUserID(ctx, oid)
}

// WeeklyAdvice produces the one-line encouragement for the home-page stats
// card. It never fails: any problem falls back to a fixed line.
func (s *chatService) WeeklyAdvice(ctx context.Context, userID string) string {
	oid, err := parseObjectID(userID)
	if err != nil {
		return adviceFallback
	}

	dates := domain.WeekDates(time.Now())
	byDate, err := s.statsRepo.GetByDates(ctx, oid, dates)
	if err != nil {
		return adviceFallback
	}
	week := make([]domain.DailyStats, 0, len(byDate))
	for _, d := range byDate {
		week = append(week, d)
	}
	summary := domain.SummarizeWeek(week)

	var weight float64
	goal := "健康"
	if profile, err := s.profileRepo.GetByUserID(ctx, oid); err == nil {
		weight = profile.Weight
		if profile.Goal != "" {
			goal = ai.GoalLabel(profile.Goal)
		}
	}

	prompt := fmt.Sprintf(
		"基于用户数据：本周训练%d次，时长%d分钟，消耗%dkcal。体重%.0fkg，目标%s。请用一句话给出鼓励建议（带Emoji）。",
		summary.TotalWorkouts, summary.TotalMinutes, summary.TotalCalories, weight, goal,
	)

	advice, err := s.client.ChatCompletion(ctx, []ai.Message{{Role: ai.RoleUser, Content: prompt}})
	if err != nil {
		log.Printf("weekly advice falling back to fixed line: %v", err)
		return adviceFallback
	}
	return strings.TrimSpace(scrubReply(advice))
}

var headingMarkers = regexp.MustCompile(`(?m)^#+\s`)

// scrubReply strips the Markdown the persona rules forbid but models still
// emit: bold/list stars, heading markers, backticks.
func scrubReply(content string) string {
	cleaned := strings.ReplaceAll(content, "**", "")
	cleaned = strings.ReplaceAll(cleaned, "*", "")
	cleaned = headingMarkers.ReplaceAllString(cleaned, "")
	return strings.ReplaceAll(cleaned, "`", "")
}
