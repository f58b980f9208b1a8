package service_test

import (
	"context"
	"errors"
	"testing"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newChatService(client *stubChatClient) (service.ChatService, *fakeMessageRepo, primitive.ObjectID) {
	uid := primitive.NewObjectID()
	msgRepo := &fakeMessageRepo{}
	svc := service.NewChatService(msgRepo, newFakeStatsRepo(), newFakeProfileRepo(), client)
	return svc, msgRepo, uid
}

func TestSendMessagePersistsBothSides(t *testing.T) {
	client := &stubChatClient{content: "加油！💪"}
	svc, msgRepo, uid := newChatService(client)

	reply, err := svc.SendMessage(context.Background(), uid.Hex(), service.SendMessageInput{
		Content: "今天练什么？",
		Save:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MessageRoleAssistant, reply.Role)
	assert.Equal(t, "加油！💪", reply.Content)

	history, err := svc.History(context.Background(), uid.Hex())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.MessageRoleUser, history[0].Role)
	assert.Equal(t, "今天练什么？", history[0].Content)
	assert.Equal(t, domain.MessageRoleAssistant, history[1].Role)

	require.Len(t, msgRepo.messages, 2)
}

func TestSendMessageNoSaveLeavesHistoryUntouched(t *testing.T) {
	client := &stubChatClient{content: "临时回复"}
	svc, msgRepo, uid := newChatService(client)

	reply, err := svc.SendMessage(context.Background(), uid.Hex(), service.SendMessageInput{
		Content: "生成计划",
		Save:    false,
		System:  "你是一个只输出 JSON 的 API。",
	})
	require.NoError(t, err)
	assert.Equal(t, "临时回复", reply.Content)
	assert.False(t, reply.CreatedAt.IsZero())
	assert.Empty(t, msgRepo.messages)

	// The system override displaces the default persona.
	require.Len(t, client.seen, 1)
	assert.Equal(t, "你是一个只输出 JSON 的 API。", client.seen[0][0].Content)
}

func TestSendMessageScrubsMarkdown(t *testing.T) {
	client := &stubChatClient{content: "**重点**：*坚持*\n# 今日安排\n`深蹲` 3组"}
	svc, _, uid := newChatService(client)

	reply, err := svc.SendMessage(context.Background(), uid.Hex(), service.SendMessageInput{
		Content: "给我建议", Save: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "重点：坚持\n今日安排\n深蹲 3组", reply.Content)
}

func TestSendMessageEmptyRejected(t *testing.T) {
	svc, _, uid := newChatService(&stubChatClient{content: "x"})

	_, err := svc.SendMessage(context.Background(), uid.Hex(), service.SendMessageInput{Save: true})
	assert.ErrorIs(t, err, service.ErrEmptyMessage)
}

func TestSendMessageImageTravelsAsReference(t *testing.T) {
	client := &stubChatClient{content: "这是一份沙拉🥗"}
	svc, _, uid := newChatService(client)

	_, err := svc.SendMessage(context.Background(), uid.Hex(), service.SendMessageInput{
		ImageURL: "https://cdn/food.jpg",
		Save:     false,
	})
	require.NoError(t, err)

	require.Len(t, client.seen, 1)
	userTurn := client.seen[0][1]
	assert.Contains(t, userTurn.Content, "请分析这张图片。")
	assert.Contains(t, userTurn.Content, "https://cdn/food.jpg")
}

func TestClearHistory(t *testing.T) {
	client := &stubChatClient{content: "ok"}
	svc, msgRepo, uid := newChatService(client)

	_, err := svc.SendMessage(context.Background(), uid.Hex(), service.SendMessageInput{
		Content: "hi", Save: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, msgRepo.messages)

	require.NoError(t, svc.ClearHistory(context.Background(), uid.Hex()))
	history, err := svc.History(context.Background(), uid.Hex())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestWeeklyAdviceFallsBackOnClientError(t *testing.T) {
	client := &stubChatClient{err: errors.New("timeout")}
	svc, _, uid := newChatService(client)

	advice := svc.WeeklyAdvice(context.Background(), uid.Hex())
	assert.Equal(t, "坚持就是胜利！保持训练节奏，你正在变得更强！💪", advice)
}

func TestWeeklyAdviceUsesModelReply(t *testing.T) {
	client := &stubChatClient{content: "  **本周很棒**，继续保持！🔥  "}
	svc, _, uid := newChatService(client)

	advice := svc.WeeklyAdvice(context.Background(), uid.Hex())
	assert.Equal(t, "本周很棒，继续保持！🔥", advice)
}
