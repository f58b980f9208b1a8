package ai_test

import (
	"context"
	"errors"
	"testing"

	"nofat/fitness-server/internal/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChatClient counts calls and replays a canned reply or error.
type stubChatClient struct {
	calls   int
	content string
	err     error
}

func (s *stubChatClient) ChatCompletion(ctx context.Context, messages []ai.Message) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

func TestGeneratePlanValidationFailsBeforeNetwork(t *testing.T) {
	client := &stubChatClient{content: "{}"}
	gen := ai.NewGenerator(client)

	req := planRequest()
	req.Height = 0

	_, err := gen.GeneratePlan(context.Background(), req)
	require.ErrorIs(t, err, ai.ErrProfileIncomplete)
	assert.Zero(t, client.calls)
}

func TestGeneratePlanTransportErrorServesFallback(t *testing.T) {
	client := &stubChatClient{err: errors.New("connection refused")}
	gen := ai.NewGenerator(client)

	plan, err := gen.GeneratePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Contains(t, plan.Name, ai.OfflineSuffix)
}

func TestGeneratePlanParsesChattyReply(t *testing.T) {
	client := &stubChatClient{content: "Sure! Here is your plan:\n```json\n" + `{
		"name": "Test Plan",
		"workouts": [{"day": "周一", "name": "力量日", "duration": "30分钟", "exercises": []}]
	}` + "\n```"}
	gen := ai.NewGenerator(client)

	plan, err := gen.GeneratePlan(context.Background(), planRequest())
	require.NoError(t, err)
	assert.Equal(t, "Test Plan", plan.Name)
	require.Len(t, plan.Workouts, 1)
	assert.Equal(t, "周一", plan.Workouts[0].Day)
}

func TestGeneratePlanSendsSystemThenUser(t *testing.T) {
	var got []ai.Message
	client := &captureChatClient{content: "{}", capture: &got}
	gen := ai.NewGenerator(client)

	_, err := gen.GeneratePlan(context.Background(), planRequest())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ai.RoleSystem, got[0].Role)
	assert.Equal(t, ai.PlanSystemPrompt, got[0].Content)
	assert.Equal(t, ai.RoleUser, got[1].Role)
	assert.Contains(t, got[1].Content, "客户档案")
}

type captureChatClient struct {
	content string
	capture *[]ai.Message
}

func (c *captureChatClient) ChatCompletion(ctx context.Context, messages []ai.Message) (string, error) {
	*c.capture = messages
	return c.content, nil
}
