package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
)

func TestChatTurnBuildsStateAndSavesMessages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	u := seedUser(t, st, nil)
	sessions := NewSessions(st)
	sess, err := sessions.Initialize(ctx, u)
	require.NoError(t, err)
	require.NoError(t, st.AppendMessages(ctx,
		&model.Message{SessionID: sess.ID, Sender: model.SenderUser, Content: "hi"},
		&model.Message{SessionID: sess.ID, Sender: model.SenderBot, Content: "hello"},
	))

	cache := newFakeCache()
	cache.tokens[u.ID.String()] = "tok-1"
	router := &fakeRouter{reply: func(in statex.Conversation) (statex.Conversation, error) {
		return in.WithIntent(statex.IntentAccountInfo).WithMessages(statex.AssistantMessage("Account info: {}")), nil
	}}
	svc := NewChat(st, sessions, cache, router)

	reply, err := svc.Turn(ctx, u, "  what is my balance  ")
	require.NoError(t, err)
	require.NotNil(t, reply.AIResponse)
	assert.Equal(t, "Account info: {}", *reply.AIResponse)
	assert.Equal(t, 1, cache.gets)

	assert.Equal(t, "tok-1", router.got.Token)
	assert.False(t, router.got.Authenticated)
	assert.False(t, router.got.ReauthRequired)
	assert.Equal(t, statex.IntentNone, router.got.Intent)
	assert.Equal(t, []statex.Message{
		statex.UserMessage("hi"),
		statex.AssistantMessage("hello"),
		statex.UserMessage("what is my balance"),
	}, router.got.Messages)

	saved, err := st.SessionMessages(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, saved, 4)
	assert.Equal(t, reply.UserMessageID, saved[2].ID)
	assert.Equal(t, model.SenderUser, saved[2].Sender)
	assert.Equal(t, model.SenderBot, saved[3].Sender)
	assert.Equal(t, "Account info: {}", saved[3].Content)
}

func TestChatTurnWithoutReplySavesOnlyUserMessage(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	u := seedUser(t, st, nil)
	sessions := NewSessions(st)
	sess, err := sessions.Initialize(ctx, u)
	require.NoError(t, err)

	svc := NewChat(st, sessions, newFakeCache(), &fakeRouter{})
	reply, err := svc.Turn(ctx, u, "hello")
	require.NoError(t, err)
	assert.Nil(t, reply.AIResponse)

	saved, err := st.SessionMessages(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, saved, 1)
}

func TestChatTurnErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := store.NewMemory()
	u := seedUser(t, st, nil)
	sessions := NewSessions(st)

	svc := NewChat(st, sessions, newFakeCache(), &fakeRouter{})
	_, err := svc.Turn(ctx, u, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	_, err = svc.Turn(ctx, u, "hi")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	sess, err := sessions.Initialize(ctx, u)
	require.NoError(t, err)

	failing := NewChat(st, sessions, newFakeCache(), &fakeRouter{reply: func(statex.Conversation) (statex.Conversation, error) {
		return statex.Conversation{}, errBoom
	}})
	_, err = failing.Turn(ctx, u, "hi")
	assert.ErrorIs(t, err, errBoom)

	broken := newFakeCache()
	broken.getErr = errBoom
	_, err = NewChat(st, sessions, broken, &fakeRouter{}).Turn(ctx, u, "hi")
	assert.ErrorIs(t, err, errBoom)

	saved, err := st.SessionMessages(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, saved)
}
