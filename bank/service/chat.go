package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
	"github.com/tanpawarit/Chative-Banking-Support/bank/tokencache"
)

// Router runs one conversational turn.
type Router interface {
	Run(ctx context.Context, st statex.Conversation) (statex.Conversation, error)
}

type ChatReply struct {
	UserMessageID uuid.UUID `json:"user_message_id"`
	AIResponse    *string   `json:"ai_response"`
}

type Chat struct {
	store    store.Store
	sessions *Sessions
	cache    tokencache.Cache
	router   Router
	now      func() time.Time
}

func NewChat(st store.Store, sessions *Sessions, cache tokencache.Cache, router Router) *Chat {
	return &Chat{store: st, sessions: sessions, cache: cache, router: router, now: time.Now}
}

// Turn runs query through the router against the active session's history
// and appends the user message and the reply to the log.
func (s *Chat) Turn(ctx context.Context, u *model.User, query string) (*ChatReply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	sess, err := s.sessions.Active(ctx, u)
	if err != nil {
		return nil, err
	}

	token, err := s.cache.Get(ctx, u.ID.String())
	if err != nil && !errors.Is(err, tokencache.ErrTokenNotFound) {
		return nil, fmt.Errorf("read auth token: %w", err)
	}

	history, err := s.store.SessionMessages(ctx, sess.ID)
	if err != nil {
		return nil, err
	}
	msgs := append(lo.Map(history, func(m model.Message, _ int) statex.Message {
		if m.Sender == model.SenderUser {
			return statex.UserMessage(m.Content)
		}
		return statex.AssistantMessage(m.Content)
	}), statex.UserMessage(query))

	in := statex.Conversation{
		UserID:    u.ID.String(),
		SessionID: sess.ID.String(),
		Messages:  msgs,
		Token:     token,
	}
	out, err := s.router.Run(ctx, in)
	if err != nil {
		return nil, err
	}

	var reply *string
	if len(out.Messages) > len(in.Messages) {
		if last, ok := out.LastMessage(); ok {
			reply = &last.Content
		}
	}

	now := s.now().UTC()
	userMsg := &model.Message{
		ID:        uuid.New(),
		SessionID: sess.ID,
		Sender:    model.SenderUser,
		Content:   query,
		Timestamp: now,
	}
	toSave := []*model.Message{userMsg}
	if reply != nil {
		toSave = append(toSave, &model.Message{
			ID:        uuid.New(),
			SessionID: sess.ID,
			Sender:    model.SenderBot,
			Content:   *reply,
			Metadata:  map[string]any{"intent": string(out.Intent)},
			Timestamp: now.Add(time.Microsecond),
		})
	}
	if err := s.store.AppendMessages(ctx, toSave...); err != nil {
		return nil, fmt.Errorf("save chat messages: %w", err)
	}

	log.Info().
		Str("session_id", sess.ID.String()).
		Str("intent", string(out.Intent)).
		Bool("replied", reply != nil).
		Msg("chat turn completed")
	return &ChatReply{UserMessageID: userMsg.ID, AIResponse: reply}, nil
}
