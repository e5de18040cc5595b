package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
)

type Sessions struct {
	store store.Store
	now   func() time.Time
}

func NewSessions(st store.Store) *Sessions {
	return &Sessions{store: st, now: time.Now}
}

// Initialize ends the caller's active sessions and opens a new one.
func (s *Sessions) Initialize(ctx context.Context, u *model.User) (*model.ChatSession, error) {
	sess := &model.ChatSession{
		ID:        uuid.New(),
		UserID:    u.ID,
		StartedAt: s.now().UTC(),
		IsActive:  true,
	}
	if err := s.store.StartSession(ctx, sess); err != nil {
		return nil, err
	}
	log.Info().Str("session_id", sess.ID.String()).Msg("chat session started")
	return sess, nil
}

func (s *Sessions) Active(ctx context.Context, u *model.User) (*model.ChatSession, error) {
	sess, err := s.store.ActiveSession(ctx, u.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, err
	}
	return sess, nil
}
