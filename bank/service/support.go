package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
)

// Publisher forwards help requests to the support desk queue.
type Publisher interface {
	Publish(ctx context.Context, payload any) (string, error)
}

type SupportInput struct {
	Notes *string `json:"notes"`
}

type Support struct {
	store     store.Store
	sessions  *Sessions
	publisher Publisher
	now       func() time.Time
}

// NewSupport builds the support service; publisher may be nil.
func NewSupport(st store.Store, sessions *Sessions, publisher Publisher) *Support {
	return &Support{store: st, sessions: sessions, publisher: publisher, now: time.Now}
}

func (s *Support) Create(ctx context.Context, u *model.User, in SupportInput) (*model.FallbackHelpRequest, error) {
	sess, err := s.sessions.Active(ctx, u)
	if err != nil {
		return nil, err
	}
	if in.Notes != nil {
		trimmed := strings.TrimSpace(*in.Notes)
		in.Notes = &trimmed
	}
	req := &model.FallbackHelpRequest{
		ID:        uuid.New(),
		UserID:    u.ID,
		SessionID: sess.ID,
		Notes:     in.Notes,
		CreatedAt: s.now().UTC(),
	}
	if err := s.store.CreateHelpRequest(ctx, req); err != nil {
		return nil, err
	}

	if s.publisher != nil {
		msgID, err := s.publisher.Publish(ctx, req)
		if err != nil {
			log.Warn().Err(err).Str("help_id", req.ID.String()).Msg("failed to escalate help request")
		} else {
			log.Info().Str("help_id", req.ID.String()).Str("message_id", msgID).Msg("help request escalated")
		}
	}
	return req, nil
}
