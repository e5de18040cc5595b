package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/auth"
	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
	"github.com/tanpawarit/Chative-Banking-Support/bank/tokencache"
)

type RegisterInput struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
	Password    string  `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

type Users struct {
	store    store.Store
	tokens   *auth.TokenManager
	cache    tokencache.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewUsers(st store.Store, tokens *auth.TokenManager, cache tokencache.Cache, cacheTTL time.Duration) *Users {
	return &Users{store: st, tokens: tokens, cache: cache, cacheTTL: cacheTTL, now: time.Now}
}

func (s *Users) Register(ctx context.Context, in RegisterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Password == "" {
		return fmt.Errorf("%w: name and password are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}

	if _, err := s.store.UserByEmail(ctx, in.Email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	u := &model.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now(),
	}
	if err := s.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return ErrEmailTaken
		}
		return err
	}
	log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return nil
}

func (s *Users) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := s.store.UserByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if err := s.store.TouchLastLogin(ctx, u.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to record last login")
	} else {
		u.LastLogin = &now
	}
	return &LoginResult{AccessToken: token, TokenType: "bearer", User: *u}, nil
}

// Authenticate resolves a bearer token to its user and refreshes the
// token cache entry the chat turn reads.
func (s *Users) Authenticate(ctx context.Context, token string) (*model.User, error) {
	email, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	u, err := s.store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, u.ID.String(), token, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to cache auth token")
		}
	}
	return u, nil
}

func (s *Users) Verify(_ context.Context, u *model.User) error {
	if !u.IsActive {
		return ErrInactiveUser
	}
	if u.PhoneNumber == nil || strings.TrimSpace(*u.PhoneNumber) == "" {
		return ErrPhoneNotSet
	}
	return nil
}
