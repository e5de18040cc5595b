package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	statex "github.com/tanpawarit/Chative-Banking-Support/agent/state"
	"github.com/tanpawarit/Chative-Banking-Support/bank/auth"
	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
	"github.com/tanpawarit/Chative-Banking-Support/bank/tokencache"
)

type fakeCache struct {
	mu     sync.Mutex
	tokens map[string]string
	ttls   map[string]time.Duration
	getErr error
	gets   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{tokens: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (c *fakeCache) Get(_ context.Context, userID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.getErr != nil {
		return "", c.getErr
	}
	tok, ok := c.tokens[userID]
	if !ok {
		return "", tokencache.ErrTokenNotFound
	}
	return tok, nil
}

func (c *fakeCache) Set(_ context.Context, userID, token string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens[userID] = token
	c.ttls[userID] = ttl
	return nil
}

type fakeRouter struct {
	got   statex.Conversation
	reply func(statex.Conversation) (statex.Conversation, error)
}

func (r *fakeRouter) Run(_ context.Context, st statex.Conversation) (statex.Conversation, error) {
	r.got = st
	if r.reply == nil {
		return st, nil
	}
	return r.reply(st)
}

type fakePublisher struct {
	payloads []any
	err      error
}

func (p *fakePublisher) Publish(_ context.Context, payload any) (string, error) {
	p.payloads = append(p.payloads, payload)
	if p.err != nil {
		return "", p.err
	}
	return "msg-1", nil
}

var errBoom = errors.New("boom")

func newTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tm, err := auth.NewTokenManager(&auth.Config{SecretKey: "test-secret", Algorithm: "HS256", AccessTokenTTL: 30 * time.Minute})
	require.NoError(t, err)
	return tm
}

func seedUser(t *testing.T, st store.Store, phone *string) *model.User {
	t.Helper()
	hash, err := auth.HashPassword("pw")
	require.NoError(t, err)
	u := &model.User{
		ID:           uuid.New(),
		Name:         "Jane",
		Email:        uuid.NewString() + "@example.com",
		PhoneNumber:  phone,
		PasswordHash: hash,
		IsActive:     true,
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedAccount(t *testing.T, st store.Store, owner *model.User, number string, balance model.Money) *model.Account {
	t.Helper()
	acc := &model.Account{
		ID:            uuid.New(),
		UserID:        owner.ID,
		AccountNumber: number,
		AccountType:   "savings",
		Balance:       balance,
		Currency:      "INR",
		IsActive:      true,
	}
	require.NoError(t, st.CreateAccount(context.Background(), acc))
	return acc
}
