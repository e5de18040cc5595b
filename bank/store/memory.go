package store

import (
	"context"
	"maps"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
)

// Memory keeps every entity in process memory. It backs tests and the
// "memory" database driver for local runs.
type Memory struct {
	mu           sync.RWMutex
	users        map[uuid.UUID]model.User
	accounts     map[uuid.UUID]model.Account
	transactions map[uuid.UUID]model.Transaction
	sessions     map[uuid.UUID]model.ChatSession
	messages     []model.Message
	help         map[uuid.UUID]model.FallbackHelpRequest
	now          func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		users:        make(map[uuid.UUID]model.User),
		accounts:     make(map[uuid.UUID]model.Account),
		transactions: make(map[uuid.UUID]model.Transaction),
		sessions:     make(map[uuid.UUID]model.ChatSession),
		help:         make(map[uuid.UUID]model.FallbackHelpRequest),
		now:          time.Now,
	}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) CreateUser(_ context.Context, u *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return ErrConflict
		}
		if u.PhoneNumber != nil && existing.PhoneNumber != nil && *u.PhoneNumber == *existing.PhoneNumber {
			return ErrConflict
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = m.now()
	}
	m.users[u.ID] = *u
	return nil
}

func (m *Memory) UserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m *Memory) TouchLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLogin = &at
	m.users[id] = u
	return nil
}

func (m *Memory) CreateAccount(_ context.Context, acc *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.accounts {
		if existing.AccountNumber == acc.AccountNumber {
			return ErrConflict
		}
	}
	if acc.ID == uuid.Nil {
		acc.ID = uuid.New()
	}
	m.accounts[acc.ID] = *acc
	return nil
}

func (m *Memory) AccountByID(_ context.Context, id uuid.UUID) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &acc, nil
}

func (m *Memory) AccountByNumber(_ context.Context, number string) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	acc, ok := m.accountByNumber(number)
	if !ok {
		return nil, ErrNotFound
	}
	return &acc, nil
}

func (m *Memory) ActiveAccountByUser(_ context.Context, userID uuid.UUID) (*model.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.UserID == userID && acc.IsActive {
			return &acc, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) UpdateAccount(_ context.Context, acc *model.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.accounts[acc.ID]
	if !ok {
		return ErrNotFound
	}
	cur.AccountType = acc.AccountType
	cur.Currency = acc.Currency
	m.accounts[acc.ID] = cur
	return nil
}

func (m *Memory) DeactivateAccount(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return ErrNotFound
	}
	acc.IsActive = false
	m.accounts[id] = acc
	return nil
}

func (m *Memory) Transfer(_ context.Context, fromNumber string, fn TransferFunc) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accountByNumber(fromNumber)
	if !ok {
		return nil, ErrNotFound
	}

	rec, debit, err := fn(&acc)
	if err != nil {
		return nil, err
	}
	if debit {
		m.accounts[acc.ID] = acc
	}
	if rec == nil {
		return nil, nil
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = m.now()
	}
	stored := *rec
	stored.Metadata = maps.Clone(rec.Metadata)
	m.transactions[rec.ID] = stored
	return rec, nil
}

func (m *Memory) TransactionByID(_ context.Context, id uuid.UUID) (*model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.transactions[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec.Metadata = maps.Clone(rec.Metadata)
	return &rec, nil
}

func (m *Memory) TransactionsByAccount(_ context.Context, accountID uuid.UUID) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Transaction, 0)
	for _, rec := range m.transactions {
		if rec.FromAccountID == accountID {
			rec.Metadata = maps.Clone(rec.Metadata)
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) StartSession(_ context.Context, s *model.ChatSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = m.now()
	}
	for id, existing := range m.sessions {
		if existing.UserID == s.UserID && existing.IsActive {
			ended := s.StartedAt
			existing.IsActive = false
			existing.EndedAt = &ended
			m.sessions[id] = existing
		}
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *Memory) ActiveSession(_ context.Context, userID uuid.UUID) (*model.ChatSession, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var found *model.ChatSession
	for _, s := range m.sessions {
		if s.UserID != userID || !s.IsActive {
			continue
		}
		if found == nil || s.StartedAt.After(found.StartedAt) {
			cp := s
			found = &cp
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

func (m *Memory) AppendMessages(_ context.Context, msgs ...*model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range msgs {
		if msg.ID == uuid.Nil {
			msg.ID = uuid.New()
		}
		if msg.Timestamp.IsZero() {
			msg.Timestamp = m.now()
		}
		stored := *msg
		stored.Metadata = maps.Clone(msg.Metadata)
		m.messages = append(m.messages, stored)
	}
	return nil
}

func (m *Memory) SessionMessages(_ context.Context, sessionID uuid.UUID) ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Message, 0)
	for _, msg := range m.messages {
		if msg.SessionID == sessionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *Memory) CreateHelpRequest(_ context.Context, req *model.FallbackHelpRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = m.now()
	}
	m.help[req.ID] = *req
	return nil
}

// HelpRequests returns the stored help requests of userID.
func (m *Memory) HelpRequests(userID uuid.UUID) []model.FallbackHelpRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []model.FallbackHelpRequest
	for _, req := range m.help {
		if req.UserID == userID {
			out = append(out, req)
		}
	}
	return out
}

func (m *Memory) accountByNumber(number string) (model.Account, bool) {
	for _, acc := range m.accounts {
		if acc.AccountNumber == number {
			return acc, true
		}
	}
	return model.Account{}, false
}
