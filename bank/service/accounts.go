package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
)

const (
	MinimumInitialBalance model.Money = 10000
	accountNumberDigits               = 12
	accountNumberAttempts             = 3
)

type CreateAccountInput struct {
	Name        string      `json:"name,omitempty"`
	Balance     model.Money `json:"balance"`
	AccountType string      `json:"account_type"`
	Currency    string      `json:"currency"`
}

type UpdateAccountInput struct {
	AccountType *string `json:"account_type"`
	Currency    *string `json:"currency"`
}

type Accounts struct {
	store store.Store
}

func NewAccounts(st store.Store) *Accounts {
	return &Accounts{store: st}
}

func (s *Accounts) Info(ctx context.Context, u *model.User) (model.AccountInfo, error) {
	acc, err := s.active(ctx, u)
	if err != nil {
		return model.AccountInfo{}, err
	}
	return acc.Info(), nil
}

func (s *Accounts) Update(ctx context.Context, u *model.User, in UpdateAccountInput) (model.AccountInfo, error) {
	acc, err := s.active(ctx, u)
	if err != nil {
		return model.AccountInfo{}, err
	}
	if in.AccountType != nil {
		if v := strings.TrimSpace(*in.AccountType); v != "" {
			acc.AccountType = v
		}
	}
	if in.Currency != nil {
		if v := strings.TrimSpace(*in.Currency); v != "" {
			acc.Currency = v
		}
	}
	if err := s.store.UpdateAccount(ctx, acc); err != nil {
		return model.AccountInfo{}, err
	}
	return acc.Info(), nil
}

// Delete deactivates the caller's active account.
func (s *Accounts) Delete(ctx context.Context, u *model.User) error {
	acc, err := s.active(ctx, u)
	if err != nil {
		return err
	}
	if err := s.store.DeactivateAccount(ctx, acc.ID); err != nil {
		return err
	}
	log.Info().Str("account_id", acc.ID.String()).Msg("account deactivated")
	return nil
}

func (s *Accounts) Create(ctx context.Context, u *model.User, in CreateAccountInput) (model.AccountInfo, error) {
	if in.Balance < MinimumInitialBalance {
		return model.AccountInfo{}, ErrMinimumBalance
	}
	if strings.TrimSpace(in.AccountType) == "" {
		return model.AccountInfo{}, fmt.Errorf("%w: account_type is required", ErrInvalidInput)
	}
	currency := strings.TrimSpace(in.Currency)
	if currency == "" {
		currency = model.DefaultCurrency
	}

	var lastErr error
	for attempt := 0; attempt < accountNumberAttempts; attempt++ {
		acc := &model.Account{
			ID:            uuid.New(),
			UserID:        u.ID,
			AccountNumber: NewAccountNumber(),
			AccountType:   strings.TrimSpace(in.AccountType),
			Balance:       in.Balance,
			Currency:      currency,
			IsActive:      true,
		}
		err := s.store.CreateAccount(ctx, acc)
		if err == nil {
			log.Info().Str("account_id", acc.ID.String()).Msg("account created")
			return acc.Info(), nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return model.AccountInfo{}, err
		}
		lastErr = err
	}
	return model.AccountInfo{}, lastErr
}

func (s *Accounts) active(ctx context.Context, u *model.User) (*model.Account, error) {
	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	acc, err := s.store.ActiveAccountByUser(ctx, u.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoActiveAccount
		}
		return nil, err
	}
	return acc, nil
}

// NewAccountNumber returns the first twelve digits of a random UUID's
// decimal value.
func NewAccountNumber() string {
	for {
		id := uuid.New()
		digits := new(big.Int).SetBytes(id[:]).String()
		if len(digits) >= accountNumberDigits {
			return digits[:accountNumberDigits]
		}
	}
}
