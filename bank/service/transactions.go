package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
	"github.com/tanpawarit/Chative-Banking-Support/bank/store"
)

const insufficientBalance = "Insufficient balance"

type CreateTransactionInput struct {
	AccountNumber   string         `json:"account_number"`
	ToAccountNumber string         `json:"to_account_number"`
	Amount          model.Money    `json:"amount"`
	Metadata        map[string]any `json:"message_metadata"`
}

type Transactions struct {
	store store.Store
	now   func() time.Time
}

func NewTransactions(st store.Store) *Transactions {
	return &Transactions{store: st, now: time.Now}
}

// Create debits the sender and records the transfer. An insufficient
// balance is not an error: it is recorded as a failed transaction.
func (s *Transactions) Create(ctx context.Context, u *model.User, in CreateTransactionInput) (*model.Transaction, error) {
	from := strings.TrimSpace(in.AccountNumber)
	to := strings.TrimSpace(in.ToAccountNumber)
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: account_number and to_account_number are required", ErrInvalidInput)
	}
	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	rec, err := s.store.Transfer(ctx, from, func(acc *model.Account) (*model.Transaction, bool, error) {
		if acc.UserID != u.ID || !acc.IsActive {
			return nil, false, ErrAccountNotFound
		}
		ref := uuid.NewString()
		tx := &model.Transaction{
			ID:              uuid.New(),
			FromAccountID:   acc.ID,
			ToAccountNumber: to,
			Amount:          in.Amount,
			ReferenceID:     &ref,
			CreatedAt:       s.now().UTC(),
		}
		if acc.Balance < in.Amount {
			tx.Status = model.TransactionFailed
			tx.Metadata = map[string]any{"reason": insufficientBalance}
			return tx, false, nil
		}
		acc.Balance -= in.Amount
		tx.Status = model.TransactionCompleted
		tx.Metadata = in.Metadata
		return tx, true, nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	log.Info().
		Str("transaction_id", rec.ID.String()).
		Str("status", string(rec.Status)).
		Msg("transaction recorded")
	return rec, nil
}

func (s *Transactions) Get(ctx context.Context, u *model.User, rawID string) (*model.Transaction, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return nil, ErrTransactionNotFound
	}
	rec, err := s.store.TransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	acc, err := s.store.AccountByID(ctx, rec.FromAccountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	if acc.UserID != u.ID {
		return nil, ErrTransactionNotFound
	}
	return rec, nil
}

func (s *Transactions) ListByAccount(ctx context.Context, u *model.User, number string) ([]model.Transaction, error) {
	acc, err := s.store.AccountByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	if acc.UserID != u.ID {
		return nil, ErrAccountNotFound
	}
	recs, err := s.store.TransactionsByAccount(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []model.Transaction{}
	}
	return recs, nil
}
