package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

type Config struct {
	Driver         string        `envconfig:"DRIVER" default:"postgres"`
	URL            string        `envconfig:"URL"`
	MigrateOnStart bool          `envconfig:"MIGRATE_ON_START" split_words:"true" default:"true"`
	MaxOpenConns   int           `envconfig:"MAX_OPEN_CONNS" split_words:"true" default:"10"`
	ConnTimeout    time.Duration `envconfig:"CONN_TIMEOUT" split_words:"true" default:"5s"`
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case DriverPostgres:
		if strings.TrimSpace(c.URL) == "" {
			return errors.New("database url is required for the postgres driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Driver)
	}
	if c.MaxOpenConns < 0 {
		return errors.New("max open conns must be >= 0")
	}
	return nil
}

// TransferFunc decides the outcome of a transfer once the sender row is
// locked. It returns the transaction to record and whether the sender's
// balance (already adjusted on acc) must be written back.
type TransferFunc func(acc *model.Account) (tx *model.Transaction, debit bool, err error)

// Store is the persistence surface shared by the Postgres and in-memory
// implementations.
type Store interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	UserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	CreateAccount(ctx context.Context, acc *model.Account) error
	AccountByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
	AccountByNumber(ctx context.Context, number string) (*model.Account, error)
	ActiveAccountByUser(ctx context.Context, userID uuid.UUID) (*model.Account, error)
	UpdateAccount(ctx context.Context, acc *model.Account) error
	DeactivateAccount(ctx context.Context, id uuid.UUID) error

	Transfer(ctx context.Context, fromNumber string, fn TransferFunc) (*model.Transaction, error)
	TransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	TransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error)

	StartSession(ctx context.Context, s *model.ChatSession) error
	ActiveSession(ctx context.Context, userID uuid.UUID) (*model.ChatSession, error)

	AppendMessages(ctx context.Context, msgs ...*model.Message) error
	SessionMessages(ctx context.Context, sessionID uuid.UUID) ([]model.Message, error)

	CreateHelpRequest(ctx context.Context, req *model.FallbackHelpRequest) error

	Close() error
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg *Config) (Store, error) {
	if cfg == nil {
		return nil, errors.New("database config is nil")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case DriverMemory:
		return NewMemory(), nil
	default:
		pg, err := OpenPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return pg, nil
	}
}
