package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
)

const uniqueViolation = "23505"

type Postgres struct {
	db *bun.DB
}

// OpenPostgres connects, pings and optionally creates the schema.
func OpenPostgres(ctx context.Context, cfg *Config) (*Postgres, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.URL),
		pgdriver.WithTimeout(cfg.ConnTimeout),
	))
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	db := bun.NewDB(sqldb, pgdialect.New())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	log.Info().Msg("database connected")
	return &Postgres{db: db}, nil
}

func NewPostgres(db *bun.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

func (p *Postgres) CreateUser(ctx context.Context, u *model.User) error {
	_, err := p.db.NewInsert().Model(u).Returning("*").Exec(ctx)
	return mapErr(err)
}

func (p *Postgres) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	u := new(model.User)
	err := p.db.NewSelect().Model(u).Where("email = ?", email).Limit(1).Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (p *Postgres) UserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := new(model.User)
	if err := p.db.NewSelect().Model(u).Where("user_id = ?", id).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

func (p *Postgres) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	res, err := p.db.NewUpdate().Model((*model.User)(nil)).
		Set("last_login = ?", at).
		Where("user_id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

func (p *Postgres) CreateAccount(ctx context.Context, acc *model.Account) error {
	_, err := p.db.NewInsert().Model(acc).Returning("*").Exec(ctx)
	return mapErr(err)
}

func (p *Postgres) AccountByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	acc := new(model.Account)
	if err := p.db.NewSelect().Model(acc).Where("account_id = ?", id).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return acc, nil
}

func (p *Postgres) AccountByNumber(ctx context.Context, number string) (*model.Account, error) {
	acc := new(model.Account)
	if err := p.db.NewSelect().Model(acc).Where("account_number = ?", number).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return acc, nil
}

func (p *Postgres) ActiveAccountByUser(ctx context.Context, userID uuid.UUID) (*model.Account, error) {
	acc := new(model.Account)
	if err := activeAccountQuery(p.db, acc, userID).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return acc, nil
}

func (p *Postgres) UpdateAccount(ctx context.Context, acc *model.Account) error {
	res, err := p.db.NewUpdate().Model(acc).
		Column("account_type", "currency").
		WherePK().
		Exec(ctx)
	return affected(res, err)
}

func (p *Postgres) DeactivateAccount(ctx context.Context, id uuid.UUID) error {
	res, err := p.db.NewUpdate().Model((*model.Account)(nil)).
		Set("is_active = ?", false).
		Where("account_id = ?", id).
		Exec(ctx)
	return affected(res, err)
}

// Transfer locks the sender row for the duration of fn and records its
// outcome in the same database transaction.
func (p *Postgres) Transfer(ctx context.Context, fromNumber string, fn TransferFunc) (*model.Transaction, error) {
	var out *model.Transaction
	err := p.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		acc := new(model.Account)
		if err := lockAccountQuery(tx, acc, fromNumber).Scan(ctx); err != nil {
			return mapErr(err)
		}

		rec, debit, err := fn(acc)
		if err != nil {
			return err
		}
		if debit {
			if _, err := tx.NewUpdate().Model(acc).Column("balance").WherePK().Exec(ctx); err != nil {
				return mapErr(err)
			}
		}
		if rec == nil {
			return nil
		}
		if _, err := tx.NewInsert().Model(rec).Returning("*").Exec(ctx); err != nil {
			return mapErr(err)
		}
		out = rec
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Postgres) TransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	rec := new(model.Transaction)
	if err := p.db.NewSelect().Model(rec).Where("transaction_id = ?", id).Scan(ctx); err != nil {
		return nil, mapErr(err)
	}
	return rec, nil
}

func (p *Postgres) TransactionsByAccount(ctx context.Context, accountID uuid.UUID) ([]model.Transaction, error) {
	var recs []model.Transaction
	err := p.db.NewSelect().Model(&recs).
		Where("from_account_id = ?", accountID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return recs, nil
}

// StartSession ends every active session of s.UserID and inserts s.
func (p *Postgres) StartSession(ctx context.Context, s *model.ChatSession) error {
	return p.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewUpdate().Model((*model.ChatSession)(nil)).
			Set("is_active = ?", false).
			Set("ended_at = ?", s.StartedAt).
			Where("user_id = ?", s.UserID).
			Where("is_active").
			Exec(ctx)
		if err != nil {
			return mapErr(err)
		}
		_, err = tx.NewInsert().Model(s).Returning("*").Exec(ctx)
		return mapErr(err)
	})
}

func (p *Postgres) ActiveSession(ctx context.Context, userID uuid.UUID) (*model.ChatSession, error) {
	s := new(model.ChatSession)
	err := p.db.NewSelect().Model(s).
		Where("user_id = ?", userID).
		Where("is_active").
		Order("started_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return s, nil
}

func (p *Postgres) AppendMessages(ctx context.Context, msgs ...*model.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	return p.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&msgs).Exec(ctx)
		return mapErr(err)
	})
}

func (p *Postgres) SessionMessages(ctx context.Context, sessionID uuid.UUID) ([]model.Message, error) {
	var msgs []model.Message
	err := p.db.NewSelect().Model(&msgs).
		Where("session_id = ?", sessionID).
		Order("timestamp ASC").
		Scan(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return msgs, nil
}

func (p *Postgres) CreateHelpRequest(ctx context.Context, req *model.FallbackHelpRequest) error {
	_, err := p.db.NewInsert().Model(req).Returning("*").Exec(ctx)
	return mapErr(err)
}

func activeAccountQuery(db bun.IDB, acc *model.Account, userID uuid.UUID) *bun.SelectQuery {
	return db.NewSelect().Model(acc).
		Where("user_id = ?", userID).
		Where("is_active").
		Limit(1)
}

func lockAccountQuery(db bun.IDB, acc *model.Account, number string) *bun.SelectQuery {
	return db.NewSelect().Model(acc).
		Where("account_number = ?", number).
		For("UPDATE")
}

func affected(res sql.Result, err error) error {
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrConflict, pgErr.Field('n'))
	}
	return err
}
