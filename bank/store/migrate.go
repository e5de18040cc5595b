package store

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/tanpawarit/Chative-Banking-Support/bank/model"
)

var tables = []any{
	(*model.User)(nil),
	(*model.Account)(nil),
	(*model.Transaction)(nil),
	(*model.ChatSession)(nil),
	(*model.Message)(nil),
	(*model.FallbackHelpRequest)(nil),
}

type index struct {
	model   any
	name    string
	columns []string
}

var indexes = []index{
	{(*model.Account)(nil), "idx_accounts_user_id", []string{"user_id"}},
	{(*model.Transaction)(nil), "idx_transactions_from_account_id", []string{"from_account_id"}},
	{(*model.ChatSession)(nil), "idx_sessions_user_id", []string{"user_id"}},
	{(*model.Message)(nil), "idx_messages_session_id", []string{"session_id"}},
}

// Migrate creates missing tables and indexes. It never alters existing ones.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, m := range tables {
		if _, err := db.NewCreateTable().Model(m).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table for %T: %w", m, err)
		}
	}
	for _, idx := range indexes {
		_, err := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			Column(idx.columns...).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}
