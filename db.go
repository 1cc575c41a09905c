package userdir

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenDB opens the credential store. The returned handle is the only
// shared mutable resource in the process; callers own its lifecycle
// and must Close it at shutdown.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if strings.Contains(dsn, "memory") {
		// keep the in-memory database alive across pooled conns
		sqldb.SetMaxIdleConns(1000)
		sqldb.SetConnMaxLifetime(0)
	}

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// InitSchema creates the accounts and users tables when absent and
// makes sure the three account tiers exist.
func InitSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Account)(nil),
		(*User)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	for _, t := range AllAccountTypes() {
		account := &Account{Type: t}
		if _, err := db.NewInsert().
			Model(account).
			On("CONFLICT (account_type) DO NOTHING").
			Exec(ctx); err != nil {
			return fmt.Errorf("seed account type %s: %w", t, err)
		}
	}

	return nil
}
