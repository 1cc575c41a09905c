package userdir

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// CreateUserSQL links the new user row to the account row whose type
// matches. When no tier matches it affects zero rows, which callers
// must treat as a failed create.
var CreateUserSQL = `INSERT INTO users (name, email, password_hash, account_id)
SELECT ?, ?, ?, "acc"."id"
FROM accounts AS "acc"
WHERE "acc"."account_type" = ?`

// Users is the credential store surface the rest of the service
// depends on.
type Users interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, record *User, accountType AccountType) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)

// NewUsersRepository wires a Users repository over the given handle
func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

// List returns every user joined with its account tier. Ordering is
// whatever the store yields, it is not part of the contract.
func (r *users) List(ctx context.Context) ([]User, error) {
	var records []User
	err := r.db.NewSelect().
		Model(&records).
		ColumnExpr("?TableAlias.*").
		ColumnExpr(`"acc"."account_type"`).
		Join(`JOIN accounts AS "acc" ON "acc"."id" = ?TableAlias."account_id"`).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *users) GetByID(ctx context.Context, id int64) (*User, error) {
	return r.getOne(ctx, `?TableAlias."id" = ?`, id)
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, `?TableAlias."email" = ?`, email)
}

func (r *users) getOne(ctx context.Context, where string, value any) (*User, error) {
	record := &User{}
	err := r.db.NewSelect().
		Model(record).
		ColumnExpr("?TableAlias.*").
		ColumnExpr(`"acc"."account_type"`).
		Join(`JOIN accounts AS "acc" ON "acc"."id" = ?TableAlias."account_id"`).
		Where(where, value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return record, nil
}

// Create inserts the user linked to the tier named by accountType.
// It succeeds iff exactly one row was inserted.
func (r *users) Create(ctx context.Context, record *User, accountType AccountType) error {
	res, err := r.db.NewRaw(
		CreateUserSQL,
		record.Name, record.Email, record.PasswordHash, accountType,
	).Exec(ctx)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected != 1 {
		return ErrUserNotCreated
	}

	return nil
}
