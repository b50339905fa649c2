package postgres

import (
	"context"
	"database/sql"
	"strings"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/platform/apperr"
)

type AccountsRepo struct {
	db *sql.DB
}

func NewAccountsRepo(db *sql.DB) *AccountsRepo {
	return &AccountsRepo{db: db}
}

// execer: *sql.DB o *sql.Tx
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertAccount(ctx context.Context, ex execer, a accounts.Account) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO accounts (
			id, role, name, email, phone_number, password_hash,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		a.ID,
		string(a.Role),
		a.Name,
		accounts.NormalizeEmail(a.Email),
		strings.TrimSpace(a.PhoneNumber),
		a.PasswordHash,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return mapError(err)
}

func (r *AccountsRepo) Create(ctx context.Context, a accounts.Account) error {
	return insertAccount(ctx, r.db, a)
}

const selectAccount = `
	SELECT
		id, role, name, email, phone_number, password_hash,
		created_at, updated_at
	FROM accounts
`

func (r *AccountsRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return accounts.Account{}, apperr.ErrNotFound
	}
	return scanAccount(r.db.QueryRowContext(ctx, selectAccount+` WHERE id = $1`, id))
}

func (r *AccountsRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	email = accounts.NormalizeEmail(email)
	if email == "" {
		return accounts.Account{}, apperr.ErrNotFound
	}
	return scanAccount(r.db.QueryRowContext(ctx, selectAccount+` WHERE email = $1`, email))
}

func scanAccount(row *sql.Row) (accounts.Account, error) {
	var a accounts.Account
	var role string
	if err := row.Scan(
		&a.ID,
		&role,
		&a.Name,
		&a.Email,
		&a.PhoneNumber,
		&a.PasswordHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return accounts.Account{}, mapError(err)
	}
	a.Role = accounts.Role(role)
	return a, nil
}
