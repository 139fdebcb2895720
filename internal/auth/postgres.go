package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var _ AccountStore = (*PGAccounts)(nil)

// PGAccounts implements AccountStore using PostgreSQL.
type PGAccounts struct {
	db *sql.DB
}

func NewPGAccounts(db *sql.DB) *PGAccounts {
	return &PGAccounts{db: db}
}

func (s *PGAccounts) Find(ctx context.Context, id string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, password_hash, status, created_at, updated_at from accounts where id=$1`, id)
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *PGAccounts) FindByEmail(ctx context.Context, email string) (*Account, error) {
	row := s.db.QueryRowContext(ctx,
		`select id, email, password_hash, status, created_at, updated_at from accounts where email=$1`,
		strings.ToLower(strings.TrimSpace(email)))
	var a Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (s *PGAccounts) Create(ctx context.Context, account *Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.Status == "" {
		account.Status = AccountStatusActive
	}
	_, err := s.db.ExecContext(ctx,
		`insert into accounts(id, email, password_hash, status) values($1,$2,$3,$4)`,
		account.ID, strings.ToLower(strings.TrimSpace(account.Email)), account.PasswordHash, account.Status,
	)
	return err
}

// Delete removes the account row. Profiles and role assignments reference
// accounts with ON DELETE CASCADE, so they go with it. Zero rows affected
// maps to ErrNotFound so callers can implement idempotent deletes.
func (s *PGAccounts) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from accounts where id=$1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
