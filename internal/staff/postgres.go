package staff

import (
	"context"
	"database/sql"
	"errors"
)

var _ Directory = (*PGDirectory)(nil)

// PGDirectory implements Directory over the profiles and user_roles tables.
type PGDirectory struct {
	db *sql.DB
}

func NewPGDirectory(db *sql.DB) *PGDirectory {
	return &PGDirectory{db: db}
}

const profileColumns = `id, coalesce(login_id,''), name, coalesce(email,''), coalesce(phone,''), coalesce(address,''), status, created_at, updated_at`

func (d *PGDirectory) FindProfileByID(ctx context.Context, id string) (*Profile, error) {
	row := d.db.QueryRowContext(ctx, `select `+profileColumns+` from profiles where id=$1`, id)
	return scanProfile(row)
}

func (d *PGDirectory) FindProfileByLoginID(ctx context.Context, loginID string) (*Profile, error) {
	row := d.db.QueryRowContext(ctx, `select `+profileColumns+` from profiles where login_id=$1`, loginID)
	return scanProfile(row)
}

// FindRole expects at most one assignment per account.
func (d *PGDirectory) FindRole(ctx context.Context, accountID string) (string, error) {
	var role string
	err := d.db.QueryRowContext(ctx, `select role from user_roles where user_id=$1`, accountID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return role, nil
}

func scanProfile(row *sql.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.ID, &p.LoginID, &p.Name, &p.Email, &p.Phone, &p.Address, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
