package holidays

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"staffhub.org/internal/ids"
)

// PGStore keeps holidays in Postgres.
type PGStore struct {
	db *sql.DB
}

func NewPGStore(db *sql.DB) (*PGStore, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &PGStore{db: db}, nil
}

const holidayColumns = `id, title, to_char(date, 'YYYY-MM-DD'), coalesce(message, ''), coalesce(image_url, ''), coalesce(created_by, ''), created_at, updated_at`

func (s *PGStore) List(ctx context.Context) ([]Holiday, error) {
	rows, err := s.db.QueryContext(ctx, `select `+holidayColumns+` from holidays order by date asc`)
	if err != nil {
		return nil, fmt.Errorf("list holidays: %w", err)
	}
	defer rows.Close()

	var out []Holiday
	for rows.Next() {
		h, err := scanHoliday(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (s *PGStore) Create(ctx context.Context, h *Holiday) error {
	if h.ID == "" {
		h.ID = ids.New()
	}
	now := time.Now().UTC()
	h.CreatedAt = now
	h.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`insert into holidays (id, title, date, message, image_url, created_by, created_at, updated_at)
		 values ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.ID, h.Title, h.Date, h.Message, h.ImageURL, h.CreatedBy, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}

func (s *PGStore) Update(ctx context.Context, id string, in Input) (Holiday, error) {
	row := s.db.QueryRowContext(ctx,
		`update holidays
		 set title = $2, date = $3, message = $4, image_url = $5, updated_at = now()
		 where id = $1
		 returning `+holidayColumns,
		id, in.Title, in.Date, in.Message, in.ImageURL,
	)
	h, err := scanHoliday(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Holiday{}, ErrNotFound
	}
	return h, err
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from holidays where id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete holiday: %w", err)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHoliday(row rowScanner) (Holiday, error) {
	var h Holiday
	err := row.Scan(&h.ID, &h.Title, &h.Date, &h.Message, &h.ImageURL, &h.CreatedBy, &h.CreatedAt, &h.UpdatedAt)
	return h, err
}
