package eraser

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
)

// Table and column names are interpolated into the statement, so they are
// restricted to plain lowercase identifiers.
var identPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

var _ CleanupStore = (*PGCleanup)(nil)

// PGCleanup deletes dependent rows directly against PostgreSQL.
type PGCleanup struct {
	db *sql.DB
}

func NewPGCleanup(db *sql.DB) *PGCleanup {
	return &PGCleanup{db: db}
}

func (s *PGCleanup) DeleteWhere(ctx context.Context, table, column, accountID string) (int64, error) {
	if !identPattern.MatchString(table) || !identPattern.MatchString(column) {
		return 0, fmt.Errorf("invalid cleanup target %s.%s", table, column)
	}
	res, err := s.db.ExecContext(ctx, fmt.Sprintf(`delete from %s where %s=$1`, table, column), accountID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
