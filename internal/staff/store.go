package staff

import (
	"context"
	"errors"
)

// ErrNotFound signals a "no rows" outcome, which every caller must treat as
// distinct from a real lookup failure.
var ErrNotFound = errors.New("staff: not found")

// Directory describes the read side of the identity and role stores.
type Directory interface {
	FindProfileByID(ctx context.Context, id string) (*Profile, error)
	FindProfileByLoginID(ctx context.Context, loginID string) (*Profile, error)
	FindRole(ctx context.Context, accountID string) (string, error)
}
