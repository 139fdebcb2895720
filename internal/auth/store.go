package auth

import "context"

// AccountStore describes persistence operations required by the auth subsystem.
type AccountStore interface {
	Find(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Create(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id string) error
}
