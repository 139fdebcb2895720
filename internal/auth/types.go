package auth

import "time"

const (
	AccountStatusActive   = "active"
	AccountStatusDisabled = "disabled"
)

// Account is an authentication identity. Profiles and role assignments hang
// off its ID; deleting the account cascades to both at the schema level.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
