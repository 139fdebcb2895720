package staff

import "time"

// Role labels assignable to an account. Absence of an assignment means
// RoleStaff.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Profile is the display/contact record associated with an account. ID
// equals the account id in the normal case; LoginID is an optional
// human-readable alias used at sign-in.
type Profile struct {
	ID        string    `json:"id"`
	LoginID   string    `json:"login_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Resolution pairs a profile (nil when absent) with the resolved role label.
type Resolution struct {
	Profile *Profile `json:"profile"`
	Role    string   `json:"role"`
}
