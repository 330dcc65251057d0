package domain

import "time"

// UserRole distinguishes inspectors from administrators.
type UserRole string

const (
	RoleInspector UserRole = "inspector"
	RoleAdmin     UserRole = "admin"
)

// User is created lazily on first login by name; names are unique and
// matched case-sensitively.
type User struct {
	ID        string
	Name      string
	Role      UserRole
	CreatedAt time.Time
	UpdatedAt time.Time
}
