package domain

import (
	"database/sql"
)

// Caller roles. SystemAdmin is the super-tenant role: it may act across all
// hostels. Every other role is scoped to its own hostel.
const (
	RoleSystemAdmin = "SystemAdmin"
	RoleWarden      = "Warden"
	RoleStaff       = "Staff"
)

// User domain model (users table). HostelID is NULL for platform-level
// accounts (SystemAdmin without a home hostel).
type User struct {
	UserID       string         `db:"user_id"`
	HostelID     sql.NullString `db:"hostel_id"`
	UserAccount  string         `db:"user_account"`
	PasswordHash string         `db:"password_hash"`
	Nickname     sql.NullString `db:"nickname"`
	Role         string         `db:"role"`
	Status       string         `db:"status"`
	CreatedAt    sql.NullTime   `db:"created_at"`
}

// IsSuperTenant reports whether the role may act across hostels.
func IsSuperTenant(role string) bool {
	return role == RoleSystemAdmin
}
