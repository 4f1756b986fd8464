package domain

import (
	"database/sql"
)

// Hostel domain model (hostels table). A hostel is the tenant boundary:
// every other table carries its hostel_id.
type Hostel struct {
	HostelID   string         `db:"hostel_id"`
	HostelName string         `db:"hostel_name"`
	Address    sql.NullString `db:"address"`
	Warden     sql.NullString `db:"warden"`
	Phone      sql.NullString `db:"phone"`
	Status     string         `db:"status"`
	CreatedAt  sql.NullTime   `db:"created_at"`
	UpdatedAt  sql.NullTime   `db:"updated_at"`
}
