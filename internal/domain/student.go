package domain

import (
	"database/sql"
)

// Student statuses. Only active students count toward room occupancy.
const (
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"
)

// Student domain model (students table).
type Student struct {
	StudentID      string         `db:"student_id"`
	HostelID       string         `db:"hostel_id"`
	RoomID         sql.NullString `db:"room_id"` // nullable: unassigned
	AdmissionNo    string         `db:"admission_no"`
	FullName       string         `db:"full_name"`
	Email          sql.NullString `db:"email"`
	Phone          sql.NullString `db:"phone"`
	GuardianName   sql.NullString `db:"guardian_name"`
	GuardianPhone  sql.NullString `db:"guardian_phone"`
	Course         sql.NullString `db:"course"`
	Status         string         `db:"status"`
	AdmissionDate  sql.NullTime   `db:"admission_date"`
	CreatedAt      sql.NullTime   `db:"created_at"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}
