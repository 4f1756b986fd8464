package domain

import (
	"database/sql"
)

// Transfer request states. pending is the only non-terminal state; approved
// and rejected are terminal and never transition again.
const (
	TransferStatusPending  = "pending"
	TransferStatusApproved = "approved"
	TransferStatusRejected = "rejected"
)

// RoomTransferRequest domain model (room_transfer_requests table).
// References a student and the source/destination rooms; the source may be
// NULL when the student was unassigned at request time.
type RoomTransferRequest struct {
	RequestID  string         `db:"request_id"`
	HostelID   string         `db:"hostel_id"`
	StudentID  string         `db:"student_id"`
	FromRoomID sql.NullString `db:"from_room_id"`
	ToRoomID   string         `db:"to_room_id"`
	Reason     sql.NullString `db:"reason"`
	Status     string         `db:"status"`
	ApprovedBy sql.NullString `db:"approved_by"`
	ApprovedAt sql.NullTime   `db:"approved_at"`
	CreatedAt  sql.NullTime   `db:"created_at"`
}
