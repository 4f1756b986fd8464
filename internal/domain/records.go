package domain

import (
	"database/sql"
	"time"
)

// Record-keeping models. These are plain tenant-scoped rows with no derived
// state; the services over them are straight CRUD.

const (
	FeeStatusDue     = "due"
	FeeStatusPaid    = "paid"
	FeeStatusOverdue = "overdue"
)

// FeeRecord (fee_records table).
type FeeRecord struct {
	FeeID     string          `db:"fee_id"`
	HostelID  string          `db:"hostel_id"`
	StudentID string          `db:"student_id"`
	FeeType   string          `db:"fee_type"` // rent, mess, security_deposit, ...
	Amount    float64         `db:"amount"`
	DueDate   time.Time       `db:"due_date"`
	PaidDate  sql.NullTime    `db:"paid_date"`
	Status    string          `db:"status"`
	Remarks   sql.NullString  `db:"remarks"`
	CreatedAt sql.NullTime    `db:"created_at"`
}

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceOnLeave = "on_leave"
)

// AttendanceRecord (attendance_records table). One row per student per day.
type AttendanceRecord struct {
	AttendanceID string       `db:"attendance_id"`
	HostelID     string       `db:"hostel_id"`
	StudentID    string       `db:"student_id"`
	Date         time.Time    `db:"date"`
	Status       string       `db:"status"`
	MarkedBy     sql.NullString `db:"marked_by"`
	CreatedAt    sql.NullTime `db:"created_at"`
}

const (
	ComplaintOpen       = "open"
	ComplaintInProgress = "in_progress"
	ComplaintResolved   = "resolved"
)

// Complaint (complaints table).
type Complaint struct {
	ComplaintID string         `db:"complaint_id"`
	HostelID    string         `db:"hostel_id"`
	StudentID   sql.NullString `db:"student_id"`
	RoomID      sql.NullString `db:"room_id"`
	Category    string         `db:"category"` // electrical, plumbing, cleaning, ...
	Description string         `db:"description"`
	Status      string         `db:"status"`
	ResolvedAt  sql.NullTime   `db:"resolved_at"`
	CreatedAt   sql.NullTime   `db:"created_at"`
}

// StaffMember (staff table).
type StaffMember struct {
	StaffID   string         `db:"staff_id"`
	HostelID  string         `db:"hostel_id"`
	FullName  string         `db:"full_name"`
	Role      string         `db:"role"` // warden, cook, cleaner, security, ...
	Phone     sql.NullString `db:"phone"`
	Status    string         `db:"status"`
	CreatedAt sql.NullTime   `db:"created_at"`
}

// VisitorLog (visitor_logs table). CheckOut stays NULL while the visitor is
// on premises.
type VisitorLog struct {
	VisitorID   string         `db:"visitor_id"`
	HostelID    string         `db:"hostel_id"`
	StudentID   string         `db:"student_id"`
	VisitorName string         `db:"visitor_name"`
	Relation    sql.NullString `db:"relation"`
	Phone       sql.NullString `db:"phone"`
	CheckIn     time.Time      `db:"check_in"`
	CheckOut    sql.NullTime   `db:"check_out"`
	CreatedAt   sql.NullTime   `db:"created_at"`
}

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// LeaveRequest (leave_requests table).
type LeaveRequest struct {
	LeaveID    string         `db:"leave_id"`
	HostelID   string         `db:"hostel_id"`
	StudentID  string         `db:"student_id"`
	FromDate   time.Time      `db:"from_date"`
	ToDate     time.Time      `db:"to_date"`
	Reason     string         `db:"reason"`
	Status     string         `db:"status"`
	ApprovedBy sql.NullString `db:"approved_by"`
	CreatedAt  sql.NullTime   `db:"created_at"`
}

// InventoryItem (inventory_items table). RoomID is set when the item lives
// in a specific room, NULL for hostel-level stock.
type InventoryItem struct {
	ItemID    string         `db:"item_id"`
	HostelID  string         `db:"hostel_id"`
	RoomID    sql.NullString `db:"room_id"`
	ItemName  string         `db:"item_name"`
	Quantity  int            `db:"quantity"`
	Condition string         `db:"condition"` // good, damaged, under_repair
	CreatedAt sql.NullTime   `db:"created_at"`
	UpdatedAt sql.NullTime   `db:"updated_at"`
}
