package repository

import (
	"context"
	"time"

	"hostel-data/internal/domain"
)

// Record-keeping repositories. These back the parallel CRUD surface
// (fees, attendance, complaints, staff, visitors, leaves, inventory); none
// of them touch room occupancy.

type FeesRepository interface {
	ListFees(ctx context.Context, hostelID string, studentID, status string, page, size int) ([]*domain.FeeRecord, int, error)
	GetFee(ctx context.Context, hostelID, feeID string) (*domain.FeeRecord, error)
	CreateFee(ctx context.Context, hostelID string, fee *domain.FeeRecord) (string, error)
	UpdateFee(ctx context.Context, hostelID, feeID string, fee *domain.FeeRecord) error
	DeleteFee(ctx context.Context, hostelID, feeID string) error
}

type AttendanceRepository interface {
	ListAttendance(ctx context.Context, hostelID, studentID string, from, to time.Time, page, size int) ([]*domain.AttendanceRecord, int, error)
	CreateAttendance(ctx context.Context, hostelID string, rec *domain.AttendanceRecord) (string, error)
	UpdateAttendance(ctx context.Context, hostelID, attendanceID string, rec *domain.AttendanceRecord) error
	DeleteAttendance(ctx context.Context, hostelID, attendanceID string) error
}

type ComplaintsRepository interface {
	ListComplaints(ctx context.Context, hostelID, status string, page, size int) ([]*domain.Complaint, int, error)
	GetComplaint(ctx context.Context, hostelID, complaintID string) (*domain.Complaint, error)
	CreateComplaint(ctx context.Context, hostelID string, c *domain.Complaint) (string, error)
	UpdateComplaint(ctx context.Context, hostelID, complaintID string, c *domain.Complaint) error
	DeleteComplaint(ctx context.Context, hostelID, complaintID string) error
}

type StaffRepository interface {
	ListStaff(ctx context.Context, hostelID, role string, page, size int) ([]*domain.StaffMember, int, error)
	CreateStaff(ctx context.Context, hostelID string, s *domain.StaffMember) (string, error)
	UpdateStaff(ctx context.Context, hostelID, staffID string, s *domain.StaffMember) error
	DeleteStaff(ctx context.Context, hostelID, staffID string) error
}

type VisitorsRepository interface {
	ListVisitors(ctx context.Context, hostelID, studentID string, page, size int) ([]*domain.VisitorLog, int, error)
	CreateVisitor(ctx context.Context, hostelID string, v *domain.VisitorLog) (string, error)
	CheckOutVisitor(ctx context.Context, hostelID, visitorID string, at time.Time) error
	DeleteVisitor(ctx context.Context, hostelID, visitorID string) error
}

type LeavesRepository interface {
	ListLeaves(ctx context.Context, hostelID, studentID, status string, page, size int) ([]*domain.LeaveRequest, int, error)
	GetLeave(ctx context.Context, hostelID, leaveID string) (*domain.LeaveRequest, error)
	CreateLeave(ctx context.Context, hostelID string, l *domain.LeaveRequest) (string, error)
	// SetLeaveStatus only transitions pending requests; reports false
	// otherwise (same guard as transfer requests).
	SetLeaveStatus(ctx context.Context, hostelID, leaveID, status, approvedBy string) (bool, error)
	DeleteLeave(ctx context.Context, hostelID, leaveID string) error
}

type InventoryRepository interface {
	ListInventory(ctx context.Context, hostelID, roomID string, page, size int) ([]*domain.InventoryItem, int, error)
	CreateInventoryItem(ctx context.Context, hostelID string, item *domain.InventoryItem) (string, error)
	UpdateInventoryItem(ctx context.Context, hostelID, itemID string, item *domain.InventoryItem) error
	DeleteInventoryItem(ctx context.Context, hostelID, itemID string) error
}

// OccupancySummary per-hostel room/occupancy aggregates for reporting.
type OccupancySummary struct {
	TotalRooms       int `json:"total_rooms"`
	Available        int `json:"available"`
	PartiallyOccupied int `json:"partially_occupied"`
	Occupied         int `json:"occupied"`
	Maintenance      int `json:"maintenance"`
	TotalCapacity    int `json:"total_capacity"`
	TotalOccupancy   int `json:"total_occupancy"`
}

// FeeSummary per-hostel fee aggregates.
type FeeSummary struct {
	TotalDue     float64 `json:"total_due"`
	TotalPaid    float64 `json:"total_paid"`
	TotalOverdue float64 `json:"total_overdue"`
}

type ReportsRepository interface {
	OccupancySummary(ctx context.Context, hostelID string) (*OccupancySummary, error)
	FeeSummary(ctx context.Context, hostelID string) (*FeeSummary, error)
}
