package repository

import (
	"context"
	"database/sql"
)

// TenantResolver resolves the owning hostel of an entity id.
type TenantResolver interface {
	HostelIDByUserID(ctx context.Context, userID string) (string, error)
	HostelIDByStudentID(ctx context.Context, studentID string) (string, error)
	HostelIDByRoomID(ctx context.Context, roomID string) (string, error)
}

type PostgresTenantResolver struct {
	db *sql.DB
}

func NewPostgresTenantResolver(db *sql.DB) *PostgresTenantResolver {
	return &PostgresTenantResolver{db: db}
}

func (r *PostgresTenantResolver) HostelIDByUserID(ctx context.Context, userID string) (string, error) {
	var hostelID string
	err := r.db.QueryRowContext(ctx, "SELECT hostel_id::text FROM users WHERE user_id = $1", userID).Scan(&hostelID)
	return hostelID, err
}

func (r *PostgresTenantResolver) HostelIDByStudentID(ctx context.Context, studentID string) (string, error) {
	var hostelID string
	err := r.db.QueryRowContext(ctx, "SELECT hostel_id::text FROM students WHERE student_id = $1", studentID).Scan(&hostelID)
	return hostelID, err
}

func (r *PostgresTenantResolver) HostelIDByRoomID(ctx context.Context, roomID string) (string, error) {
	var hostelID string
	err := r.db.QueryRowContext(ctx, "SELECT hostel_id::text FROM rooms WHERE room_id = $1", roomID).Scan(&hostelID)
	return hostelID, err
}
