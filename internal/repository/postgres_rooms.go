package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
)

type PostgresRoomsRepository struct {
	db *sql.DB
}

func NewPostgresRoomsRepository(db *sql.DB) *PostgresRoomsRepository {
	return &PostgresRoomsRepository{db: db}
}

const roomColumns = `
	room_id::text,
	hostel_id::text,
	room_number,
	room_type,
	floor,
	capacity,
	current_occupancy,
	status,
	monthly_rent,
	created_at,
	updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*domain.Room, error) {
	var r domain.Room
	err := row.Scan(
		&r.RoomID,
		&r.HostelID,
		&r.RoomNumber,
		&r.RoomType,
		&r.Floor,
		&r.Capacity,
		&r.CurrentOccupancy,
		&r.Status,
		&r.MonthlyRent,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PostgresRoomsRepository) ListRooms(ctx context.Context, hostelID string, filters RoomFilters, page, size int) ([]*domain.Room, int, error) {
	if hostelID == "" {
		return []*domain.Room{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if filters.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filters.Status)
		argIdx++
	}
	if filters.RoomType != "" {
		where += fmt.Sprintf(" AND room_type = $%d", argIdx)
		args = append(args, filters.RoomType)
		argIdx++
	}
	if filters.Floor != "" {
		where += fmt.Sprintf(" AND floor = $%d", argIdx)
		args = append(args, filters.Floor)
		argIdx++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(" AND room_number ILIKE $%d", argIdx)
		args = append(args, "%"+filters.Search+"%")
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rooms WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT` + roomColumns + `
		FROM rooms
		WHERE ` + where + `
		ORDER BY room_number
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.Room{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, room)
	}
	return out, total, rows.Err()
}

func (r *PostgresRoomsRepository) GetRoom(ctx context.Context, hostelID, roomID string) (*domain.Room, error) {
	if hostelID == "" || roomID == "" {
		return nil, fmt.Errorf("hostel_id and room_id are required")
	}

	q := `SELECT` + roomColumns + `
		FROM rooms
		WHERE hostel_id = $1 AND room_id = $2`
	return scanRoom(r.db.QueryRowContext(ctx, q, hostelID, roomID))
}

func (r *PostgresRoomsRepository) CreateRoom(ctx context.Context, hostelID string, room *domain.Room) (string, error) {
	if hostelID == "" {
		return "", fmt.Errorf("hostel_id is required")
	}
	if room == nil {
		return "", fmt.Errorf("room is required")
	}

	var roomID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO rooms (hostel_id, room_number, room_type, floor, capacity, current_occupancy, status, monthly_rent)
		 VALUES ($1, $2, $3, $4, $5, 0, $6, $7)
		 RETURNING room_id::text`,
		hostelID,
		room.RoomNumber,
		room.RoomType,
		room.Floor,
		room.Capacity,
		domain.RoomStatusAvailable,
		room.MonthlyRent,
	).Scan(&roomID)
	if err != nil {
		return "", err
	}
	return roomID, nil
}

func (r *PostgresRoomsRepository) UpdateRoom(ctx context.Context, hostelID, roomID string, room *domain.Room) error {
	if hostelID == "" || roomID == "" {
		return fmt.Errorf("hostel_id and room_id are required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms
		 SET room_number = $3,
		     room_type = $4,
		     floor = $5,
		     capacity = $6,
		     status = $7,
		     monthly_rent = $8,
		     updated_at = NOW()
		 WHERE hostel_id = $1 AND room_id = $2`,
		hostelID,
		roomID,
		room.RoomNumber,
		room.RoomType,
		room.Floor,
		room.Capacity,
		room.Status,
		room.MonthlyRent,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRoomsRepository) DeleteRoom(ctx context.Context, hostelID, roomID string) error {
	if hostelID == "" || roomID == "" {
		return fmt.Errorf("hostel_id and room_id are required")
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM rooms WHERE hostel_id = $1 AND room_id = $2`,
		hostelID, roomID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresRoomsRepository) RoomNumberExists(ctx context.Context, hostelID, roomNumber, excludeRoomID string) (bool, error) {
	q := `SELECT COUNT(*) FROM rooms WHERE hostel_id = $1 AND room_number = $2`
	args := []any{hostelID, roomNumber}
	if excludeRoomID != "" {
		q += ` AND room_id <> $3`
		args = append(args, excludeRoomID)
	}
	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ReconcileOccupancy recounts active students for the room and stores the
// result. The room row is locked for the duration of the transaction so two
// concurrent reconciliations (or a reconciliation racing a capacity change)
// serialize instead of both writing a stale count. Status is rederived from
// the new count unless the operator set the room to maintenance, in which
// case only the count changes.
func (r *PostgresRoomsRepository) ReconcileOccupancy(ctx context.Context, hostelID, roomID string) (int, string, error) {
	if hostelID == "" || roomID == "" {
		return 0, "", fmt.Errorf("hostel_id and room_id are required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer tx.Rollback()

	var capacity int
	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT capacity, status
		 FROM rooms
		 WHERE hostel_id = $1 AND room_id = $2
		 FOR UPDATE`,
		hostelID, roomID,
	).Scan(&capacity, &status)
	if err != nil {
		return 0, "", err // sql.ErrNoRows when the room vanished
	}

	var count int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM students
		 WHERE hostel_id = $1 AND room_id = $2 AND status = $3`,
		hostelID, roomID, domain.StudentStatusActive,
	).Scan(&count)
	if err != nil {
		return 0, "", err
	}

	newStatus := status
	if status != domain.RoomStatusMaintenance {
		newStatus = domain.DeriveRoomStatus(count, capacity)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE rooms
		 SET current_occupancy = $3, status = $4, updated_at = NOW()
		 WHERE hostel_id = $1 AND room_id = $2`,
		hostelID, roomID, count, newStatus,
	)
	if err != nil {
		return 0, "", err
	}

	if err := tx.Commit(); err != nil {
		return 0, "", err
	}
	return count, newStatus, nil
}
