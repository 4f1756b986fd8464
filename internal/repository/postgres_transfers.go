package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
)

type PostgresTransfersRepository struct {
	db *sql.DB
}

func NewPostgresTransfersRepository(db *sql.DB) *PostgresTransfersRepository {
	return &PostgresTransfersRepository{db: db}
}

const transferColumns = `
	request_id::text,
	hostel_id::text,
	student_id::text,
	from_room_id::text,
	to_room_id::text,
	reason,
	status,
	approved_by::text,
	approved_at,
	created_at`

func scanTransfer(row interface{ Scan(...any) error }) (*domain.RoomTransferRequest, error) {
	var t domain.RoomTransferRequest
	err := row.Scan(
		&t.RequestID,
		&t.HostelID,
		&t.StudentID,
		&t.FromRoomID,
		&t.ToRoomID,
		&t.Reason,
		&t.Status,
		&t.ApprovedBy,
		&t.ApprovedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTransfersRepository) ListTransfers(ctx context.Context, hostelID string, status string, page, size int) ([]*domain.RoomTransferRequest, int, error) {
	if hostelID == "" {
		return []*domain.RoomTransferRequest{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM room_transfer_requests WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT` + transferColumns + `
		FROM room_transfer_requests
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.RoomTransferRequest{}
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *PostgresTransfersRepository) GetTransfer(ctx context.Context, hostelID, requestID string) (*domain.RoomTransferRequest, error) {
	if hostelID == "" || requestID == "" {
		return nil, fmt.Errorf("hostel_id and request_id are required")
	}

	q := `SELECT` + transferColumns + `
		FROM room_transfer_requests
		WHERE hostel_id = $1 AND request_id = $2`
	return scanTransfer(r.db.QueryRowContext(ctx, q, hostelID, requestID))
}

func (r *PostgresTransfersRepository) CreateTransfer(ctx context.Context, hostelID string, req *domain.RoomTransferRequest) (string, error) {
	if hostelID == "" {
		return "", fmt.Errorf("hostel_id is required")
	}
	if req == nil {
		return "", fmt.Errorf("transfer request is required")
	}

	var requestID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO room_transfer_requests (hostel_id, student_id, from_room_id, to_room_id, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING request_id::text`,
		hostelID,
		req.StudentID,
		req.FromRoomID,
		req.ToRoomID,
		req.Reason,
		domain.TransferStatusPending,
	).Scan(&requestID)
	if err != nil {
		return "", err
	}
	return requestID, nil
}

// MarkApproved flips pending -> approved. The status predicate makes the
// transition a compare-and-set: once a request is terminal, further
// approve/reject attempts affect zero rows and report false.
func (r *PostgresTransfersRepository) MarkApproved(ctx context.Context, hostelID, requestID, approvedBy string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_transfer_requests
		 SET status = $3, approved_by = $4, approved_at = NOW()
		 WHERE hostel_id = $1 AND request_id = $2 AND status = $5`,
		hostelID, requestID, domain.TransferStatusApproved, approvedBy, domain.TransferStatusPending,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresTransfersRepository) MarkRejected(ctx context.Context, hostelID, requestID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE room_transfer_requests
		 SET status = $3
		 WHERE hostel_id = $1 AND request_id = $2 AND status = $4`,
		hostelID, requestID, domain.TransferStatusRejected, domain.TransferStatusPending,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
