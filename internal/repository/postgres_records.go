package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hostel-data/internal/domain"
)

// Postgres implementations of the record-keeping repositories. Plain
// parameterized CRUD, one table each; grouped in a single type because none
// of them carries any logic beyond SQL shaping.
type PostgresRecordsRepository struct {
	db *sql.DB
}

func NewPostgresRecordsRepository(db *sql.DB) *PostgresRecordsRepository {
	return &PostgresRecordsRepository{db: db}
}

func rowsAffectedOrNoRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ---- fees ----

func (r *PostgresRecordsRepository) ListFees(ctx context.Context, hostelID string, studentID, status string, page, size int) ([]*domain.FeeRecord, int, error) {
	if hostelID == "" {
		return []*domain.FeeRecord{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if studentID != "" {
		where += fmt.Sprintf(" AND student_id = $%d", argIdx)
		args = append(args, studentID)
		argIdx++
	}
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fee_records WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT fee_id::text, hostel_id::text, student_id::text, fee_type, amount, due_date, paid_date, status, remarks, created_at
		FROM fee_records
		WHERE ` + where + `
		ORDER BY due_date DESC
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.FeeRecord{}
	for rows.Next() {
		var f domain.FeeRecord
		if err := rows.Scan(&f.FeeID, &f.HostelID, &f.StudentID, &f.FeeType, &f.Amount, &f.DueDate, &f.PaidDate, &f.Status, &f.Remarks, &f.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &f)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) GetFee(ctx context.Context, hostelID, feeID string) (*domain.FeeRecord, error) {
	var f domain.FeeRecord
	err := r.db.QueryRowContext(ctx,
		`SELECT fee_id::text, hostel_id::text, student_id::text, fee_type, amount, due_date, paid_date, status, remarks, created_at
		 FROM fee_records
		 WHERE hostel_id = $1 AND fee_id = $2`,
		hostelID, feeID,
	).Scan(&f.FeeID, &f.HostelID, &f.StudentID, &f.FeeType, &f.Amount, &f.DueDate, &f.PaidDate, &f.Status, &f.Remarks, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PostgresRecordsRepository) CreateFee(ctx context.Context, hostelID string, f *domain.FeeRecord) (string, error) {
	var feeID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO fee_records (hostel_id, student_id, fee_type, amount, due_date, paid_date, status, remarks)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING fee_id::text`,
		hostelID, f.StudentID, f.FeeType, f.Amount, f.DueDate, f.PaidDate, f.Status, f.Remarks,
	).Scan(&feeID)
	if err != nil {
		return "", err
	}
	return feeID, nil
}

func (r *PostgresRecordsRepository) UpdateFee(ctx context.Context, hostelID, feeID string, f *domain.FeeRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE fee_records
		 SET fee_type = $3, amount = $4, due_date = $5, paid_date = $6, status = $7, remarks = $8
		 WHERE hostel_id = $1 AND fee_id = $2`,
		hostelID, feeID, f.FeeType, f.Amount, f.DueDate, f.PaidDate, f.Status, f.Remarks,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

func (r *PostgresRecordsRepository) DeleteFee(ctx context.Context, hostelID, feeID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM fee_records WHERE hostel_id = $1 AND fee_id = $2`, hostelID, feeID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- attendance ----

func (r *PostgresRecordsRepository) ListAttendance(ctx context.Context, hostelID, studentID string, from, to time.Time, page, size int) ([]*domain.AttendanceRecord, int, error) {
	if hostelID == "" {
		return []*domain.AttendanceRecord{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if studentID != "" {
		where += fmt.Sprintf(" AND student_id = $%d", argIdx)
		args = append(args, studentID)
		argIdx++
	}
	if !from.IsZero() {
		where += fmt.Sprintf(" AND date >= $%d", argIdx)
		args = append(args, from)
		argIdx++
	}
	if !to.IsZero() {
		where += fmt.Sprintf(" AND date <= $%d", argIdx)
		args = append(args, to)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendance_records WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT attendance_id::text, hostel_id::text, student_id::text, date, status, marked_by, created_at
		FROM attendance_records
		WHERE ` + where + `
		ORDER BY date DESC
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.AttendanceRecord{}
	for rows.Next() {
		var a domain.AttendanceRecord
		if err := rows.Scan(&a.AttendanceID, &a.HostelID, &a.StudentID, &a.Date, &a.Status, &a.MarkedBy, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &a)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) CreateAttendance(ctx context.Context, hostelID string, a *domain.AttendanceRecord) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO attendance_records (hostel_id, student_id, date, status, marked_by)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING attendance_id::text`,
		hostelID, a.StudentID, a.Date, a.Status, a.MarkedBy,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRecordsRepository) UpdateAttendance(ctx context.Context, hostelID, attendanceID string, a *domain.AttendanceRecord) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attendance_records SET status = $3, marked_by = $4
		 WHERE hostel_id = $1 AND attendance_id = $2`,
		hostelID, attendanceID, a.Status, a.MarkedBy,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

func (r *PostgresRecordsRepository) DeleteAttendance(ctx context.Context, hostelID, attendanceID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM attendance_records WHERE hostel_id = $1 AND attendance_id = $2`,
		hostelID, attendanceID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- complaints ----

func (r *PostgresRecordsRepository) ListComplaints(ctx context.Context, hostelID, status string, page, size int) ([]*domain.Complaint, int, error) {
	if hostelID == "" {
		return []*domain.Complaint{}, 0, nil
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
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM complaints WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT complaint_id::text, hostel_id::text, student_id::text, room_id::text, category, description, status, resolved_at, created_at
		FROM complaints
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.Complaint{}
	for rows.Next() {
		var c domain.Complaint
		if err := rows.Scan(&c.ComplaintID, &c.HostelID, &c.StudentID, &c.RoomID, &c.Category, &c.Description, &c.Status, &c.ResolvedAt, &c.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &c)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) GetComplaint(ctx context.Context, hostelID, complaintID string) (*domain.Complaint, error) {
	var c domain.Complaint
	err := r.db.QueryRowContext(ctx,
		`SELECT complaint_id::text, hostel_id::text, student_id::text, room_id::text, category, description, status, resolved_at, created_at
		 FROM complaints
		 WHERE hostel_id = $1 AND complaint_id = $2`,
		hostelID, complaintID,
	).Scan(&c.ComplaintID, &c.HostelID, &c.StudentID, &c.RoomID, &c.Category, &c.Description, &c.Status, &c.ResolvedAt, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresRecordsRepository) CreateComplaint(ctx context.Context, hostelID string, c *domain.Complaint) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO complaints (hostel_id, student_id, room_id, category, description, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING complaint_id::text`,
		hostelID, c.StudentID, c.RoomID, c.Category, c.Description, c.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRecordsRepository) UpdateComplaint(ctx context.Context, hostelID, complaintID string, c *domain.Complaint) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE complaints
		 SET category = $3, description = $4, status = $5, resolved_at = $6
		 WHERE hostel_id = $1 AND complaint_id = $2`,
		hostelID, complaintID, c.Category, c.Description, c.Status, c.ResolvedAt,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

func (r *PostgresRecordsRepository) DeleteComplaint(ctx context.Context, hostelID, complaintID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM complaints WHERE hostel_id = $1 AND complaint_id = $2`, hostelID, complaintID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- staff ----

func (r *PostgresRecordsRepository) ListStaff(ctx context.Context, hostelID, role string, page, size int) ([]*domain.StaffMember, int, error) {
	if hostelID == "" {
		return []*domain.StaffMember{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if role != "" {
		where += fmt.Sprintf(" AND role = $%d", argIdx)
		args = append(args, role)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT staff_id::text, hostel_id::text, full_name, role, phone, status, created_at
		FROM staff
		WHERE ` + where + `
		ORDER BY full_name
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.StaffMember{}
	for rows.Next() {
		var s domain.StaffMember
		if err := rows.Scan(&s.StaffID, &s.HostelID, &s.FullName, &s.Role, &s.Phone, &s.Status, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &s)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) CreateStaff(ctx context.Context, hostelID string, s *domain.StaffMember) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO staff (hostel_id, full_name, role, phone, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING staff_id::text`,
		hostelID, s.FullName, s.Role, s.Phone, s.Status,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRecordsRepository) UpdateStaff(ctx context.Context, hostelID, staffID string, s *domain.StaffMember) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE staff SET full_name = $3, role = $4, phone = $5, status = $6
		 WHERE hostel_id = $1 AND staff_id = $2`,
		hostelID, staffID, s.FullName, s.Role, s.Phone, s.Status,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

func (r *PostgresRecordsRepository) DeleteStaff(ctx context.Context, hostelID, staffID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM staff WHERE hostel_id = $1 AND staff_id = $2`, hostelID, staffID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- visitors ----

func (r *PostgresRecordsRepository) ListVisitors(ctx context.Context, hostelID, studentID string, page, size int) ([]*domain.VisitorLog, int, error) {
	if hostelID == "" {
		return []*domain.VisitorLog{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if studentID != "" {
		where += fmt.Sprintf(" AND student_id = $%d", argIdx)
		args = append(args, studentID)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visitor_logs WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT visitor_id::text, hostel_id::text, student_id::text, visitor_name, relation, phone, check_in, check_out, created_at
		FROM visitor_logs
		WHERE ` + where + `
		ORDER BY check_in DESC
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.VisitorLog{}
	for rows.Next() {
		var v domain.VisitorLog
		if err := rows.Scan(&v.VisitorID, &v.HostelID, &v.StudentID, &v.VisitorName, &v.Relation, &v.Phone, &v.CheckIn, &v.CheckOut, &v.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &v)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) CreateVisitor(ctx context.Context, hostelID string, v *domain.VisitorLog) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO visitor_logs (hostel_id, student_id, visitor_name, relation, phone, check_in)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING visitor_id::text`,
		hostelID, v.StudentID, v.VisitorName, v.Relation, v.Phone, v.CheckIn,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRecordsRepository) CheckOutVisitor(ctx context.Context, hostelID, visitorID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE visitor_logs SET check_out = $3
		 WHERE hostel_id = $1 AND visitor_id = $2 AND check_out IS NULL`,
		hostelID, visitorID, at,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

func (r *PostgresRecordsRepository) DeleteVisitor(ctx context.Context, hostelID, visitorID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM visitor_logs WHERE hostel_id = $1 AND visitor_id = $2`, hostelID, visitorID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- leaves ----

func (r *PostgresRecordsRepository) ListLeaves(ctx context.Context, hostelID, studentID, status string, page, size int) ([]*domain.LeaveRequest, int, error) {
	if hostelID == "" {
		return []*domain.LeaveRequest{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if studentID != "" {
		where += fmt.Sprintf(" AND student_id = $%d", argIdx)
		args = append(args, studentID)
		argIdx++
	}
	if status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM leave_requests WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT leave_id::text, hostel_id::text, student_id::text, from_date, to_date, reason, status, approved_by::text, created_at
		FROM leave_requests
		WHERE ` + where + `
		ORDER BY created_at DESC
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.LeaveRequest{}
	for rows.Next() {
		var l domain.LeaveRequest
		if err := rows.Scan(&l.LeaveID, &l.HostelID, &l.StudentID, &l.FromDate, &l.ToDate, &l.Reason, &l.Status, &l.ApprovedBy, &l.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &l)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) GetLeave(ctx context.Context, hostelID, leaveID string) (*domain.LeaveRequest, error) {
	var l domain.LeaveRequest
	err := r.db.QueryRowContext(ctx,
		`SELECT leave_id::text, hostel_id::text, student_id::text, from_date, to_date, reason, status, approved_by::text, created_at
		 FROM leave_requests
		 WHERE hostel_id = $1 AND leave_id = $2`,
		hostelID, leaveID,
	).Scan(&l.LeaveID, &l.HostelID, &l.StudentID, &l.FromDate, &l.ToDate, &l.Reason, &l.Status, &l.ApprovedBy, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresRecordsRepository) CreateLeave(ctx context.Context, hostelID string, l *domain.LeaveRequest) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO leave_requests (hostel_id, student_id, from_date, to_date, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING leave_id::text`,
		hostelID, l.StudentID, l.FromDate, l.ToDate, l.Reason, domain.LeavePending,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRecordsRepository) SetLeaveStatus(ctx context.Context, hostelID, leaveID, status, approvedBy string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE leave_requests
		 SET status = $3, approved_by = $4
		 WHERE hostel_id = $1 AND leave_id = $2 AND status = $5`,
		hostelID, leaveID, status, approvedBy, domain.LeavePending,
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

func (r *PostgresRecordsRepository) DeleteLeave(ctx context.Context, hostelID, leaveID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM leave_requests WHERE hostel_id = $1 AND leave_id = $2`, hostelID, leaveID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- inventory ----

func (r *PostgresRecordsRepository) ListInventory(ctx context.Context, hostelID, roomID string, page, size int) ([]*domain.InventoryItem, int, error) {
	if hostelID == "" {
		return []*domain.InventoryItem{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if roomID != "" {
		where += fmt.Sprintf(" AND room_id = $%d", argIdx)
		args = append(args, roomID)
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory_items WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT item_id::text, hostel_id::text, room_id::text, item_name, quantity, condition, created_at, updated_at
		FROM inventory_items
		WHERE ` + where + `
		ORDER BY item_name
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.InventoryItem{}
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ItemID, &it.HostelID, &it.RoomID, &it.ItemName, &it.Quantity, &it.Condition, &it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &it)
	}
	return out, total, rows.Err()
}

func (r *PostgresRecordsRepository) CreateInventoryItem(ctx context.Context, hostelID string, it *domain.InventoryItem) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO inventory_items (hostel_id, room_id, item_name, quantity, condition)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING item_id::text`,
		hostelID, it.RoomID, it.ItemName, it.Quantity, it.Condition,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRecordsRepository) UpdateInventoryItem(ctx context.Context, hostelID, itemID string, it *domain.InventoryItem) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE inventory_items
		 SET room_id = $3, item_name = $4, quantity = $5, condition = $6, updated_at = NOW()
		 WHERE hostel_id = $1 AND item_id = $2`,
		hostelID, itemID, it.RoomID, it.ItemName, it.Quantity, it.Condition,
	)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

func (r *PostgresRecordsRepository) DeleteInventoryItem(ctx context.Context, hostelID, itemID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM inventory_items WHERE hostel_id = $1 AND item_id = $2`, hostelID, itemID)
	if err != nil {
		return err
	}
	return rowsAffectedOrNoRows(res)
}

// ---- reports ----

func (r *PostgresRecordsRepository) OccupancySummary(ctx context.Context, hostelID string) (*OccupancySummary, error) {
	if hostelID == "" {
		return nil, fmt.Errorf("hostel_id is required")
	}

	var s OccupancySummary
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'available'),
			COUNT(*) FILTER (WHERE status = 'partially_occupied'),
			COUNT(*) FILTER (WHERE status = 'occupied'),
			COUNT(*) FILTER (WHERE status = 'maintenance'),
			COALESCE(SUM(capacity), 0),
			COALESCE(SUM(current_occupancy), 0)
		 FROM rooms
		 WHERE hostel_id = $1`,
		hostelID,
	).Scan(&s.TotalRooms, &s.Available, &s.PartiallyOccupied, &s.Occupied, &s.Maintenance, &s.TotalCapacity, &s.TotalOccupancy)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresRecordsRepository) FeeSummary(ctx context.Context, hostelID string) (*FeeSummary, error) {
	if hostelID == "" {
		return nil, fmt.Errorf("hostel_id is required")
	}

	var s FeeSummary
	err := r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(amount) FILTER (WHERE status = 'due'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
			COALESCE(SUM(amount) FILTER (WHERE status = 'overdue'), 0)
		 FROM fee_records
		 WHERE hostel_id = $1`,
		hostelID,
	).Scan(&s.TotalDue, &s.TotalPaid, &s.TotalOverdue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
