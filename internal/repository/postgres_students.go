package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
)

type PostgresStudentsRepository struct {
	db *sql.DB
}

func NewPostgresStudentsRepository(db *sql.DB) *PostgresStudentsRepository {
	return &PostgresStudentsRepository{db: db}
}

const studentColumns = `
	student_id::text,
	hostel_id::text,
	room_id::text,
	admission_no,
	full_name,
	email,
	phone,
	guardian_name,
	guardian_phone,
	course,
	status,
	admission_date,
	created_at,
	updated_at`

func scanStudent(row interface{ Scan(...any) error }) (*domain.Student, error) {
	var s domain.Student
	err := row.Scan(
		&s.StudentID,
		&s.HostelID,
		&s.RoomID,
		&s.AdmissionNo,
		&s.FullName,
		&s.Email,
		&s.Phone,
		&s.GuardianName,
		&s.GuardianPhone,
		&s.Course,
		&s.Status,
		&s.AdmissionDate,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresStudentsRepository) ListStudents(ctx context.Context, hostelID string, filters StudentFilters, page, size int) ([]*domain.Student, int, error) {
	if hostelID == "" {
		return []*domain.Student{}, 0, nil
	}

	where := "hostel_id = $1"
	args := []any{hostelID}
	argIdx := 2
	if filters.Status != "" {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filters.Status)
		argIdx++
	}
	if filters.RoomID != "" {
		where += fmt.Sprintf(" AND room_id = $%d", argIdx)
		args = append(args, filters.RoomID)
		argIdx++
	}
	if filters.Course != "" {
		where += fmt.Sprintf(" AND course = $%d", argIdx)
		args = append(args, filters.Course)
		argIdx++
	}
	if filters.Search != "" {
		where += fmt.Sprintf(" AND (full_name ILIKE $%d OR admission_no ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filters.Search+"%")
		argIdx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	q := `SELECT` + studentColumns + `
		FROM students
		WHERE ` + where + `
		ORDER BY full_name
		LIMIT $` + fmt.Sprintf("%d", argIdx) + ` OFFSET $` + fmt.Sprintf("%d", argIdx+1)
	args = append(args, size, (page-1)*size)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []*domain.Student{}
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	return out, total, rows.Err()
}

func (r *PostgresStudentsRepository) GetStudent(ctx context.Context, hostelID, studentID string) (*domain.Student, error) {
	if hostelID == "" || studentID == "" {
		return nil, fmt.Errorf("hostel_id and student_id are required")
	}

	q := `SELECT` + studentColumns + `
		FROM students
		WHERE hostel_id = $1 AND student_id = $2`
	return scanStudent(r.db.QueryRowContext(ctx, q, hostelID, studentID))
}

func (r *PostgresStudentsRepository) CreateStudent(ctx context.Context, hostelID string, s *domain.Student) (string, error) {
	if hostelID == "" {
		return "", fmt.Errorf("hostel_id is required")
	}
	if s == nil {
		return "", fmt.Errorf("student is required")
	}

	var studentID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO students (hostel_id, room_id, admission_no, full_name, email, phone, guardian_name, guardian_phone, course, status, admission_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING student_id::text`,
		hostelID,
		s.RoomID,
		s.AdmissionNo,
		s.FullName,
		s.Email,
		s.Phone,
		s.GuardianName,
		s.GuardianPhone,
		s.Course,
		s.Status,
		s.AdmissionDate,
	).Scan(&studentID)
	if err != nil {
		return "", err
	}
	return studentID, nil
}

func (r *PostgresStudentsRepository) UpdateStudent(ctx context.Context, hostelID, studentID string, s *domain.Student) error {
	if hostelID == "" || studentID == "" {
		return fmt.Errorf("hostel_id and student_id are required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE students
		 SET room_id = $3,
		     admission_no = $4,
		     full_name = $5,
		     email = $6,
		     phone = $7,
		     guardian_name = $8,
		     guardian_phone = $9,
		     course = $10,
		     status = $11,
		     updated_at = NOW()
		 WHERE hostel_id = $1 AND student_id = $2`,
		hostelID,
		studentID,
		s.RoomID,
		s.AdmissionNo,
		s.FullName,
		s.Email,
		s.Phone,
		s.GuardianName,
		s.GuardianPhone,
		s.Course,
		s.Status,
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

func (r *PostgresStudentsRepository) DeleteStudent(ctx context.Context, hostelID, studentID string) error {
	if hostelID == "" || studentID == "" {
		return fmt.Errorf("hostel_id and student_id are required")
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM students WHERE hostel_id = $1 AND student_id = $2`,
		hostelID, studentID,
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

func (r *PostgresStudentsRepository) SetStudentRoom(ctx context.Context, hostelID, studentID string, roomID sql.NullString) error {
	if hostelID == "" || studentID == "" {
		return fmt.Errorf("hostel_id and student_id are required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE students SET room_id = $3, updated_at = NOW()
		 WHERE hostel_id = $1 AND student_id = $2`,
		hostelID, studentID, roomID,
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

func (r *PostgresStudentsRepository) AdmissionNoExists(ctx context.Context, hostelID, admissionNo, excludeStudentID string) (bool, error) {
	query := `SELECT COUNT(*) FROM students WHERE hostel_id = $1 AND admission_no = $2`
	args := []any{hostelID, admissionNo}
	if excludeStudentID != "" {
		query += ` AND student_id <> $3`
		args = append(args, excludeStudentID)
	}

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *PostgresStudentsRepository) CountActiveByRoom(ctx context.Context, hostelID, roomID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM students
		 WHERE hostel_id = $1 AND room_id = $2 AND status = $3`,
		hostelID, roomID, domain.StudentStatusActive,
	).Scan(&n)
	return n, err
}
