package repository

import (
	"context"
	"database/sql"

	"hostel-data/internal/domain"
)

// StudentsRepository persists students.
type StudentsRepository interface {
	ListStudents(ctx context.Context, hostelID string, filters StudentFilters, page, size int) ([]*domain.Student, int, error)
	GetStudent(ctx context.Context, hostelID, studentID string) (*domain.Student, error)
	CreateStudent(ctx context.Context, hostelID string, student *domain.Student) (string, error)
	UpdateStudent(ctx context.Context, hostelID, studentID string, student *domain.Student) error
	DeleteStudent(ctx context.Context, hostelID, studentID string) error

	// SetStudentRoom moves only the room assignment (allocation and transfer
	// approval paths). An invalid NullString clears the assignment.
	SetStudentRoom(ctx context.Context, hostelID, studentID string, roomID sql.NullString) error

	// AdmissionNoExists checks the per-hostel admission number uniqueness
	// rule. excludeStudentID skips the student being updated ("" for creates).
	AdmissionNoExists(ctx context.Context, hostelID, admissionNo, excludeStudentID string) (bool, error)

	// CountActiveByRoom counts students with status=active assigned to the
	// room. Reporting only; the reconciler recounts inside its own
	// transaction.
	CountActiveByRoom(ctx context.Context, hostelID, roomID string) (int, error)
}

// StudentFilters student list query filters.
type StudentFilters struct {
	Status string
	RoomID string
	Course string
	Search string // fuzzy match on full_name, admission_no
}
