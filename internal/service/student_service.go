package service

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"

	"go.uber.org/zap"
)

// StudentService manages student records and their room assignments.
// Every path that changes a student's room or active status hands the
// affected rooms to the reconciler afterwards.
type StudentService interface {
	ListStudents(ctx context.Context, req ListStudentsRequest) (*ListStudentsResponse, error)
	GetStudent(ctx context.Context, req GetStudentRequest) (*domain.Student, error)
	CreateStudent(ctx context.Context, req CreateStudentRequest) (*CreateStudentResponse, error)
	UpdateStudent(ctx context.Context, req UpdateStudentRequest) error
	DeleteStudent(ctx context.Context, req DeleteStudentRequest) error
	AllocateRoom(ctx context.Context, req AllocateRoomRequest) error
}

type studentService struct {
	studentsRepo repository.StudentsRepository
	roomsRepo    repository.RoomsRepository
	occupancy    OccupancyService
	logger       *zap.Logger
}

func NewStudentService(
	studentsRepo repository.StudentsRepository,
	roomsRepo repository.RoomsRepository,
	occupancy OccupancyService,
	logger *zap.Logger,
) StudentService {
	return &studentService{
		studentsRepo: studentsRepo,
		roomsRepo:    roomsRepo,
		occupancy:    occupancy,
		logger:       logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

type ListStudentsRequest struct {
	HostelID string
	Filters  repository.StudentFilters
	Page     int
	PageSize int
}

type ListStudentsResponse struct {
	Students []*domain.Student `json:"students"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

type GetStudentRequest struct {
	HostelID  string
	StudentID string
}

type CreateStudentRequest struct {
	HostelID      string
	AdmissionNo   string
	FullName      string
	Email         string
	Phone         string
	GuardianName  string
	GuardianPhone string
	Course        string
	RoomID        string // optional, assign on admission
}

type CreateStudentResponse struct {
	StudentID string `json:"student_id"`
}

// UpdateStudentRequest carries partial updates. Nil pointers mean
// "leave unchanged"; RoomID set to the empty string unassigns the student.
type UpdateStudentRequest struct {
	HostelID  string
	StudentID string

	FullName      *string
	Email         *string
	Phone         *string
	GuardianName  *string
	GuardianPhone *string
	Course        *string
	Status        *string
	RoomID        *string
}

type DeleteStudentRequest struct {
	HostelID  string
	StudentID string
}

type AllocateRoomRequest struct {
	HostelID  string
	StudentID string
	RoomID    string // empty string vacates the student
}

// ============================================
// Implementation
// ============================================

func (s *studentService) ListStudents(ctx context.Context, req ListStudentsRequest) (*ListStudentsResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	students, total, err := s.studentsRepo.ListStudents(ctx, req.HostelID, req.Filters, req.Page, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	return &ListStudentsResponse{
		Students: students,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *studentService) GetStudent(ctx context.Context, req GetStudentRequest) (*domain.Student, error) {
	student, err := s.studentsRepo.GetStudent(ctx, req.HostelID, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student not found")
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return student, nil
}

func (s *studentService) CreateStudent(ctx context.Context, req CreateStudentRequest) (*CreateStudentResponse, error) {
	if req.FullName == "" {
		return nil, fmt.Errorf("full_name is required")
	}
	if req.AdmissionNo == "" {
		return nil, fmt.Errorf("admission_no is required")
	}

	exists, err := s.studentsRepo.AdmissionNoExists(ctx, req.HostelID, req.AdmissionNo, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check admission_no: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("admission_no already exists: %s", req.AdmissionNo)
	}

	student := &domain.Student{
		AdmissionNo: req.AdmissionNo,
		FullName:    req.FullName,
		Status:      domain.StudentStatusActive,
	}
	student.Email = nullString(req.Email)
	student.Phone = nullString(req.Phone)
	student.GuardianName = nullString(req.GuardianName)
	student.GuardianPhone = nullString(req.GuardianPhone)
	student.Course = nullString(req.Course)

	if req.RoomID != "" {
		if err := s.checkRoomAssignable(ctx, req.HostelID, req.RoomID); err != nil {
			return nil, err
		}
		student.RoomID = sql.NullString{String: req.RoomID, Valid: true}
	}

	studentID, err := s.studentsRepo.CreateStudent(ctx, req.HostelID, student)
	if err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}

	if req.RoomID != "" {
		s.occupancy.Reconcile(ctx, req.HostelID, req.RoomID)
	}

	s.logger.Info("student created",
		zap.String("hostel_id", req.HostelID),
		zap.String("student_id", studentID),
		zap.String("admission_no", req.AdmissionNo),
	)

	return &CreateStudentResponse{StudentID: studentID}, nil
}

func (s *studentService) UpdateStudent(ctx context.Context, req UpdateStudentRequest) error {
	student, err := s.studentsRepo.GetStudent(ctx, req.HostelID, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("student not found")
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	oldRoomID := ""
	if student.RoomID.Valid {
		oldRoomID = student.RoomID.String
	}

	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = nullString(*req.Email)
	}
	if req.Phone != nil {
		student.Phone = nullString(*req.Phone)
	}
	if req.GuardianName != nil {
		student.GuardianName = nullString(*req.GuardianName)
	}
	if req.GuardianPhone != nil {
		student.GuardianPhone = nullString(*req.GuardianPhone)
	}
	if req.Course != nil {
		student.Course = nullString(*req.Course)
	}
	if req.Status != nil {
		if *req.Status != domain.StudentStatusActive && *req.Status != domain.StudentStatusInactive {
			return fmt.Errorf("invalid status: %s", *req.Status)
		}
		student.Status = *req.Status
	}

	newRoomID := oldRoomID
	if req.RoomID != nil {
		newRoomID = *req.RoomID
		if newRoomID != "" && newRoomID != oldRoomID {
			if err := s.checkRoomAssignable(ctx, req.HostelID, newRoomID); err != nil {
				return err
			}
		}
		if newRoomID == "" {
			student.RoomID = sql.NullString{}
		} else {
			student.RoomID = sql.NullString{String: newRoomID, Valid: true}
		}
	}

	if err := s.studentsRepo.UpdateStudent(ctx, req.HostelID, req.StudentID, student); err != nil {
		return fmt.Errorf("failed to update student: %w", err)
	}

	// A status flip changes the active head count even when the room id
	// did not move, so always reconcile both ends.
	s.occupancy.ReconcileRooms(ctx, req.HostelID, oldRoomID, newRoomID)

	return nil
}

func (s *studentService) DeleteStudent(ctx context.Context, req DeleteStudentRequest) error {
	student, err := s.studentsRepo.GetStudent(ctx, req.HostelID, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("student not found")
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	if err := s.studentsRepo.DeleteStudent(ctx, req.HostelID, req.StudentID); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}

	if student.RoomID.Valid {
		s.occupancy.Reconcile(ctx, req.HostelID, student.RoomID.String)
	}

	s.logger.Info("student deleted",
		zap.String("hostel_id", req.HostelID),
		zap.String("student_id", req.StudentID),
	)

	return nil
}

// AllocateRoom moves a student into a room (or out of all rooms when
// RoomID is empty) and reconciles both ends of the move.
func (s *studentService) AllocateRoom(ctx context.Context, req AllocateRoomRequest) error {
	student, err := s.studentsRepo.GetStudent(ctx, req.HostelID, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("student not found")
		}
		return fmt.Errorf("failed to get student: %w", err)
	}

	oldRoomID := ""
	if student.RoomID.Valid {
		oldRoomID = student.RoomID.String
	}
	if oldRoomID == req.RoomID {
		return nil // already there
	}

	var roomID sql.NullString
	if req.RoomID != "" {
		if err := s.checkRoomAssignable(ctx, req.HostelID, req.RoomID); err != nil {
			return err
		}
		roomID = sql.NullString{String: req.RoomID, Valid: true}
	}

	if err := s.studentsRepo.SetStudentRoom(ctx, req.HostelID, req.StudentID, roomID); err != nil {
		return fmt.Errorf("failed to assign room: %w", err)
	}

	s.occupancy.ReconcileRooms(ctx, req.HostelID, oldRoomID, req.RoomID)

	s.logger.Info("student room assignment changed",
		zap.String("hostel_id", req.HostelID),
		zap.String("student_id", req.StudentID),
		zap.String("from_room", oldRoomID),
		zap.String("to_room", req.RoomID),
	)

	return nil
}

// checkRoomAssignable verifies the room exists and has at least one free
// slot. Rooms under maintenance still accept assignments; the override only
// freezes the displayed status, not the head count.
func (s *studentService) checkRoomAssignable(ctx context.Context, hostelID, roomID string) error {
	room, err := s.roomsRepo.GetRoom(ctx, hostelID, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("room not found: %s", roomID)
		}
		return fmt.Errorf("failed to get room: %w", err)
	}
	if !room.HasVacancy() {
		return fmt.Errorf("room is full: %s", room.RoomNumber)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
