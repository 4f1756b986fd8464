package service

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"

	"go.uber.org/zap"
)

// TransferService manages the room transfer workflow: a pending request is
// either approved (student moves, both rooms reconciled) or rejected. The
// terminal transitions ride on the repository's compare-and-set, so two
// wardens racing on the same request resolve to exactly one winner.
type TransferService interface {
	ListTransfers(ctx context.Context, req ListTransfersRequest) (*ListTransfersResponse, error)
	GetTransfer(ctx context.Context, req GetTransferRequest) (*domain.RoomTransferRequest, error)
	CreateTransfer(ctx context.Context, req CreateTransferRequest) (*CreateTransferResponse, error)
	ApproveTransfer(ctx context.Context, req ApproveTransferRequest) error
	RejectTransfer(ctx context.Context, req RejectTransferRequest) error
}

type transferService struct {
	transfersRepo repository.TransfersRepository
	studentsRepo  repository.StudentsRepository
	roomsRepo     repository.RoomsRepository
	occupancy     OccupancyService
	logger        *zap.Logger
}

func NewTransferService(
	transfersRepo repository.TransfersRepository,
	studentsRepo repository.StudentsRepository,
	roomsRepo repository.RoomsRepository,
	occupancy OccupancyService,
	logger *zap.Logger,
) TransferService {
	return &transferService{
		transfersRepo: transfersRepo,
		studentsRepo:  studentsRepo,
		roomsRepo:     roomsRepo,
		occupancy:     occupancy,
		logger:        logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

type ListTransfersRequest struct {
	HostelID string
	Status   string // optional filter
	Page     int
	PageSize int
}

type ListTransfersResponse struct {
	Transfers []*domain.RoomTransferRequest `json:"transfers"`
	Total     int                           `json:"total"`
	Page      int                           `json:"page"`
	PageSize  int                           `json:"page_size"`
}

type GetTransferRequest struct {
	HostelID  string
	RequestID string
}

type CreateTransferRequest struct {
	HostelID  string
	StudentID string
	ToRoomID  string
	Reason    string
}

type CreateTransferResponse struct {
	RequestID string `json:"request_id"`
}

type ApproveTransferRequest struct {
	HostelID   string
	RequestID  string
	ApprovedBy string
}

type RejectTransferRequest struct {
	HostelID  string
	RequestID string
}

// ============================================
// Implementation
// ============================================

func (s *transferService) ListTransfers(ctx context.Context, req ListTransfersRequest) (*ListTransfersResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	transfers, total, err := s.transfersRepo.ListTransfers(ctx, req.HostelID, req.Status, req.Page, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer requests: %w", err)
	}

	return &ListTransfersResponse{
		Transfers: transfers,
		Total:     total,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}, nil
}

func (s *transferService) GetTransfer(ctx context.Context, req GetTransferRequest) (*domain.RoomTransferRequest, error) {
	transfer, err := s.transfersRepo.GetTransfer(ctx, req.HostelID, req.RequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("transfer request not found")
		}
		return nil, fmt.Errorf("failed to get transfer request: %w", err)
	}
	return transfer, nil
}

// CreateTransfer records a pending request. The destination must exist, be
// out of maintenance, have a free slot and differ from the student's
// current room. Validation here is advisory; approval revalidates nothing
// beyond the pending state, so a room filling up in between simply pushes
// it over capacity and the reconciler reports it occupied.
func (s *transferService) CreateTransfer(ctx context.Context, req CreateTransferRequest) (*CreateTransferResponse, error) {
	student, err := s.studentsRepo.GetStudent(ctx, req.HostelID, req.StudentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student not found")
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	if student.Status != domain.StudentStatusActive {
		return nil, fmt.Errorf("student is not active")
	}
	if student.RoomID.Valid && student.RoomID.String == req.ToRoomID {
		return nil, fmt.Errorf("student is already in the requested room")
	}

	room, err := s.roomsRepo.GetRoom(ctx, req.HostelID, req.ToRoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("destination room not found: %s", req.ToRoomID)
		}
		return nil, fmt.Errorf("failed to get destination room: %w", err)
	}
	if !room.HasVacancy() {
		return nil, fmt.Errorf("destination room is full: %s", room.RoomNumber)
	}

	transfer := &domain.RoomTransferRequest{
		StudentID:  req.StudentID,
		FromRoomID: student.RoomID,
		ToRoomID:   req.ToRoomID,
		Reason:     nullString(req.Reason),
		Status:     domain.TransferStatusPending,
	}

	requestID, err := s.transfersRepo.CreateTransfer(ctx, req.HostelID, transfer)
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer request: %w", err)
	}

	s.logger.Info("transfer request created",
		zap.String("hostel_id", req.HostelID),
		zap.String("request_id", requestID),
		zap.String("student_id", req.StudentID),
		zap.String("to_room_id", req.ToRoomID),
	)

	return &CreateTransferResponse{RequestID: requestID}, nil
}

// ApproveTransfer flips the request pending->approved, moves the student and
// reconciles every room involved. The flip happens first: once it commits
// the request is approved even if a later step fails, and the logs carry
// whatever remains to repair.
func (s *transferService) ApproveTransfer(ctx context.Context, req ApproveTransferRequest) error {
	transfer, err := s.transfersRepo.GetTransfer(ctx, req.HostelID, req.RequestID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("transfer request not found")
		}
		return fmt.Errorf("failed to get transfer request: %w", err)
	}

	won, err := s.transfersRepo.MarkApproved(ctx, req.HostelID, req.RequestID, req.ApprovedBy)
	if err != nil {
		return fmt.Errorf("failed to approve transfer request: %w", err)
	}
	if !won {
		return fmt.Errorf("transfer request is not pending")
	}

	// The student may have moved since the request was filed; their actual
	// current room needs reconciling too, not just the recorded source.
	currentRoomID := ""
	if student, err := s.studentsRepo.GetStudent(ctx, req.HostelID, transfer.StudentID); err == nil {
		if student.RoomID.Valid {
			currentRoomID = student.RoomID.String
		}
	}

	if err := s.studentsRepo.SetStudentRoom(ctx, req.HostelID, transfer.StudentID,
		sql.NullString{String: transfer.ToRoomID, Valid: true}); err != nil {
		s.logger.Error("transfer approved but student move failed",
			zap.String("hostel_id", req.HostelID),
			zap.String("request_id", req.RequestID),
			zap.String("student_id", transfer.StudentID),
			zap.Error(err),
		)
		return fmt.Errorf("failed to move student: %w", err)
	}

	fromRoomID := ""
	if transfer.FromRoomID.Valid {
		fromRoomID = transfer.FromRoomID.String
	}
	s.occupancy.ReconcileRooms(ctx, req.HostelID, currentRoomID, fromRoomID, transfer.ToRoomID)

	s.logger.Info("transfer request approved",
		zap.String("hostel_id", req.HostelID),
		zap.String("request_id", req.RequestID),
		zap.String("student_id", transfer.StudentID),
		zap.String("to_room_id", transfer.ToRoomID),
		zap.String("approved_by", req.ApprovedBy),
	)

	return nil
}

// RejectTransfer flips the request pending->rejected. No rooms change.
func (s *transferService) RejectTransfer(ctx context.Context, req RejectTransferRequest) error {
	won, err := s.transfersRepo.MarkRejected(ctx, req.HostelID, req.RequestID)
	if err != nil {
		return fmt.Errorf("failed to reject transfer request: %w", err)
	}
	if !won {
		// Either the request does not exist or it already reached a
		// terminal state; distinguish for the caller.
		if _, getErr := s.transfersRepo.GetTransfer(ctx, req.HostelID, req.RequestID); getErr == sql.ErrNoRows {
			return fmt.Errorf("transfer request not found")
		}
		return fmt.Errorf("transfer request is not pending")
	}

	s.logger.Info("transfer request rejected",
		zap.String("hostel_id", req.HostelID),
		zap.String("request_id", req.RequestID),
	)

	return nil
}
