package service

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"

	"go.uber.org/zap"
)

// RoomService manages rooms. current_occupancy and status are owned by the
// reconciler; callers can only influence status through the maintenance
// flag, which freezes derivation while set.
type RoomService interface {
	ListRooms(ctx context.Context, req ListRoomsRequest) (*ListRoomsResponse, error)
	GetRoom(ctx context.Context, req GetRoomRequest) (*domain.Room, error)
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error)
	UpdateRoom(ctx context.Context, req UpdateRoomRequest) error
	DeleteRoom(ctx context.Context, req DeleteRoomRequest) error
	SetMaintenance(ctx context.Context, req SetMaintenanceRequest) error
}

type roomService struct {
	roomsRepo    repository.RoomsRepository
	studentsRepo repository.StudentsRepository
	occupancy    OccupancyService
	logger       *zap.Logger
}

func NewRoomService(
	roomsRepo repository.RoomsRepository,
	studentsRepo repository.StudentsRepository,
	occupancy OccupancyService,
	logger *zap.Logger,
) RoomService {
	return &roomService{
		roomsRepo:    roomsRepo,
		studentsRepo: studentsRepo,
		occupancy:    occupancy,
		logger:       logger,
	}
}

// ============================================
// Request/Response DTOs
// ============================================

type ListRoomsRequest struct {
	HostelID string
	Filters  repository.RoomFilters
	Page     int
	PageSize int
}

type ListRoomsResponse struct {
	Rooms    []*domain.Room `json:"rooms"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

type GetRoomRequest struct {
	HostelID string
	RoomID   string
}

type CreateRoomRequest struct {
	HostelID    string
	RoomNumber  string
	RoomType    string
	Floor       string
	Capacity    int
	MonthlyRent float64
}

type CreateRoomResponse struct {
	RoomID string `json:"room_id"`
}

// UpdateRoomRequest carries partial updates; nil means unchanged.
type UpdateRoomRequest struct {
	HostelID string
	RoomID   string

	RoomNumber  *string
	RoomType    *string
	Floor       *string
	Capacity    *int
	MonthlyRent *float64
}

type DeleteRoomRequest struct {
	HostelID string
	RoomID   string
}

type SetMaintenanceRequest struct {
	HostelID    string
	RoomID      string
	Maintenance bool
}

// ============================================
// Implementation
// ============================================

func (s *roomService) ListRooms(ctx context.Context, req ListRoomsRequest) (*ListRoomsResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	rooms, total, err := s.roomsRepo.ListRooms(ctx, req.HostelID, req.Filters, req.Page, req.PageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return &ListRoomsResponse{
		Rooms:    rooms,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

func (s *roomService) GetRoom(ctx context.Context, req GetRoomRequest) (*domain.Room, error) {
	room, err := s.roomsRepo.GetRoom(ctx, req.HostelID, req.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("room not found")
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (s *roomService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*CreateRoomResponse, error) {
	if req.RoomNumber == "" {
		return nil, fmt.Errorf("room_number is required")
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("capacity must not be negative")
	}

	exists, err := s.roomsRepo.RoomNumberExists(ctx, req.HostelID, req.RoomNumber, "")
	if err != nil {
		return nil, fmt.Errorf("failed to check room_number: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("room_number already exists: %s", req.RoomNumber)
	}

	room := &domain.Room{
		RoomNumber: req.RoomNumber,
		RoomType:   nullString(req.RoomType),
		Floor:      nullString(req.Floor),
		Capacity:   req.Capacity,
		Status:     domain.RoomStatusAvailable,
	}
	if req.MonthlyRent > 0 {
		room.MonthlyRent = sql.NullFloat64{Float64: req.MonthlyRent, Valid: true}
	}

	roomID, err := s.roomsRepo.CreateRoom(ctx, req.HostelID, room)
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	s.logger.Info("room created",
		zap.String("hostel_id", req.HostelID),
		zap.String("room_id", roomID),
		zap.String("room_number", req.RoomNumber),
	)

	return &CreateRoomResponse{RoomID: roomID}, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, req UpdateRoomRequest) error {
	room, err := s.roomsRepo.GetRoom(ctx, req.HostelID, req.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("room not found")
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	if req.RoomNumber != nil && *req.RoomNumber != room.RoomNumber {
		exists, err := s.roomsRepo.RoomNumberExists(ctx, req.HostelID, *req.RoomNumber, req.RoomID)
		if err != nil {
			return fmt.Errorf("failed to check room_number: %w", err)
		}
		if exists {
			return fmt.Errorf("room_number already exists: %s", *req.RoomNumber)
		}
		room.RoomNumber = *req.RoomNumber
	}
	if req.RoomType != nil {
		room.RoomType = nullString(*req.RoomType)
	}
	if req.Floor != nil {
		room.Floor = nullString(*req.Floor)
	}
	capacityChanged := false
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return fmt.Errorf("capacity must not be negative")
		}
		capacityChanged = *req.Capacity != room.Capacity
		room.Capacity = *req.Capacity
	}
	if req.MonthlyRent != nil {
		if *req.MonthlyRent > 0 {
			room.MonthlyRent = sql.NullFloat64{Float64: *req.MonthlyRent, Valid: true}
		} else {
			room.MonthlyRent = sql.NullFloat64{}
		}
	}

	if err := s.roomsRepo.UpdateRoom(ctx, req.HostelID, req.RoomID, room); err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}

	// A capacity change can flip the derived status without any student
	// moving, so rederive.
	if capacityChanged {
		s.occupancy.Reconcile(ctx, req.HostelID, req.RoomID)
	}

	return nil
}

// DeleteRoom refuses while any active student still lives in the room.
func (s *roomService) DeleteRoom(ctx context.Context, req DeleteRoomRequest) error {
	count, err := s.studentsRepo.CountActiveByRoom(ctx, req.HostelID, req.RoomID)
	if err != nil {
		return fmt.Errorf("failed to count room occupants: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("room still has %d active students", count)
	}

	if err := s.roomsRepo.DeleteRoom(ctx, req.HostelID, req.RoomID); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("room not found")
		}
		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.logger.Info("room deleted",
		zap.String("hostel_id", req.HostelID),
		zap.String("room_id", req.RoomID),
	)

	return nil
}

// SetMaintenance sets or clears the maintenance override. Setting it writes
// the status directly; clearing it hands the status back to the reconciler.
func (s *roomService) SetMaintenance(ctx context.Context, req SetMaintenanceRequest) error {
	room, err := s.roomsRepo.GetRoom(ctx, req.HostelID, req.RoomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("room not found")
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	if req.Maintenance {
		if room.Status == domain.RoomStatusMaintenance {
			return nil
		}
		room.Status = domain.RoomStatusMaintenance
		if err := s.roomsRepo.UpdateRoom(ctx, req.HostelID, req.RoomID, room); err != nil {
			return fmt.Errorf("failed to set maintenance: %w", err)
		}
	} else {
		if room.Status != domain.RoomStatusMaintenance {
			return nil
		}
		room.Status = domain.DeriveRoomStatus(room.CurrentOccupancy, room.Capacity)
		if err := s.roomsRepo.UpdateRoom(ctx, req.HostelID, req.RoomID, room); err != nil {
			return fmt.Errorf("failed to clear maintenance: %w", err)
		}
		// Occupancy may have drifted while frozen; recount now.
		s.occupancy.Reconcile(ctx, req.HostelID, req.RoomID)
	}

	s.logger.Info("room maintenance flag changed",
		zap.String("hostel_id", req.HostelID),
		zap.String("room_id", req.RoomID),
		zap.Bool("maintenance", req.Maintenance),
	)

	return nil
}
