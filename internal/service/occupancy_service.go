package service

import (
	"context"
	"database/sql"
	"errors"

	"hostel-data/internal/repository"

	"go.uber.org/zap"
)

// OccupancyService is the room occupancy reconciler. It is the single
// authority over rooms.current_occupancy and rooms.status: every write path
// that can change which active students sit in a room calls Reconcile for
// that room instead of touching the columns itself.
//
// Reconcile never fails the caller. The primary write (student insert,
// transfer approval, ...) has already committed by the time reconciliation
// runs; a failure here leaves the room stale until the next reconciliation
// touches it, which is preferable to failing a request whose primary effect
// already happened. Errors are logged and swallowed, including the room
// having vanished in between.
type OccupancyService interface {
	Reconcile(ctx context.Context, hostelID, roomID string)
	ReconcileRooms(ctx context.Context, hostelID string, roomIDs ...string)
}

type occupancyService struct {
	roomsRepo repository.RoomsRepository
	logger    *zap.Logger
}

func NewOccupancyService(roomsRepo repository.RoomsRepository, logger *zap.Logger) OccupancyService {
	return &occupancyService{
		roomsRepo: roomsRepo,
		logger:    logger,
	}
}

// Reconcile recounts the room's active students and stores occupancy and
// derived status (status stays frozen while the room is under maintenance).
// Idempotent; safe to call for rooms that no longer exist.
func (s *occupancyService) Reconcile(ctx context.Context, hostelID, roomID string) {
	if hostelID == "" || roomID == "" {
		return
	}

	occupancy, status, err := s.roomsRepo.ReconcileOccupancy(ctx, hostelID, roomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("Reconcile: room no longer exists, skipping",
				zap.String("hostel_id", hostelID),
				zap.String("room_id", roomID),
			)
			return
		}
		s.logger.Error("Reconcile failed, room occupancy left stale",
			zap.String("hostel_id", hostelID),
			zap.String("room_id", roomID),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("room reconciled",
		zap.String("hostel_id", hostelID),
		zap.String("room_id", roomID),
		zap.Int("occupancy", occupancy),
		zap.String("status", status),
	)
}

// ReconcileRooms reconciles each distinct non-empty room id once. Used by
// the workflows that touch two rooms (update, allocation, transfer).
func (s *occupancyService) ReconcileRooms(ctx context.Context, hostelID string, roomIDs ...string) {
	seen := map[string]bool{}
	for _, roomID := range roomIDs {
		if roomID == "" || seen[roomID] {
			continue
		}
		seen[roomID] = true
		s.Reconcile(ctx, hostelID, roomID)
	}
}
