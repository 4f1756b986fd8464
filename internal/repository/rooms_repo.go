package repository

import (
	"context"

	"hostel-data/internal/domain"
)

// RoomsRepository persists rooms. Strongly typed domain models, no
// map[string]any.
//
// ReconcileOccupancy is the storage half of the occupancy reconciler: it
// recounts active students assigned to the room and writes
// current_occupancy, deriving status unless the room is under maintenance.
// Implementations must run the count-and-write atomically (row lock in
// Postgres, store mutex in memory) so concurrent writers cannot undercount.
// A missing room returns sql.ErrNoRows; the caller decides whether that is
// fatal.
type RoomsRepository interface {
	ListRooms(ctx context.Context, hostelID string, filters RoomFilters, page, size int) ([]*domain.Room, int, error)
	GetRoom(ctx context.Context, hostelID, roomID string) (*domain.Room, error)
	CreateRoom(ctx context.Context, hostelID string, room *domain.Room) (string, error)
	UpdateRoom(ctx context.Context, hostelID, roomID string, room *domain.Room) error
	DeleteRoom(ctx context.Context, hostelID, roomID string) error

	// RoomNumberExists checks the per-hostel room number uniqueness rule.
	// excludeRoomID skips the room being updated ("" for creates).
	RoomNumberExists(ctx context.Context, hostelID, roomNumber, excludeRoomID string) (bool, error)

	ReconcileOccupancy(ctx context.Context, hostelID, roomID string) (occupancy int, status string, err error)
}

// RoomFilters room list query filters.
type RoomFilters struct {
	Status   string
	RoomType string
	Floor    string
	Search   string // fuzzy match on room_number
}
