package domain

import (
	"database/sql"
)

// Room statuses. Maintenance is an operator override: it freezes the stored
// status but the occupancy count keeps being recomputed underneath it.
const (
	RoomStatusAvailable         = "available"
	RoomStatusPartiallyOccupied = "partially_occupied"
	RoomStatusOccupied          = "occupied"
	RoomStatusMaintenance       = "maintenance"
)

// Room domain model (rooms table).
type Room struct {
	RoomID           string         `db:"room_id"`
	HostelID         string         `db:"hostel_id"`
	RoomNumber       string         `db:"room_number"`
	RoomType         sql.NullString `db:"room_type"`
	Floor            sql.NullString `db:"floor"`
	Capacity         int            `db:"capacity"`
	CurrentOccupancy int            `db:"current_occupancy"`
	Status           string         `db:"status"`
	MonthlyRent      sql.NullFloat64 `db:"monthly_rent"`
	CreatedAt        sql.NullTime   `db:"created_at"`
	UpdatedAt        sql.NullTime   `db:"updated_at"`
}

// DeriveRoomStatus maps (occupancy, capacity) to a room status. This is the
// single authority for status derivation; nothing else writes rooms.status.
// Occupancy above capacity still reports occupied (capacity may have been
// lowered after students were assigned). A zero-capacity room with no
// occupants is available, not occupied.
func DeriveRoomStatus(occupancy, capacity int) string {
	switch {
	case occupancy <= 0:
		return RoomStatusAvailable
	case capacity > 0 && occupancy >= capacity:
		return RoomStatusOccupied
	default:
		return RoomStatusPartiallyOccupied
	}
}

// HasVacancy reports whether one more student fits. Used by assignment and
// transfer validation; never applied retroactively to existing occupants.
func (r *Room) HasVacancy() bool {
	return r.CurrentOccupancy < r.Capacity
}
