package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveRoomStatus(t *testing.T) {
	cases := []struct {
		name      string
		occupancy int
		capacity  int
		want      string
	}{
		{"empty room", 0, 4, RoomStatusAvailable},
		{"negative occupancy clamps to available", -1, 4, RoomStatusAvailable},
		{"partially filled", 2, 4, RoomStatusPartiallyOccupied},
		{"one short of capacity", 3, 4, RoomStatusPartiallyOccupied},
		{"exactly full", 4, 4, RoomStatusOccupied},
		{"over capacity still occupied", 5, 4, RoomStatusOccupied},
		{"zero capacity empty", 0, 0, RoomStatusAvailable},
		{"zero capacity with occupants", 2, 0, RoomStatusPartiallyOccupied},
		{"single bed occupied", 1, 1, RoomStatusOccupied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, DeriveRoomStatus(tc.occupancy, tc.capacity))
		})
	}
}

func TestHasVacancy(t *testing.T) {
	require.True(t, (&Room{Capacity: 2, CurrentOccupancy: 1}).HasVacancy())
	require.False(t, (&Room{Capacity: 2, CurrentOccupancy: 2}).HasVacancy())
	require.False(t, (&Room{Capacity: 0, CurrentOccupancy: 0}).HasVacancy())
}
