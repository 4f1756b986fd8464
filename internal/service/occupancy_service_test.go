package service

import (
	"context"
	"testing"

	"hostel-data/internal/domain"
	"hostel-data/internal/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testHostelID = "hostel-1"

type testEnv struct {
	store     *repository.MemoryStore
	occupancy OccupancyService
	rooms     RoomService
	students  StudentService
	transfers TransferService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := repository.NewMemoryStore()
	log := zap.NewNop()
	occupancy := NewOccupancyService(store, log)
	return &testEnv{
		store:     store,
		occupancy: occupancy,
		rooms:     NewRoomService(store, store, occupancy, log),
		students:  NewStudentService(store, store, occupancy, log),
		transfers: NewTransferService(store, store, store, occupancy, log),
	}
}

func (e *testEnv) createRoom(t *testing.T, number string, capacity int) string {
	t.Helper()
	resp, err := e.rooms.CreateRoom(context.Background(), CreateRoomRequest{
		HostelID:   testHostelID,
		RoomNumber: number,
		Capacity:   capacity,
	})
	require.NoError(t, err)
	return resp.RoomID
}

func (e *testEnv) createStudent(t *testing.T, admissionNo, roomID string) string {
	t.Helper()
	resp, err := e.students.CreateStudent(context.Background(), CreateStudentRequest{
		HostelID:    testHostelID,
		AdmissionNo: admissionNo,
		FullName:    "Student " + admissionNo,
		RoomID:      roomID,
	})
	require.NoError(t, err)
	return resp.StudentID
}

func (e *testEnv) room(t *testing.T, roomID string) *domain.Room {
	t.Helper()
	room, err := e.store.GetRoom(context.Background(), testHostelID, roomID)
	require.NoError(t, err)
	return room
}

func TestReconcileAssignAndDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "A-101", 2)

	s1 := env.createStudent(t, "ADM-001", roomID)
	room := env.room(t, roomID)
	require.Equal(t, 1, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusPartiallyOccupied, room.Status)

	env.createStudent(t, "ADM-002", roomID)
	room = env.room(t, roomID)
	require.Equal(t, 2, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusOccupied, room.Status)

	err := env.students.DeleteStudent(ctx, DeleteStudentRequest{HostelID: testHostelID, StudentID: s1})
	require.NoError(t, err)
	room = env.room(t, roomID)
	require.Equal(t, 1, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusPartiallyOccupied, room.Status)
}

func TestReconcileCountsOnlyActiveStudents(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "A-102", 3)
	s1 := env.createStudent(t, "ADM-010", roomID)
	env.createStudent(t, "ADM-011", roomID)

	inactive := domain.StudentStatusInactive
	err := env.students.UpdateStudent(ctx, UpdateStudentRequest{
		HostelID:  testHostelID,
		StudentID: s1,
		Status:    &inactive,
	})
	require.NoError(t, err)

	room := env.room(t, roomID)
	require.Equal(t, 1, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusPartiallyOccupied, room.Status)

	active := domain.StudentStatusActive
	err = env.students.UpdateStudent(ctx, UpdateStudentRequest{
		HostelID:  testHostelID,
		StudentID: s1,
		Status:    &active,
	})
	require.NoError(t, err)
	require.Equal(t, 2, env.room(t, roomID).CurrentOccupancy)
}

func TestMaintenanceFreezesStatusNotOccupancy(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "B-201", 1)
	err := env.rooms.SetMaintenance(ctx, SetMaintenanceRequest{
		HostelID:    testHostelID,
		RoomID:      roomID,
		Maintenance: true,
	})
	require.NoError(t, err)

	env.createStudent(t, "ADM-020", roomID)

	room := env.room(t, roomID)
	require.Equal(t, 1, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusMaintenance, room.Status)

	// Clearing the override hands the status back to derivation.
	err = env.rooms.SetMaintenance(ctx, SetMaintenanceRequest{
		HostelID: testHostelID,
		RoomID:   roomID,
	})
	require.NoError(t, err)
	room = env.room(t, roomID)
	require.Equal(t, 1, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusOccupied, room.Status)
}

func TestZeroCapacityRoomReconcilesToAvailable(t *testing.T) {
	env := newTestEnv(t)

	roomID := env.createRoom(t, "C-301", 0)
	env.occupancy.Reconcile(context.Background(), testHostelID, roomID)

	room := env.room(t, roomID)
	require.Equal(t, 0, room.CurrentOccupancy)
	require.Equal(t, domain.RoomStatusAvailable, room.Status)
}

func TestReconcileMissingRoomIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	// Must not panic or error out.
	env.occupancy.Reconcile(context.Background(), testHostelID, "no-such-room")
	env.occupancy.Reconcile(context.Background(), "", "")
}

func TestReconcileIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "D-401", 2)
	env.createStudent(t, "ADM-030", roomID)

	env.occupancy.Reconcile(ctx, testHostelID, roomID)
	first := env.room(t, roomID)
	env.occupancy.Reconcile(ctx, testHostelID, roomID)
	second := env.room(t, roomID)

	require.Equal(t, first.CurrentOccupancy, second.CurrentOccupancy)
	require.Equal(t, first.Status, second.Status)
}

func TestAllocateRoomMovesBetweenRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomA := env.createRoom(t, "E-501", 2)
	roomB := env.createRoom(t, "E-502", 2)
	studentID := env.createStudent(t, "ADM-040", roomA)

	err := env.students.AllocateRoom(ctx, AllocateRoomRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
		RoomID:    roomB,
	})
	require.NoError(t, err)

	require.Equal(t, 0, env.room(t, roomA).CurrentOccupancy)
	require.Equal(t, domain.RoomStatusAvailable, env.room(t, roomA).Status)
	require.Equal(t, 1, env.room(t, roomB).CurrentOccupancy)
	require.Equal(t, domain.RoomStatusPartiallyOccupied, env.room(t, roomB).Status)

	// Vacating clears the assignment and empties the room.
	err = env.students.AllocateRoom(ctx, AllocateRoomRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
	})
	require.NoError(t, err)
	require.Equal(t, 0, env.room(t, roomB).CurrentOccupancy)

	student, err := env.store.GetStudent(ctx, testHostelID, studentID)
	require.NoError(t, err)
	require.False(t, student.RoomID.Valid)
}

func TestAllocateIntoFullRoomRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "F-601", 1)
	env.createStudent(t, "ADM-050", roomID)
	other := env.createStudent(t, "ADM-051", "")

	err := env.students.AllocateRoom(ctx, AllocateRoomRequest{
		HostelID:  testHostelID,
		StudentID: other,
		RoomID:    roomID,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "full")
	require.Equal(t, 1, env.room(t, roomID).CurrentOccupancy)
}

func TestCapacityChangeRederivesStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "G-701", 4)
	env.createStudent(t, "ADM-060", roomID)
	env.createStudent(t, "ADM-061", roomID)
	require.Equal(t, domain.RoomStatusPartiallyOccupied, env.room(t, roomID).Status)

	capacity := 2
	err := env.rooms.UpdateRoom(ctx, UpdateRoomRequest{
		HostelID: testHostelID,
		RoomID:   roomID,
		Capacity: &capacity,
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoomStatusOccupied, env.room(t, roomID).Status)
}

func TestDuplicateAdmissionNoRejected(t *testing.T) {
	env := newTestEnv(t)

	env.createStudent(t, "ADM-070", "")
	_, err := env.students.CreateStudent(context.Background(), CreateStudentRequest{
		HostelID:    testHostelID,
		AdmissionNo: "ADM-070",
		FullName:    "Duplicate",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "admission_no")
}

func TestDeleteRoomWithOccupantsRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomID := env.createRoom(t, "H-801", 2)
	env.createStudent(t, "ADM-080", roomID)

	err := env.rooms.DeleteRoom(ctx, DeleteRoomRequest{HostelID: testHostelID, RoomID: roomID})
	require.Error(t, err)

	_, err = env.store.GetRoom(ctx, testHostelID, roomID)
	require.NoError(t, err)
}
