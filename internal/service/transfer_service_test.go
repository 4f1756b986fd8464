package service

import (
	"context"
	"testing"

	"hostel-data/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestTransferApproveMovesStudentAndReconcilesBothRooms(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomA := env.createRoom(t, "T-101", 2)
	roomC := env.createRoom(t, "T-102", 2)
	studentID := env.createStudent(t, "ADM-100", roomA)

	resp, err := env.transfers.CreateTransfer(ctx, CreateTransferRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
		ToRoomID:  roomC,
		Reason:    "closer to the mess hall",
	})
	require.NoError(t, err)

	err = env.transfers.ApproveTransfer(ctx, ApproveTransferRequest{
		HostelID:   testHostelID,
		RequestID:  resp.RequestID,
		ApprovedBy: "warden-1",
	})
	require.NoError(t, err)

	student, err := env.store.GetStudent(ctx, testHostelID, studentID)
	require.NoError(t, err)
	require.True(t, student.RoomID.Valid)
	require.Equal(t, roomC, student.RoomID.String)

	require.Equal(t, 0, env.room(t, roomA).CurrentOccupancy)
	require.Equal(t, domain.RoomStatusAvailable, env.room(t, roomA).Status)
	require.Equal(t, 1, env.room(t, roomC).CurrentOccupancy)
	require.Equal(t, domain.RoomStatusPartiallyOccupied, env.room(t, roomC).Status)

	transfer, err := env.store.GetTransfer(ctx, testHostelID, resp.RequestID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusApproved, transfer.Status)
	require.Equal(t, "warden-1", transfer.ApprovedBy.String)
}

func TestTransferRejectLeavesEverythingUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomA := env.createRoom(t, "T-201", 2)
	roomB := env.createRoom(t, "T-202", 2)
	studentID := env.createStudent(t, "ADM-110", roomA)

	resp, err := env.transfers.CreateTransfer(ctx, CreateTransferRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
		ToRoomID:  roomB,
	})
	require.NoError(t, err)

	err = env.transfers.RejectTransfer(ctx, RejectTransferRequest{
		HostelID:  testHostelID,
		RequestID: resp.RequestID,
	})
	require.NoError(t, err)

	student, err := env.store.GetStudent(ctx, testHostelID, studentID)
	require.NoError(t, err)
	require.Equal(t, roomA, student.RoomID.String)
	require.Equal(t, 1, env.room(t, roomA).CurrentOccupancy)
	require.Equal(t, 0, env.room(t, roomB).CurrentOccupancy)
}

func TestTransferTerminalTransitionsAreFinal(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomA := env.createRoom(t, "T-301", 2)
	roomB := env.createRoom(t, "T-302", 2)
	studentID := env.createStudent(t, "ADM-120", roomA)

	resp, err := env.transfers.CreateTransfer(ctx, CreateTransferRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
		ToRoomID:  roomB,
	})
	require.NoError(t, err)

	approve := ApproveTransferRequest{
		HostelID:   testHostelID,
		RequestID:  resp.RequestID,
		ApprovedBy: "warden-1",
	}
	require.NoError(t, env.transfers.ApproveTransfer(ctx, approve))

	// A second approval loses the compare-and-set and must not move
	// anything again.
	err = env.transfers.ApproveTransfer(ctx, approve)
	require.Error(t, err)
	require.Contains(t, err.Error(), "not pending")

	err = env.transfers.RejectTransfer(ctx, RejectTransferRequest{
		HostelID:  testHostelID,
		RequestID: resp.RequestID,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not pending")

	transfer, err := env.store.GetTransfer(ctx, testHostelID, resp.RequestID)
	require.NoError(t, err)
	require.Equal(t, domain.TransferStatusApproved, transfer.Status)
	require.Equal(t, 1, env.room(t, roomB).CurrentOccupancy)
}

func TestTransferToFullRoomRejectedAtCreation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	roomA := env.createRoom(t, "T-401", 2)
	roomC := env.createRoom(t, "T-402", 1)
	studentID := env.createStudent(t, "ADM-130", roomA)
	env.createStudent(t, "ADM-131", roomA)
	env.createStudent(t, "ADM-132", roomC)

	_, err := env.transfers.CreateTransfer(ctx, CreateTransferRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
		ToRoomID:  roomC,
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "full")

	// No request persisted.
	transfers, total, err := env.store.ListTransfers(ctx, testHostelID, "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 0, total)
	require.Empty(t, transfers)
}

func TestTransferToCurrentRoomRejected(t *testing.T) {
	env := newTestEnv(t)

	roomA := env.createRoom(t, "T-501", 2)
	studentID := env.createStudent(t, "ADM-140", roomA)

	_, err := env.transfers.CreateTransfer(context.Background(), CreateTransferRequest{
		HostelID:  testHostelID,
		StudentID: studentID,
		ToRoomID:  roomA,
	})
	require.Error(t, err)
}

func TestRejectMissingTransferReportsNotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.transfers.RejectTransfer(context.Background(), RejectTransferRequest{
		HostelID:  testHostelID,
		RequestID: "no-such-request",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not found")
}
