package repository

import (
	"context"

	"hostel-data/internal/domain"
)

// TransfersRepository persists room transfer requests.
//
// MarkApproved and MarkRejected are compare-and-set transitions: they only
// take effect while the request is still pending and report false otherwise.
// This is what keeps terminal states terminal under concurrent approvers.
type TransfersRepository interface {
	ListTransfers(ctx context.Context, hostelID string, status string, page, size int) ([]*domain.RoomTransferRequest, int, error)
	GetTransfer(ctx context.Context, hostelID, requestID string) (*domain.RoomTransferRequest, error)
	CreateTransfer(ctx context.Context, hostelID string, req *domain.RoomTransferRequest) (string, error)
	MarkApproved(ctx context.Context, hostelID, requestID, approvedBy string) (bool, error)
	MarkRejected(ctx context.Context, hostelID, requestID string) (bool, error)
}
