package repository

import (
	"context"

	"hostel-data/internal/domain"
)

// HostelsRepository persists hostels (the tenant roots).
type HostelsRepository interface {
	ListHostels(ctx context.Context) ([]*domain.Hostel, error)
	GetHostel(ctx context.Context, hostelID string) (*domain.Hostel, error)
	CreateHostel(ctx context.Context, hostel *domain.Hostel) (string, error)
	UpdateHostel(ctx context.Context, hostelID string, hostel *domain.Hostel) error
	DeleteHostel(ctx context.Context, hostelID string) error
}

// UsersRepository persists staff/admin login accounts.
type UsersRepository interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByAccount(ctx context.Context, userAccount string) (*domain.User, error)
	UpsertUser(ctx context.Context, user *domain.User) (string, error)
}
