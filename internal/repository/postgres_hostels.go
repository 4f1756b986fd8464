package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hostel-data/internal/domain"
)

type PostgresHostelsRepository struct {
	db *sql.DB
}

func NewPostgresHostelsRepository(db *sql.DB) *PostgresHostelsRepository {
	return &PostgresHostelsRepository{db: db}
}

const hostelColumns = `
	hostel_id::text,
	hostel_name,
	address,
	warden,
	phone,
	status,
	created_at,
	updated_at`

func scanHostel(row interface{ Scan(...any) error }) (*domain.Hostel, error) {
	var h domain.Hostel
	err := row.Scan(
		&h.HostelID,
		&h.HostelName,
		&h.Address,
		&h.Warden,
		&h.Phone,
		&h.Status,
		&h.CreatedAt,
		&h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *PostgresHostelsRepository) ListHostels(ctx context.Context) ([]*domain.Hostel, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT`+hostelColumns+` FROM hostels ORDER BY hostel_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Hostel{}
	for rows.Next() {
		h, err := scanHostel(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *PostgresHostelsRepository) GetHostel(ctx context.Context, hostelID string) (*domain.Hostel, error) {
	if hostelID == "" {
		return nil, fmt.Errorf("hostel_id is required")
	}
	return scanHostel(r.db.QueryRowContext(ctx,
		`SELECT`+hostelColumns+` FROM hostels WHERE hostel_id = $1`, hostelID))
}

func (r *PostgresHostelsRepository) CreateHostel(ctx context.Context, h *domain.Hostel) (string, error) {
	if h == nil {
		return "", fmt.Errorf("hostel is required")
	}

	var hostelID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO hostels (hostel_name, address, warden, phone, status)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING hostel_id::text`,
		h.HostelName, h.Address, h.Warden, h.Phone, h.Status,
	).Scan(&hostelID)
	if err != nil {
		return "", err
	}
	return hostelID, nil
}

func (r *PostgresHostelsRepository) UpdateHostel(ctx context.Context, hostelID string, h *domain.Hostel) error {
	if hostelID == "" {
		return fmt.Errorf("hostel_id is required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE hostels
		 SET hostel_name = $2, address = $3, warden = $4, phone = $5, status = $6, updated_at = NOW()
		 WHERE hostel_id = $1`,
		hostelID, h.HostelName, h.Address, h.Warden, h.Phone, h.Status,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *PostgresHostelsRepository) DeleteHostel(ctx context.Context, hostelID string) error {
	if hostelID == "" {
		return fmt.Errorf("hostel_id is required")
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM hostels WHERE hostel_id = $1`, hostelID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// PostgresUsersRepository persists login accounts.
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

const userColumns = `
	user_id::text,
	hostel_id::text,
	user_account,
	password_hash,
	nickname,
	role,
	status,
	created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.HostelID,
		&u.UserAccount,
		&u.PasswordHash,
		&u.Nickname,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsersRepository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT`+userColumns+` FROM users WHERE user_id = $1`, userID))
}

func (r *PostgresUsersRepository) GetUserByAccount(ctx context.Context, userAccount string) (*domain.User, error) {
	if userAccount == "" {
		return nil, fmt.Errorf("user_account is required")
	}
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT`+userColumns+` FROM users WHERE user_account = $1`, userAccount))
}

func (r *PostgresUsersRepository) UpsertUser(ctx context.Context, u *domain.User) (string, error) {
	if u == nil {
		return "", fmt.Errorf("user is required")
	}

	var userID string
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (hostel_id, user_account, password_hash, nickname, role, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_account)
		 DO UPDATE SET password_hash = EXCLUDED.password_hash,
		               nickname = EXCLUDED.nickname,
		               role = EXCLUDED.role,
		               status = EXCLUDED.status
		 RETURNING user_id::text`,
		u.HostelID, u.UserAccount, u.PasswordHash, u.Nickname, u.Role, u.Status,
	).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}
