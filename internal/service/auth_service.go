package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"hostel-data/internal/repository"
	"hostel-data/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Session lifetime in the KV store. Tokens are opaque uuids; everything the
// request pipeline needs (user, role, hostel) rides in the session payload
// so authenticated requests never hit the users table.
const sessionTTL = 24 * time.Hour

const sessionKeyPrefix = "session:"

// AuthService handles login, logout and token validation.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, token string) error
	ValidateToken(ctx context.Context, token string) (*Session, error)
}

type authService struct {
	usersRepo repository.UsersRepository
	kv        store.KV
	logger    *zap.Logger
}

func NewAuthService(usersRepo repository.UsersRepository, kv store.KV, logger *zap.Logger) AuthService {
	return &authService{
		usersRepo: usersRepo,
		kv:        kv,
		logger:    logger,
	}
}

// Session is the KV payload behind an access token.
type Session struct {
	UserID   string `json:"user_id"`
	HostelID string `json:"hostel_id"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	UserAccount string
	Password    string
	IPAddress   string
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	UserAccount string `json:"user_account"`
	Role        string `json:"role"`
	HostelID    string `json:"hostel_id,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
}

// HashPassword returns the hex sha256 of the password, the format stored in
// users.password_hash.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	account := strings.TrimSpace(req.UserAccount)
	if account == "" || req.Password == "" {
		return nil, fmt.Errorf("missing credentials")
	}

	user, err := s.usersRepo.GetUserByAccount(ctx, account)
	if err != nil {
		s.logger.Warn("login failed: account lookup",
			zap.String("user_account", account),
			zap.String("ip_address", req.IPAddress),
		)
		return nil, fmt.Errorf("invalid credentials")
	}
	if user.Status != "active" {
		s.logger.Warn("login failed: account disabled",
			zap.String("user_account", account),
			zap.String("ip_address", req.IPAddress),
		)
		return nil, fmt.Errorf("invalid credentials")
	}

	want := []byte(strings.ToLower(user.PasswordHash))
	got := []byte(HashPassword(req.Password))
	if subtle.ConstantTimeCompare(want, got) != 1 {
		s.logger.Warn("login failed: wrong password",
			zap.String("user_account", account),
			zap.String("ip_address", req.IPAddress),
		)
		return nil, fmt.Errorf("invalid credentials")
	}

	session := Session{
		UserID: user.UserID,
		Role:   user.Role,
	}
	if user.HostelID.Valid {
		session.HostelID = user.HostelID.String
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}

	token := uuid.NewString()
	if err := s.kv.Set(ctx, sessionKeyPrefix+token, string(payload), sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	s.logger.Info("user logged in",
		zap.String("user_id", user.UserID),
		zap.String("user_account", account),
		zap.String("role", user.Role),
		zap.String("ip_address", req.IPAddress),
	)

	resp := &LoginResponse{
		AccessToken: token,
		UserID:      user.UserID,
		UserAccount: user.UserAccount,
		Role:        user.Role,
		HostelID:    session.HostelID,
	}
	if user.Nickname.Valid {
		resp.Nickname = user.Nickname.String
	}
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.kv.Del(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, fmt.Errorf("missing token")
	}
	payload, err := s.kv.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		if err == store.ErrMiss {
			return nil, fmt.Errorf("invalid or expired token")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	var session Session
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}
