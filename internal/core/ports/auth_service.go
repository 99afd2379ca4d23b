package ports

import (
	"context"
	"time"

	"github.com/bizsites/website-builder/internal/core/domain"
)

// Session is an issued admin session token.
type Session struct {
	Token     string
	ID        string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	CreateAdmin(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	Logout(ctx context.Context, sessionID string, expiresAt time.Time) error
}

// TokenRevoker records session tokens invalidated before their expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, id string, until time.Time) error
	IsRevoked(ctx context.Context, id string) (bool, error)
}
