package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizsites/website-builder/internal/core/domain"
	"github.com/bizsites/website-builder/internal/core/ports"
)

// AuthService implements admin bootstrap, login and logout.
type AuthService struct {
	repo       ports.AuthRepository
	revoker    ports.TokenRevoker
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(repo ports.AuthRepository, revoker ports.TokenRevoker, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, revoker: revoker, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// CreateAdmin stores a new administrator with a bcrypt password hash.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
}

// Login verifies the credentials and issues a signed session token. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueSession(user)
}

// Logout revokes the session until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, sessionID string, expiresAt time.Time) error {
	if sessionID == "" {
		return nil
	}
	return s.revoker.Revoke(ctx, sessionID, expiresAt)
}

func (s *AuthService) issueSession(user *domain.User) (*ports.Session, error) {
	id := uuid.NewString()
	exp := time.Now().Add(s.sessionTTL)

	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"jti":      id,
		"username": user.Username,
		"role":     user.Role,
		"exp":      exp.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &ports.Session{Token: signed, ID: id, ExpiresAt: time.Unix(exp.Unix(), 0), User: user}, nil
}
