package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizsites/website-builder/internal/core/domain"
)

type stubAuthRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type stubRevoker struct {
	revoked map[string]time.Time
}

func newStubRevoker() *stubRevoker {
	return &stubRevoker{revoked: make(map[string]time.Time)}
}

func (r *stubRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.revoked[id] = until
	return nil
}

func (r *stubRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := r.revoked[id]
	return ok, nil
}

func TestAuthService_CreateAdmin_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := NewAuthService(repo, newStubRevoker(), "secret", time.Hour)

	user, err := svc.CreateAdmin(context.Background(), "alice", "pass123")
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected role: %s", user.Role)
	}
	if user.ID == 0 {
		t.Fatalf("expected an assigned id")
	}
}

func TestAuthService_CreateAdmin_Validation(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubRevoker(), "secret", time.Hour)

	if _, err := svc.CreateAdmin(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.CreateAdmin(context.Background(), "bob", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_CreateAdmin_Duplicate(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubRevoker(), "secret", time.Hour)

	_, _ = svc.CreateAdmin(context.Background(), "bob", "pass")
	if _, err := svc.CreateAdmin(context.Background(), "bob", "pass2"); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubRevoker(), "secret", time.Hour)

	if _, err := svc.CreateAdmin(context.Background(), "carol", "s3cret"); err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	session, err := svc.Login(context.Background(), "carol", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if session.Token == "" || session.ID == "" {
		t.Fatalf("expected token and id, got %+v", session)
	}
	if session.User == nil || session.User.Username != "carol" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
	if session.ExpiresAt.Before(time.Now()) {
		t.Fatalf("session already expired: %v", session.ExpiresAt)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["jti"] != session.ID {
		t.Fatalf("jti %v does not match session id %s", claims["jti"], session.ID)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubRevoker(), "secret", time.Hour)

	_, _ = svc.CreateAdmin(context.Background(), "dave", "goodpass")
	if _, err := svc.Login(context.Background(), "dave", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubAuthRepo(), newStubRevoker(), "secret", time.Hour)

	if _, err := svc.Login(context.Background(), "ghost", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_RevokesSession(t *testing.T) {
	revoker := newStubRevoker()
	svc := NewAuthService(newStubAuthRepo(), revoker, "secret", time.Hour)
	exp := time.Now().Add(time.Hour)

	if err := svc.Logout(context.Background(), "session-1", exp); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "session-1"); !revoked {
		t.Fatalf("session should be revoked")
	}
	if !revoker.revoked["session-1"].Equal(exp) {
		t.Fatalf("revocation must last until the session expiry")
	}
}
