package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bizsites/website-builder/internal/core/domain"
)

func TestAuthRepository_CreateAndFind(t *testing.T) {
	repo := NewAuthRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Username: "root", PasswordHash: "h", Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := repo.FindByUsername(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = repo.Create(ctx, &domain.User{Username: "root"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRevoker(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := NewRevoker()
	r.now = func() time.Time { return now }
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti", now.Add(time.Hour)))
	revoked, err = r.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Hour)
	revoked, err = r.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
