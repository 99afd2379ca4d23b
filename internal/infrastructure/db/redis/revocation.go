package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Revoker keeps logged-out session ids until their tokens would have expired.
// Key format: revoked:session:<jti>
type Revoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewRevoker(client *redis.Client) *Revoker {
	return &Revoker{client: client, now: time.Now}
}

// Revoke stores id with a TTL that ends at until. Already expired sessions
// are not recorded.
func (r *Revoker) Revoke(ctx context.Context, id string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, key(id), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

func (r *Revoker) IsRevoked(ctx context.Context, id string) (bool, error) {
	n, err := r.client.Exists(ctx, key(id)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// Ping reports whether the revocation store is reachable.
func (r *Revoker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func key(id string) string {
	return "revoked:session:" + id
}
