package memory

import (
	"context"
	"sync"
	"time"
)

// Revoker is a process-local session denylist for deployments without Redis.
// Expired entries are dropped lazily on lookup.
type Revoker struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

func NewRevoker() *Revoker {
	return &Revoker{now: time.Now, revoked: make(map[string]time.Time)}
}

func (r *Revoker) Revoke(_ context.Context, id string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[id] = until
	return nil
}

func (r *Revoker) IsRevoked(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[id]
	if !ok {
		return false, nil
	}
	if !r.now().Before(until) {
		delete(r.revoked, id)
		return false, nil
	}
	return true, nil
}
