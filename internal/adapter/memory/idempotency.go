package memory

import (
	"context"
	"sync"
	"time"
)

// IdempotencyKeys is the in-process fallback for the redis idempotency store.
type IdempotencyKeys struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[string]time.Time
	now  func() time.Time
}

func NewIdempotencyKeys(ttl time.Duration) *IdempotencyKeys {
	return &IdempotencyKeys{
		ttl:  ttl,
		seen: make(map[string]time.Time),
		now:  time.Now,
	}
}

func (k *IdempotencyKeys) Claim(_ context.Context, key string) (bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	for existing, expires := range k.seen {
		if now.After(expires) {
			delete(k.seen, existing)
		}
	}
	if _, ok := k.seen[key]; ok {
		return false, nil
	}
	k.seen[key] = now.Add(k.ttl)
	return true, nil
}

func (k *IdempotencyKeys) Release(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.seen, key)
	return nil
}
