package session

import (
	"context"
	"sync"
	"time"
)

// UserResolver resolves an access token to its user.
type UserResolver interface {
	User(ctx context.Context, token string) (*User, error)
}

// CachedResolver wraps a UserResolver with TTL-based caching.
// This avoids a round-trip to the identity service on every request.
type CachedResolver struct {
	inner UserResolver
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

type cacheEntry struct {
	user      User
	expiresAt time.Time
}

// NewCachedResolver wraps a resolver with caching. A non-positive ttl
// disables caching.
func NewCachedResolver(inner UserResolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Resolve returns the user for token, using the cache when possible.
// Failures are never cached.
func (r *CachedResolver) Resolve(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	r.mu.RLock()
	entry, ok := r.cache[token]
	r.mu.RUnlock()

	if ok && r.now().Before(entry.expiresAt) {
		u := entry.user
		return &u, nil
	}

	user, err := r.inner.User(ctx, token)
	if err != nil {
		if ok {
			r.Invalidate(token)
		}
		return nil, err
	}
	if r.ttl <= 0 {
		return user, nil
	}

	r.mu.Lock()
	r.cache[token] = &cacheEntry{user: *user, expiresAt: r.now().Add(r.ttl)}
	r.mu.Unlock()

	return user, nil
}

// Invalidate drops a token, e.g. on sign-out.
func (r *CachedResolver) Invalidate(token string) {
	r.mu.Lock()
	delete(r.cache, token)
	r.mu.Unlock()
}

// Prune removes expired entries. The server calls it periodically so
// abandoned tokens do not accumulate.
func (r *CachedResolver) Prune() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k, e := range r.cache {
		if !now.Before(e.expiresAt) {
			delete(r.cache, k)
			n++
		}
	}
	return n
}
