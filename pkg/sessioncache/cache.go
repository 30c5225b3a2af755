// Package sessioncache tracks live and revoked authentication sessions in memory.
//
// Two independent bounded caches back the auth flow:
//
//   - live: username → id (jti) of the currently valid token. Writing
//     overwrites any prior entry, which is what enforces the
//     at-most-one-session-per-user policy.
//   - revoked: token id → marker for tokens invalidated by logout before
//     their natural expiry. Token ids are unique per issued token, so a
//     fresh session can never collide with an old revocation record.
//
// Both caches evict least-recently-used entries past capacity and expire
// entries after the token validity window, so an unbounded stream of
// logins/logouts stays memory-bounded. Entries have a fixed TTL from insert;
// reads never extend it (no sliding expiration).
//
// The store is process-local. In a multi-replica deployment a revoked session
// may remain valid on another replica until its own cache entry expires —
// a known consistency gap, not a bug.
package sessioncache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultSize matches the bound the service has always run with.
const DefaultSize = 5000

// Store holds the live and revoked session caches.
// Construct one in main and inject it; there is no package-level singleton,
// so tests get isolated instances and replicas own their state explicitly.
type Store struct {
	live    *expirable.LRU[string, string]
	revoked *expirable.LRU[string, struct{}]
}

// New creates a Store where both caches hold at most size entries and each
// entry lives for ttl — the token validity window.
func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = DefaultSize
	}
	return &Store{
		live:    expirable.NewLRU[string, string](size, nil, ttl),
		revoked: expirable.NewLRU[string, struct{}](size, nil, ttl),
	}
}

// Activate records tokenID as username's current session, replacing any
// previous one.
func (s *Store) Activate(username, tokenID string) {
	s.live.Add(username, tokenID)
}

// Active reports whether username has a live, unexpired session.
// Get, not Contains: Contains skips the per-entry expiry check and would
// report stale entries as live until the background reaper removes them.
func (s *Store) Active(username string) bool {
	_, ok := s.live.Get(username)
	return ok
}

// TokenID returns the token id of username's live session.
func (s *Store) TokenID(username string) (string, bool) {
	return s.live.Get(username)
}

// Revoke marks tokenID as logged out and drops the live session entry.
// The revocation record outlives any newer session.
func (s *Store) Revoke(username, tokenID string) {
	s.revoked.Add(tokenID, struct{}{})
	s.live.Remove(username)
}

// Revoked reports whether tokenID was explicitly logged out.
// Same Get-over-Contains reasoning as Active.
func (s *Store) Revoked(tokenID string) bool {
	_, ok := s.revoked.Get(tokenID)
	return ok
}
