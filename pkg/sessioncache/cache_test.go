package sessioncache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateOverwrites(t *testing.T) {
	s := New(10, time.Minute)

	s.Activate("franz", "tok-1")
	s.Activate("franz", "tok-2")

	id, ok := s.TokenID("franz")
	require.True(t, ok)
	assert.Equal(t, "tok-2", id, "newer session must replace the older one")
	assert.True(t, s.Active("franz"))
}

func TestRevokeDropsLiveSession(t *testing.T) {
	s := New(10, time.Minute)

	s.Activate("franz", "tok-1")
	s.Revoke("franz", "tok-1")

	assert.False(t, s.Active("franz"))
	assert.True(t, s.Revoked("tok-1"))
	assert.False(t, s.Revoked("tok-2"), "revocation is per token id")
}

func TestRevocationOutlivesNewSession(t *testing.T) {
	s := New(10, time.Minute)

	s.Activate("franz", "tok-1")
	s.Revoke("franz", "tok-1")
	s.Activate("franz", "tok-2")

	assert.True(t, s.Revoked("tok-1"), "old token stays revoked after re-login")
	assert.False(t, s.Revoked("tok-2"))
}

func TestEntriesExpire(t *testing.T) {
	s := New(10, 20*time.Millisecond)

	s.Activate("franz", "tok-1")
	s.Revoke("mary", "tok-2")

	require.True(t, s.Active("franz"))
	require.True(t, s.Revoked("tok-2"))

	time.Sleep(60 * time.Millisecond)

	assert.False(t, s.Active("franz"), "live entry must expire with the token window")
	assert.False(t, s.Revoked("tok-2"), "revocation record expires once the token itself would")
}

// The predicates must honor per-entry expiry on their own: the library's
// background reaper sweeps in coarse buckets, so a just-expired entry can
// linger in the map long after its deadline.
func TestExpiryCheckedOnRead(t *testing.T) {
	s := New(10, 15*time.Millisecond)

	s.Activate("franz", "tok-1")
	s.Revoke("mary", "tok-2")

	// Past the TTL but almost certainly before any reaper sweep.
	time.Sleep(20 * time.Millisecond)

	assert.False(t, s.Active("franz"))
	_, ok := s.TokenID("franz")
	assert.False(t, ok)
	assert.False(t, s.Revoked("tok-2"))
}

func TestCapacityEviction(t *testing.T) {
	s := New(3, time.Minute)

	for i := 0; i < 4; i++ {
		s.Activate(fmt.Sprintf("user%d", i), fmt.Sprintf("tok-%d", i))
	}

	assert.False(t, s.Active("user0"), "least-recently-used entry evicted past capacity")
	assert.True(t, s.Active("user3"))
}

func TestZeroSizeFallsBackToDefault(t *testing.T) {
	s := New(0, time.Minute)
	s.Activate("franz", "tok-1")
	assert.True(t, s.Active("franz"))
}
