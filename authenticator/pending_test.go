package authenticator

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPendingAuthStoreTakeRemoves(t *testing.T) {
	store := NewPendingAuthStore(PendingAuthTTL)
	store.Put(&PendingAuth{State: "s1", Verifier: "v1", Platform: PlatformTwitter})

	got, ok := store.Take("s1")
	assert.True(t, ok)
	assert.Equal(t, "v1", got.Verifier)
	assert.Equal(t, PlatformTwitter, got.Platform)

	_, ok = store.Take("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestPendingAuthStoreExpiry(t *testing.T) {
	now := time.Now()
	store := NewPendingAuthStore(10 * time.Minute)
	store.now = func() time.Time { return now }

	store.Put(&PendingAuth{State: "old", Verifier: "v", Platform: PlatformLinkedIn})

	// Just inside the window the entry is still redeemable.
	store.now = func() time.Time { return now.Add(9 * time.Minute) }
	store.Put(&PendingAuth{State: "fresh", Verifier: "v2", Platform: PlatformTwitter})
	assert.Equal(t, 2, store.Len())

	// Past the window the abandoned entry is gone, both on Take and on the
	// opportunistic prune during Put.
	store.now = func() time.Time { return now.Add(11 * time.Minute) }
	_, ok := store.Take("old")
	assert.False(t, ok)

	store.Put(&PendingAuth{State: "newer", Verifier: "v3", Platform: PlatformTwitter, CreatedAt: store.now()})
	_, ok = store.Take("fresh")
	assert.True(t, ok)
}

func TestPendingAuthStoreConcurrentUse(t *testing.T) {
	store := NewPendingAuthStore(PendingAuthTTL)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			state := fmt.Sprintf("state-%d", n)
			store.Put(&PendingAuth{State: state, Verifier: "v", Platform: PlatformTwitter})
			_, ok := store.Take(state)
			assert.True(t, ok)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, store.Len())
}
