package cache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

func TestMemoryCache_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	key := domain.CacheKey{Kind: domain.CacheKindFeaturedSpeaker, ID: "conf-1"}

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, key, []byte(`{"speaker_key":"spk-1"}`)))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"speaker_key":"spk-1"}`, string(got))

	// Mutating the returned slice must not affect the stored entry.
	got[0] = 'X'
	again, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, byte('{'), again[0])

	require.NoError(t, c.Delete(ctx, key))
	_, ok, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryCache_DeleteAbsentKey(t *testing.T) {
	c := NewMemoryCache()
	require.NoError(t, c.Delete(context.Background(), domain.CacheKey{Kind: "x", ID: "y"}))
}

func TestMemoryCache_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	key := domain.CacheKey{Kind: domain.CacheKindAnnouncement, ID: "recent"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, key, []byte(`"announcement"`))
		}()
		go func() {
			defer wg.Done()
			_, _, _ = c.Get(ctx, key)
		}()
	}
	wg.Wait()

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `"announcement"`, string(got))
}
