package domain

import "context"

// Cache entry kinds.
const (
	CacheKindFeaturedSpeaker = "featured_speaker"
	CacheKindAnnouncement    = "announcement"
)

// CacheKey identifies a cache entry by entity kind and entity ID.
type CacheKey struct {
	Kind string
	ID   string
}

// Cache is a get/set/delete store for derived values. Values are opaque
// bytes (callers JSON-encode); entries have no mandated expiry and may be
// evicted at any time.
type Cache interface {
	Get(ctx context.Context, key CacheKey) ([]byte, bool, error)
	Set(ctx context.Context, key CacheKey, value []byte) error
	Delete(ctx context.Context, key CacheKey) error
}
