package domain

import "context"

// FeaturedSpeaker is the derived "speaker with the most sessions" cache entry
// for one conference. SessionNames lists every session of that speaker in
// appearance order. The entry holds no source-of-truth data and is always
// safe to evict and recompute.
// swagger:model FeaturedSpeaker
type FeaturedSpeaker struct {
	SpeakerKey   string   `json:"speaker_key"`
	SessionNames []string `json:"session_names"`
}

// FeaturedSpeakerService derives and serves the featured speaker of a
// conference.
type FeaturedSpeakerService interface {
	// Recompute scans all sessions of the conference, picks the speaker with
	// the most appearances (first seen wins ties) and writes the cache entry.
	// With no speakered sessions it clears the entry instead. Recompute is
	// idempotent; it normally runs from the work queue.
	Recompute(ctx context.Context, conferenceID string) (*FeaturedSpeaker, error)
	// Get is a pure cache read; (nil, nil) when no featured speaker is set.
	Get(ctx context.Context, conferenceID string) (*FeaturedSpeaker, error)
}
