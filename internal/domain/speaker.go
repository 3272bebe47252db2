package domain

import (
	"context"
	"time"
)

// Speaker represents a speaker. Speakers are free-standing entities with no
// ancestor; sessions reference them by key and a speaker is not deleted when
// no session references it.
// swagger:model Speaker
type Speaker struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	Biography   string    `json:"biography"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewSpeaker returns a new Speaker with the given fields. ID is typically set
// by the repository on create.
func NewSpeaker(displayName, biography string, createdAt, updatedAt time.Time) *Speaker {
	return &Speaker{
		DisplayName: displayName,
		Biography:   biography,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// SpeakerRepository defines the interface for speaker storage.
type SpeakerRepository interface {
	Create(ctx context.Context, speaker *Speaker) error
	GetByID(ctx context.Context, id string) (*Speaker, error)
	ListAll(ctx context.Context) ([]*Speaker, error)
}

// SpeakerService defines the business logic for speakers.
type SpeakerService interface {
	// AddSpeaker creates a speaker. Display name is required.
	AddSpeaker(ctx context.Context, callerID string, speaker *Speaker) (*Speaker, error)
	GetSpeaker(ctx context.Context, speakerID string) (*Speaker, error)
	GetAllSpeakers(ctx context.Context) ([]*Speaker, error)
}
