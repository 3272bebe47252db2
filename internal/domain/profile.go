package domain

import (
	"context"
	"time"
)

// Shirt size preference values stored on a profile.
const (
	ShirtSizeNotSpecified = "NOT_SPECIFIED"
)

// Profile represents a user of the system. Profiles own conferences and
// carry the user's conference registrations and session wishlist.
// swagger:model Profile
type Profile struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	DisplayName  string `json:"display_name"`
	TeeShirtSize string `json:"tee_shirt_size"`
	// ConferenceKeysToAttend holds the conferences the user is registered
	// for, in registration order. A key appears at most once.
	ConferenceKeysToAttend []string `json:"conference_keys_to_attend"`
	// SessionWishlist holds the sessions the user marked as interested.
	// A key appears at most once.
	SessionWishlist []string  `json:"session_wishlist"`
	PasswordHash    string    `json:"-"`
	PasswordSalt    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewProfile returns a new Profile with the given fields. ID is typically set
// by the repository on create.
func NewProfile(email, displayName, teeShirtSize string, createdAt, updatedAt time.Time) *Profile {
	return &Profile{
		Email:        email,
		DisplayName:  displayName,
		TeeShirtSize: teeShirtSize,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// ProfileRepository defines the interface for profile storage.
type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	// UpdatePreferences updates display name and shirt size only.
	UpdatePreferences(ctx context.Context, id, displayName, teeShirtSize string) (*Profile, error)
}

// ProfileService defines the business logic for user profiles.
type ProfileService interface {
	// GetProfile returns the caller's profile, creating it lazily on first
	// access with default preferences.
	GetProfile(ctx context.Context, callerID, callerEmail string) (*Profile, error)
	// SaveProfile updates the caller's display name and/or shirt size.
	// Empty values leave the current value unchanged.
	SaveProfile(ctx context.Context, callerID, callerEmail, displayName, teeShirtSize string) (*Profile, error)
}
