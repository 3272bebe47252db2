package domain

import "context"

// RegistrationRepository executes the registration and wishlist state
// transitions. Each method runs as a single all-or-nothing transaction; the
// seat check-and-decrement is serialized per conference so two concurrent
// registrations cannot both take the last seat.
type RegistrationRepository interface {
	// RegisterForConference moves (profile, conference) from absent to
	// present: appends the conference to the profile's registration list and
	// decrements seats_available. ErrNotFound when the conference does not
	// exist; ErrConflict on duplicate registration or zero seats.
	RegisterForConference(ctx context.Context, profileID, conferenceID string) error
	// UnregisterFromConference removes the registration and returns a seat.
	// ErrNotFound when the conference does not exist. Returns false without
	// error when the profile was not registered.
	UnregisterFromConference(ctx context.Context, profileID, conferenceID string) (bool, error)
	// AddSessionToWishlist appends the session to the profile's wishlist.
	// ErrNotFound when the session does not exist; ErrConflict on duplicate.
	AddSessionToWishlist(ctx context.Context, profileID, sessionID string) error
	// RemoveSessionFromWishlist removes the session from the wishlist.
	// ErrNotFound when the session does not exist. Returns false without
	// error when the session was not wishlisted.
	RemoveSessionFromWishlist(ctx context.Context, profileID, sessionID string) (bool, error)
}

// RegistrationService defines seat reservation and wishlist operations for
// the current caller.
type RegistrationService interface {
	RegisterForConference(ctx context.Context, callerID, conferenceID string) (bool, error)
	UnregisterFromConference(ctx context.Context, callerID, conferenceID string) (bool, error)
	AddSessionToWishlist(ctx context.Context, callerID, sessionID string) (bool, error)
	RemoveSessionFromWishlist(ctx context.Context, callerID, sessionID string) (bool, error)
	// GetConferencesToAttend returns the caller's registered conferences with
	// organizer display names, in registration order.
	GetConferencesToAttend(ctx context.Context, callerID string) ([]*ConferenceWithOrganizer, error)
	// GetSessionsInWishlist returns the caller's wishlisted sessions.
	GetSessionsInWishlist(ctx context.Context, callerID string) ([]*Session, error)
}
