package domain

import (
	"context"
	"time"

	"conferencecentral/internal/query"
)

// Conference represents a conference owned by the organizer's profile.
// The organizer is fixed at creation; seats_available is mutated only by the
// registration state machine and stays within [0, max_attendees].
// swagger:model Conference
type Conference struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Topics         []string   `json:"topics"`
	City           string     `json:"city"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	Month          int        `json:"month"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ConferenceWithOrganizer bundles a conference with its organizer's display name.
type ConferenceWithOrganizer struct {
	Conference           *Conference `json:"conference"`
	OrganizerDisplayName string      `json:"organizer_display_name"`
}

// ConferenceUpdate carries the optional fields of a partial conference update.
// Nil fields are left unchanged.
type ConferenceUpdate struct {
	Name         *string
	Description  *string
	Topics       []string
	City         *string
	StartDate    *time.Time
	EndDate      *time.Time
	MaxAttendees *int
}

// ConferenceRepository defines the interface for conference storage.
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Conference, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	// Query applies a compiled filter set with the executor's ordering rule:
	// inequality field ascending then name, or name alone.
	Query(ctx context.Context, compiled *query.Compiled) ([]*Conference, error)
	// ListNearlySoldOut returns conferences with 1..5 seats remaining.
	ListNearlySoldOut(ctx context.Context) ([]*Conference, error)
	// Update writes the mutable fields. SeatsAvailable is never taken from
	// conf: a capacity change adjusts the stored seat count in place, so
	// concurrent registrations are not overwritten. conf is refreshed from
	// the stored row on success.
	Update(ctx context.Context, conf *Conference) error
}

// ConferenceService defines the business logic for conferences.
type ConferenceService interface {
	// CreateConference creates a conference owned by the caller. Name is
	// required; month is derived from the start date; seats_available is
	// initialized to max_attendees. A confirmation email task is enqueued.
	CreateConference(ctx context.Context, callerID, callerEmail string, conf *Conference) (*Conference, error)
	// UpdateConference applies a partial update. Only the organizer may
	// update; the organizer itself is immutable.
	UpdateConference(ctx context.Context, callerID, conferenceID string, upd *ConferenceUpdate) (*Conference, error)
	GetConference(ctx context.Context, conferenceID string) (*ConferenceWithOrganizer, error)
	ListConferencesCreated(ctx context.Context, callerID string) ([]*Conference, error)
	// QueryConferences compiles the filters and runs them over all conferences.
	QueryConferences(ctx context.Context, filters []query.Filter) ([]*ConferenceWithOrganizer, error)
	// RecomputeAnnouncement refreshes the nearly-sold-out announcement cache
	// entry, clearing it when no conference qualifies.
	RecomputeAnnouncement(ctx context.Context) (string, error)
	// GetAnnouncement is a pure cache read; empty string when none is set.
	GetAnnouncement(ctx context.Context) (string, error)
}
