package domain

import (
	"context"
	"time"

	"conferencecentral/internal/query"
)

// Session represents a break-out session of a conference. A session belongs
// to exactly one conference and cannot be reparented. SpeakerKey is a loose
// reference: when non-empty it should name an existing speaker, but
// referential integrity is not enforced.
// swagger:model Session
type Session struct {
	ID            string     `json:"id"`
	ConferenceID  string     `json:"conference_id"`
	Name          string     `json:"name"`
	Highlights    string     `json:"highlights"`
	SpeakerKey    string     `json:"speaker_key"`
	TypeOfSession string     `json:"type_of_session"`
	Date          *time.Time `json:"date"`
	// StartTime is minutes since midnight, parsed from "HH:MM" input.
	StartTime *int `json:"start_time"`
	// Duration is in minutes.
	Duration  *int      `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession returns a new Session with the given fields. ID is typically set
// by the repository on create.
func NewSession(conferenceID, name, highlights, speakerKey, typeOfSession string, date *time.Time, startTime, duration *int, createdAt, updatedAt time.Time) *Session {
	return &Session{
		ConferenceID:  conferenceID,
		Name:          name,
		Highlights:    highlights,
		SpeakerKey:    speakerKey,
		TypeOfSession: typeOfSession,
		Date:          date,
		StartTime:     startTime,
		Duration:      duration,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// SessionRepository defines the interface for session storage. All
// "by conference" operations are scoped to descendants of that conference.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speakerKey string) ([]*Session, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
	// Query applies a compiled filter set over all sessions; QueryByConference
	// additionally scopes to one conference.
	Query(ctx context.Context, compiled *query.Compiled) ([]*Session, error)
	QueryByConference(ctx context.Context, conferenceID string, compiled *query.Compiled) ([]*Session, error)
	// ListByTypeBeforeTime returns sessions of the given type starting
	// strictly before the given time (minutes since midnight).
	ListByTypeBeforeTime(ctx context.Context, typeOfSession string, beforeMinutes int) ([]*Session, error)
	// ListExcludingTypeBeforeTime returns sessions not of the given type
	// starting strictly before the given time.
	ListExcludingTypeBeforeTime(ctx context.Context, typeOfSession string, beforeMinutes int) ([]*Session, error)
}

// SessionService defines the business logic for sessions.
type SessionService interface {
	// CreateSession creates a session under the conference. Only the
	// conference organizer may create sessions; name is required. When the
	// session has a speaker, a featured-speaker recompute task is enqueued
	// without blocking the create.
	CreateSession(ctx context.Context, callerID string, session *Session) (*Session, error)
	GetConferenceSessions(ctx context.Context, conferenceID string) ([]*Session, error)
	GetConferenceSessionsByType(ctx context.Context, conferenceID, typeOfSession string) ([]*Session, error)
	GetSessionsBySpeaker(ctx context.Context, speakerKey string) ([]*Session, error)
	QuerySessions(ctx context.Context, filters []query.Filter) ([]*Session, error)
	// QueryConferenceSessions compiles the filters and runs them over the
	// sessions of one conference only.
	QueryConferenceSessions(ctx context.Context, conferenceID string, filters []query.Filter) ([]*Session, error)
	// SessionsByTypeBeforeTime returns sessions of the given type starting
	// strictly before startTime ("HH:MM").
	SessionsByTypeBeforeTime(ctx context.Context, typeOfSession, startTime string) ([]*Session, error)
	// SessionsExcludingTypeBeforeTime returns sessions not of the given type
	// starting strictly before startTime ("HH:MM").
	SessionsExcludingTypeBeforeTime(ctx context.Context, typeOfSession, startTime string) ([]*Session, error)
}
