package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

const sessionColumns = `id, conference_id, name, highlights, speaker_key, type_of_session, date, start_time, duration, created_at, updated_at`

type sessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) domain.SessionRepository {
	return &sessionRepository{
		DB: db,
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *domain.Session) error {
	q := `
		INSERT INTO sessions (conference_id, name, highlights, speaker_key, type_of_session, date, start_time, duration, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, q,
		s.ConferenceID, s.Name, s.Highlights, s.SpeakerKey, s.TypeOfSession,
		s.Date, s.StartTime, s.Duration, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
}

func scanSession(row rowScanner) (*domain.Session, error) {
	s := &domain.Session{}
	var dateNull sql.NullTime
	var startNull, durationNull sql.NullInt64
	err := row.Scan(
		&s.ID, &s.ConferenceID, &s.Name, &s.Highlights, &s.SpeakerKey,
		&s.TypeOfSession, &dateNull, &startNull, &durationNull,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dateNull.Valid {
		s.Date = &dateNull.Time
	}
	if startNull.Valid {
		v := int(startNull.Int64)
		s.StartTime = &v
	}
	if durationNull.Valid {
		v := int(durationNull.Int64)
		s.Duration = &v
	}
	return s, nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`
	s, err := scanSession(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *sessionRepository) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, q, conferenceID)
}

func (r *sessionRepository) ListByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE conference_id = $1 AND type_of_session = $2 ORDER BY name ASC`
	return r.list(ctx, q, conferenceID, typeOfSession)
}

func (r *sessionRepository) ListBySpeaker(ctx context.Context, speakerKey string) ([]*domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE speaker_key = $1 ORDER BY name ASC`
	return r.list(ctx, q, speakerKey)
}

func (r *sessionRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ANY ($1) ORDER BY array_position($1, id)`
	return r.list(ctx, q, pq.Array(ids))
}

func (r *sessionRepository) Query(ctx context.Context, compiled *query.Compiled) ([]*domain.Session, error) {
	var args []any
	q := `SELECT ` + sessionColumns + ` FROM sessions`
	if clauses := appendConstraints(compiled, &args); len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " " + orderClause(compiled)
	return r.list(ctx, q, args...)
}

func (r *sessionRepository) QueryByConference(ctx context.Context, conferenceID string, compiled *query.Compiled) ([]*domain.Session, error) {
	args := []any{conferenceID}
	clauses := append([]string{"conference_id = $1"}, appendConstraints(compiled, &args)...)
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE ` + strings.Join(clauses, " AND ") + " " + orderClause(compiled)
	return r.list(ctx, q, args...)
}

func (r *sessionRepository) ListByTypeBeforeTime(ctx context.Context, typeOfSession string, beforeMinutes int) ([]*domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE type_of_session = $1 AND start_time < $2 ORDER BY start_time ASC, name ASC`
	return r.list(ctx, q, typeOfSession, beforeMinutes)
}

func (r *sessionRepository) ListExcludingTypeBeforeTime(ctx context.Context, typeOfSession string, beforeMinutes int) ([]*domain.Session, error) {
	q := `SELECT ` + sessionColumns + ` FROM sessions WHERE type_of_session <> $1 AND start_time < $2 ORDER BY start_time ASC, name ASC`
	return r.list(ctx, q, typeOfSession, beforeMinutes)
}

func (r *sessionRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Session, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*domain.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
