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

const conferenceColumns = `id, organizer_id, name, description, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at`

type conferenceRepository struct {
	DB *sql.DB
}

func NewConferenceRepository(db *sql.DB) domain.ConferenceRepository {
	return &conferenceRepository{
		DB: db,
	}
}

func (r *conferenceRepository) Create(ctx context.Context, c *domain.Conference) error {
	q := `
		INSERT INTO conferences (organizer_id, name, description, topics, city, start_date, end_date, month, max_attendees, seats_available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, q,
		c.OrganizerID, c.Name, c.Description, pq.Array(c.Topics), c.City,
		c.StartDate, c.EndDate, c.Month, c.MaxAttendees, c.SeatsAvailable,
		c.CreatedAt, c.UpdatedAt,
	).Scan(&c.ID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConference(row rowScanner) (*domain.Conference, error) {
	c := &domain.Conference{}
	var topics pq.StringArray
	var startNull, endNull sql.NullTime
	err := row.Scan(
		&c.ID, &c.OrganizerID, &c.Name, &c.Description, &topics, &c.City,
		&startNull, &endNull, &c.Month, &c.MaxAttendees, &c.SeatsAvailable,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Topics = topics
	if startNull.Valid {
		c.StartDate = &startNull.Time
	}
	if endNull.Valid {
		c.EndDate = &endNull.Time
	}
	return c, nil
}

func (r *conferenceRepository) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = $1`
	c, err := scanConference(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *conferenceRepository) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE organizer_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, q, organizerID)
}

func (r *conferenceRepository) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	// array_position preserves the caller's ordering (registration order).
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE id = ANY ($1) ORDER BY array_position($1, id)`
	return r.list(ctx, q, pq.Array(ids))
}

func (r *conferenceRepository) Query(ctx context.Context, compiled *query.Compiled) ([]*domain.Conference, error) {
	var args []any
	q := `SELECT ` + conferenceColumns + ` FROM conferences`
	if clauses := appendConstraints(compiled, &args); len(clauses) > 0 {
		q += " WHERE " + strings.Join(clauses, " AND ")
	}
	q += " " + orderClause(compiled)
	return r.list(ctx, q, args...)
}

func (r *conferenceRepository) ListNearlySoldOut(ctx context.Context) ([]*domain.Conference, error) {
	q := `SELECT ` + conferenceColumns + ` FROM conferences WHERE seats_available > 0 AND seats_available <= 5 ORDER BY name ASC`
	return r.list(ctx, q)
}

func (r *conferenceRepository) list(ctx context.Context, q string, args ...any) ([]*domain.Conference, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	confs := make([]*domain.Conference, 0)
	for rows.Next() {
		c, err := scanConference(rows)
		if err != nil {
			return nil, err
		}
		confs = append(confs, c)
	}
	return confs, rows.Err()
}

func (r *conferenceRepository) Update(ctx context.Context, c *domain.Conference) error {
	// seats_available belongs to the registration state machine and is never
	// written from the caller's snapshot. A capacity change moves only the
	// headroom, computed from the row's current values, so a registration
	// committing between the caller's read and this write is preserved.
	q := `
		UPDATE conferences
		SET name = $2, description = $3, topics = $4, city = $5, start_date = $6, end_date = $7, month = $8,
			seats_available = LEAST(GREATEST(seats_available + $9 - max_attendees, 0), $9),
			max_attendees = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + conferenceColumns + `
	`
	updated, err := scanConference(r.DB.QueryRowContext(ctx, q,
		c.ID, c.Name, c.Description, pq.Array(c.Topics), c.City,
		c.StartDate, c.EndDate, c.Month, c.MaxAttendees,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	*c = *updated
	return nil
}
