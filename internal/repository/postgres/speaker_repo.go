package postgres

import (
	"context"
	"database/sql"
	"errors"

	"conferencecentral/internal/domain"
)

type speakerRepository struct {
	DB *sql.DB
}

func NewSpeakerRepository(db *sql.DB) domain.SpeakerRepository {
	return &speakerRepository{
		DB: db,
	}
}

func (r *speakerRepository) Create(ctx context.Context, s *domain.Speaker) error {
	q := `
		INSERT INTO speakers (display_name, biography, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, q, s.DisplayName, s.Biography, s.CreatedAt, s.UpdatedAt).Scan(&s.ID)
}

func (r *speakerRepository) GetByID(ctx context.Context, id string) (*domain.Speaker, error) {
	q := `
		SELECT id, display_name, biography, created_at, updated_at
		FROM speakers
		WHERE id = $1
	`
	s := &domain.Speaker{}
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.DisplayName, &s.Biography, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *speakerRepository) ListAll(ctx context.Context) ([]*domain.Speaker, error) {
	q := `
		SELECT id, display_name, biography, created_at, updated_at
		FROM speakers
		ORDER BY display_name ASC
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]*domain.Speaker, 0)
	for rows.Next() {
		s := &domain.Speaker{}
		if err := rows.Scan(&s.ID, &s.DisplayName, &s.Biography, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		speakers = append(speakers, s)
	}
	return speakers, rows.Err()
}
