package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

const profileColumns = `id, email, display_name, tee_shirt_size, password_hash, password_salt, conference_keys_to_attend, session_wishlist, created_at, updated_at`

type profileRepository struct {
	DB *sql.DB
}

func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{
		DB: db,
	}
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	q := `
		INSERT INTO profiles (email, display_name, tee_shirt_size, password_hash, password_salt, conference_keys_to_attend, session_wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, q,
		p.Email, p.DisplayName, p.TeeShirtSize, p.PasswordHash, p.PasswordSalt,
		pq.Array(p.ConferenceKeysToAttend), pq.Array(p.SessionWishlist),
		p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	p := &domain.Profile{}
	var attending, wishlist pq.StringArray
	err := row.Scan(
		&p.ID, &p.Email, &p.DisplayName, &p.TeeShirtSize,
		&p.PasswordHash, &p.PasswordSalt, &attending, &wishlist,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ConferenceKeysToAttend = attending
	p.SessionWishlist = wishlist
	return p, nil
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	q := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, q, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) UpdatePreferences(ctx context.Context, id, displayName, teeShirtSize string) (*domain.Profile, error) {
	q := `
		UPDATE profiles
		SET display_name = $2, tee_shirt_size = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + profileColumns + `
	`
	p, err := scanProfile(r.DB.QueryRowContext(ctx, q, id, displayName, teeShirtSize))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
