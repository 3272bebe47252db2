package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"conferencecentral/internal/domain"
)

// registrationRepository runs the registration and wishlist transitions.
// Each transition is one transaction; rows are locked conference-first then
// profile so the seat check-and-decrement serializes per conference.
type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func (r *registrationRepository) RegisterForConference(ctx context.Context, profileID, conferenceID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock conference: %w", err)
	}

	attending, err := lockProfileList(ctx, tx, profileID, "conference_keys_to_attend")
	if err != nil {
		return err
	}
	if contains(attending, conferenceID) {
		return domain.ErrConflict
	}
	if seats <= 0 {
		return domain.ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available - 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return fmt.Errorf("decrement seats: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET conference_keys_to_attend = array_append(conference_keys_to_attend, $2), updated_at = NOW() WHERE id = $1`,
		profileID, conferenceID,
	); err != nil {
		return fmt.Errorf("append registration: %w", err)
	}
	return tx.Commit()
}

func (r *registrationRepository) UnregisterFromConference(ctx context.Context, profileID, conferenceID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM conferences WHERE id = $1 FOR UPDATE`,
		conferenceID,
	).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("lock conference: %w", err)
	}

	attending, err := lockProfileList(ctx, tx, profileID, "conference_keys_to_attend")
	if err != nil {
		return false, err
	}
	// Removing an absent registration is idempotent-false, not an error.
	if !contains(attending, conferenceID) {
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE conferences SET seats_available = seats_available + 1, updated_at = NOW() WHERE id = $1`,
		conferenceID,
	); err != nil {
		return false, fmt.Errorf("return seat: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET conference_keys_to_attend = array_remove(conference_keys_to_attend, $2), updated_at = NOW() WHERE id = $1`,
		profileID, conferenceID,
	); err != nil {
		return false, fmt.Errorf("remove registration: %w", err)
	}
	return true, tx.Commit()
}

func (r *registrationRepository) AddSessionToWishlist(ctx context.Context, profileID, sessionID string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := sessionExists(ctx, tx, sessionID); err != nil {
		return err
	}
	wishlist, err := lockProfileList(ctx, tx, profileID, "session_wishlist")
	if err != nil {
		return err
	}
	if contains(wishlist, sessionID) {
		return domain.ErrConflict
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET session_wishlist = array_append(session_wishlist, $2), updated_at = NOW() WHERE id = $1`,
		profileID, sessionID,
	); err != nil {
		return fmt.Errorf("append wishlist entry: %w", err)
	}
	return tx.Commit()
}

func (r *registrationRepository) RemoveSessionFromWishlist(ctx context.Context, profileID, sessionID string) (bool, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := sessionExists(ctx, tx, sessionID); err != nil {
		return false, err
	}
	wishlist, err := lockProfileList(ctx, tx, profileID, "session_wishlist")
	if err != nil {
		return false, err
	}
	if !contains(wishlist, sessionID) {
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE profiles SET session_wishlist = array_remove(session_wishlist, $2), updated_at = NOW() WHERE id = $1`,
		profileID, sessionID,
	); err != nil {
		return false, fmt.Errorf("remove wishlist entry: %w", err)
	}
	return true, tx.Commit()
}

func lockProfileList(ctx context.Context, tx *sql.Tx, profileID, column string) ([]string, error) {
	var list pq.StringArray
	err := tx.QueryRowContext(ctx,
		`SELECT `+column+` FROM profiles WHERE id = $1 FOR UPDATE`,
		profileID,
	).Scan(&list)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock profile: %w", err)
	}
	return list, nil
}

func sessionExists(ctx context.Context, tx *sql.Tx, sessionID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = $1`, sessionID).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("check session: %w", err)
	}
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
