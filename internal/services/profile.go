package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	contextTimeout time.Duration
}

func NewProfileService(profileRepo domain.ProfileRepository, timeout time.Duration) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		contextTimeout: timeout,
	}
}

// GetProfile returns the caller's profile, creating it on first access with
// default preferences so every authenticated caller always has one.
func (s *profileService) GetProfile(ctx context.Context, callerID, callerEmail string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}

	profile, err := s.profileRepo.GetByID(ctx, callerID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	// The row can be missing for an identity minted elsewhere; fall back to
	// the email before creating a fresh profile with defaults.
	if callerEmail != "" {
		profile, err = s.profileRepo.GetByEmail(ctx, callerEmail)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get profile by email: %w", err)
		}
	}

	now := time.Now()
	profile = domain.NewProfile(callerEmail, "", domain.ShirtSizeNotSpecified, now, now)
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) SaveProfile(ctx context.Context, callerID, callerEmail, displayName, teeShirtSize string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}

	profile, err := s.GetProfile(ctx, callerID, callerEmail)
	if err != nil {
		return nil, err
	}

	// Empty fields keep the stored value.
	if displayName == "" {
		displayName = profile.DisplayName
	}
	if teeShirtSize == "" {
		teeShirtSize = profile.TeeShirtSize
	}

	updated, err := s.profileRepo.UpdatePreferences(ctx, profile.ID, displayName, teeShirtSize)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return updated, nil
}
