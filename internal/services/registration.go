package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"conferencecentral/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	profileRepo      domain.ProfileRepository
	conferenceRepo   domain.ConferenceRepository
	sessionRepo      domain.SessionRepository
	taskQueue        domain.TaskQueue
	logger           *slog.Logger
	contextTimeout   time.Duration
}

func NewRegistrationService(registrationRepo domain.RegistrationRepository,
	profileRepo domain.ProfileRepository,
	conferenceRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		profileRepo:      profileRepo,
		conferenceRepo:   conferenceRepo,
		sessionRepo:      sessionRepo,
		taskQueue:        taskQueue,
		logger:           logger,
		contextTimeout:   timeout,
	}
}

func (s *registrationService) RegisterForConference(ctx context.Context, callerID, conferenceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return false, domain.ErrAuthRequired
	}
	if err := s.registrationRepo.RegisterForConference(ctx, callerID, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return false, err
		}
		return false, fmt.Errorf("register for conference: %w", err)
	}

	// Seat count changed, refresh the sold-out announcement off the request path.
	s.refreshAnnouncement(ctx)
	return true, nil
}

func (s *registrationService) UnregisterFromConference(ctx context.Context, callerID, conferenceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return false, domain.ErrAuthRequired
	}
	removed, err := s.registrationRepo.UnregisterFromConference(ctx, callerID, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("unregister from conference: %w", err)
	}
	if removed {
		s.refreshAnnouncement(ctx)
	}
	return removed, nil
}

func (s *registrationService) AddSessionToWishlist(ctx context.Context, callerID, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return false, domain.ErrAuthRequired
	}
	if err := s.registrationRepo.AddSessionToWishlist(ctx, callerID, sessionID); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return false, err
		}
		return false, fmt.Errorf("add session to wishlist: %w", err)
	}
	return true, nil
}

func (s *registrationService) RemoveSessionFromWishlist(ctx context.Context, callerID, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return false, domain.ErrAuthRequired
	}
	removed, err := s.registrationRepo.RemoveSessionFromWishlist(ctx, callerID, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("remove session from wishlist: %w", err)
	}
	return removed, nil
}

func (s *registrationService) GetConferencesToAttend(ctx context.Context, callerID string) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}
	profile, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.ConferenceWithOrganizer{}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	confs, err := s.conferenceRepo.ListByIDs(ctx, profile.ConferenceKeysToAttend)
	if err != nil {
		return nil, fmt.Errorf("list conferences: %w", err)
	}

	out := make([]*domain.ConferenceWithOrganizer, 0, len(confs))
	for _, conf := range confs {
		name := ""
		if organizer, err := s.profileRepo.GetByID(ctx, conf.OrganizerID); err == nil {
			name = organizer.DisplayName
		}
		out = append(out, &domain.ConferenceWithOrganizer{Conference: conf, OrganizerDisplayName: name})
	}
	return out, nil
}

func (s *registrationService) GetSessionsInWishlist(ctx context.Context, callerID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}
	profile, err := s.profileRepo.GetByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []*domain.Session{}, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	sessions, err := s.sessionRepo.ListByIDs(ctx, profile.SessionWishlist)
	if err != nil {
		return nil, fmt.Errorf("list wishlist sessions: %w", err)
	}
	return sessions, nil
}

// refreshAnnouncement enqueues an announcement recompute. The transition has
// already committed, so a queue failure is logged rather than returned.
func (s *registrationService) refreshAnnouncement(ctx context.Context) {
	if err := s.taskQueue.Enqueue(ctx, domain.TaskSetAnnouncement, nil); err != nil {
		s.logger.Warn("task enqueue failed", "task", domain.TaskSetAnnouncement, "err", err)
	}
}
