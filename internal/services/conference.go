package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type conferenceService struct {
	conferenceRepo domain.ConferenceRepository
	profileRepo    domain.ProfileRepository
	cache          domain.Cache
	taskQueue      domain.TaskQueue
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewConferenceService(conferenceRepo domain.ConferenceRepository,
	profileRepo domain.ProfileRepository,
	cache domain.Cache,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		conferenceRepo: conferenceRepo,
		profileRepo:    profileRepo,
		cache:          cache,
		taskQueue:      taskQueue,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// monthOf derives the stored month from a start date, 0 when no date is set.
func monthOf(startDate *time.Time) int {
	if startDate == nil {
		return 0
	}
	return int(startDate.Month())
}

func (s *conferenceService) CreateConference(ctx context.Context, callerID, callerEmail string, conf *domain.Conference) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}
	if strings.TrimSpace(conf.Name) == "" {
		return nil, fmt.Errorf("%w: conference name is required", domain.ErrValidation)
	}
	if conf.MaxAttendees < 0 {
		return nil, fmt.Errorf("%w: max attendees must not be negative", domain.ErrValidation)
	}
	if conf.StartDate != nil && conf.EndDate != nil && conf.EndDate.Before(*conf.StartDate) {
		return nil, fmt.Errorf("%w: end date before start date", domain.ErrValidation)
	}

	now := time.Now()
	conf.OrganizerID = callerID
	conf.Month = monthOf(conf.StartDate)
	conf.SeatsAvailable = conf.MaxAttendees
	conf.CreatedAt = now
	conf.UpdatedAt = now

	if err := s.conferenceRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	// Confirmation mail goes through the work queue so the create itself
	// never waits on the mail provider.
	if callerEmail != "" {
		err := s.taskQueue.Enqueue(ctx, domain.TaskSendConfirmationEmail, map[string]string{
			"email":           callerEmail,
			"conference_id":   conf.ID,
			"conference_name": conf.Name,
		})
		if err != nil {
			s.logger.Warn("task enqueue failed", "task", domain.TaskSendConfirmationEmail, "conference_id", conf.ID, "err", err)
		}
	}
	return conf, nil
}

func (s *conferenceService) UpdateConference(ctx context.Context, callerID, conferenceID string, upd *domain.ConferenceUpdate) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	if upd.Name != nil {
		if strings.TrimSpace(*upd.Name) == "" {
			return nil, fmt.Errorf("%w: conference name is required", domain.ErrValidation)
		}
		conf.Name = *upd.Name
	}
	if upd.Description != nil {
		conf.Description = *upd.Description
	}
	if upd.Topics != nil {
		conf.Topics = upd.Topics
	}
	if upd.City != nil {
		conf.City = *upd.City
	}
	if upd.StartDate != nil {
		conf.StartDate = upd.StartDate
		conf.Month = monthOf(upd.StartDate)
	}
	if upd.EndDate != nil {
		conf.EndDate = upd.EndDate
	}
	if upd.MaxAttendees != nil {
		if *upd.MaxAttendees < 0 {
			return nil, fmt.Errorf("%w: max attendees must not be negative", domain.ErrValidation)
		}
		// The repository moves seats_available with the capacity change;
		// registered seats stay taken.
		conf.MaxAttendees = *upd.MaxAttendees
	}
	conf.UpdatedAt = time.Now()

	if err := s.conferenceRepo.Update(ctx, conf); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return conf, nil
}

func (s *conferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	return s.withOrganizer(ctx, conf), nil
}

func (s *conferenceService) ListConferencesCreated(ctx context.Context, callerID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}
	confs, err := s.conferenceRepo.ListByOrganizerID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by organizer: %w", err)
	}
	if confs == nil {
		confs = []*domain.Conference{}
	}
	return confs, nil
}

func (s *conferenceService) QueryConferences(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	compiled, err := query.Compile(query.KindConference, filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.conferenceRepo.Query(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}

	out := make([]*domain.ConferenceWithOrganizer, 0, len(confs))
	for _, conf := range confs {
		out = append(out, s.withOrganizer(ctx, conf))
	}
	return out, nil
}

// withOrganizer resolves the organizer display name; lookup failures leave the
// name empty rather than failing the whole listing.
func (s *conferenceService) withOrganizer(ctx context.Context, conf *domain.Conference) *domain.ConferenceWithOrganizer {
	name := ""
	if organizer, err := s.profileRepo.GetByID(ctx, conf.OrganizerID); err == nil {
		name = organizer.DisplayName
	}
	return &domain.ConferenceWithOrganizer{Conference: conf, OrganizerDisplayName: name}
}

var announcementKey = domain.CacheKey{Kind: domain.CacheKindAnnouncement, ID: "recent"}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func (s *conferenceService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.conferenceRepo.ListNearlySoldOut(ctx)
	if err != nil {
		return "", fmt.Errorf("list nearly sold out: %w", err)
	}
	if len(confs) == 0 {
		if err := s.cache.Delete(ctx, announcementKey); err != nil {
			return "", fmt.Errorf("delete announcement: %w", err)
		}
		return "", nil
	}

	names := make([]string, len(confs))
	for i, conf := range confs {
		names[i] = conf.Name
	}
	announcement := "Last chance to attend! The following conferences are nearly sold out: " +
		strings.Join(names, ", ")
	if err := s.cache.Set(ctx, announcementKey, mustJSON(announcement)); err != nil {
		return "", fmt.Errorf("set announcement: %w", err)
	}
	return announcement, nil
}

func (s *conferenceService) GetAnnouncement(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raw, ok, err := s.cache.Get(ctx, announcementKey)
	if err != nil {
		return "", fmt.Errorf("get announcement: %w", err)
	}
	if !ok {
		return "", nil
	}
	var announcement string
	if err := json.Unmarshal(raw, &announcement); err != nil {
		return "", fmt.Errorf("decode announcement: %w", err)
	}
	return announcement, nil
}
