package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type sessionService struct {
	sessionRepo    domain.SessionRepository
	conferenceRepo domain.ConferenceRepository
	taskQueue      domain.TaskQueue
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewSessionService(sessionRepo domain.SessionRepository,
	conferenceRepo domain.ConferenceRepository,
	taskQueue domain.TaskQueue,
	logger *slog.Logger,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		sessionRepo:    sessionRepo,
		conferenceRepo: conferenceRepo,
		taskQueue:      taskQueue,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, callerID string, session *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if callerID == "" {
		return nil, domain.ErrAuthRequired
	}
	if strings.TrimSpace(session.Name) == "" {
		return nil, fmt.Errorf("%w: session name is required", domain.ErrValidation)
	}

	conf, err := s.conferenceRepo.GetByID(ctx, session.ConferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// Featured speaker derivation runs on the work queue; a queue hiccup
	// must not fail the create.
	if session.SpeakerKey != "" {
		err := s.taskQueue.Enqueue(ctx, domain.TaskSetFeaturedSpeaker, map[string]string{
			"conference_id": session.ConferenceID,
		})
		if err != nil {
			s.logger.Warn("task enqueue failed", "task", domain.TaskSetFeaturedSpeaker, "conference_id", session.ConferenceID, "err", err)
		}
	}
	return session, nil
}

func (s *sessionService) GetConferenceSessions(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) GetConferenceSessionsByType(ctx context.Context, conferenceID, typeOfSession string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.ListByType(ctx, conferenceID, typeOfSession)
	if err != nil {
		return nil, fmt.Errorf("list sessions by type: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) GetSessionsBySpeaker(ctx context.Context, speakerKey string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speakerKey)
	if err != nil {
		return nil, fmt.Errorf("list sessions by speaker: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) QuerySessions(ctx context.Context, filters []query.Filter) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	compiled, err := query.Compile(query.KindSession, filters)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.Query(ctx, compiled)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) QueryConferenceSessions(ctx context.Context, conferenceID string, filters []query.Filter) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.requireConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	compiled, err := query.Compile(query.KindSession, filters)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessionRepo.QueryByConference(ctx, conferenceID, compiled)
	if err != nil {
		return nil, fmt.Errorf("query conference sessions: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) SessionsByTypeBeforeTime(ctx context.Context, typeOfSession, startTime string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	minutes, err := query.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	sessions, err := s.sessionRepo.ListByTypeBeforeTime(ctx, typeOfSession, minutes)
	if err != nil {
		return nil, fmt.Errorf("list sessions by type before time: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) SessionsExcludingTypeBeforeTime(ctx context.Context, typeOfSession, startTime string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	minutes, err := query.ParseTimeOfDay(startTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	sessions, err := s.sessionRepo.ListExcludingTypeBeforeTime(ctx, typeOfSession, minutes)
	if err != nil {
		return nil, fmt.Errorf("list sessions excluding type before time: %w", err)
	}
	return sessions, nil
}

func (s *sessionService) requireConference(ctx context.Context, conferenceID string) error {
	_, err := s.conferenceRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get conference: %w", err)
	}
	return nil
}
