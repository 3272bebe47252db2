package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type featuredSpeakerService struct {
	sessionRepo    domain.SessionRepository
	cache          domain.Cache
	contextTimeout time.Duration
}

func NewFeaturedSpeakerService(sessionRepo domain.SessionRepository,
	cache domain.Cache,
	timeout time.Duration,
) domain.FeaturedSpeakerService {
	return &featuredSpeakerService{
		sessionRepo:    sessionRepo,
		cache:          cache,
		contextTimeout: timeout,
	}
}

func featuredKey(conferenceID string) domain.CacheKey {
	return domain.CacheKey{Kind: domain.CacheKindFeaturedSpeaker, ID: conferenceID}
}

// Recompute derives the featured speaker of a conference from scratch. The
// speaker with the most sessions wins; with equal counts the one whose first
// session was created earliest wins, so repeated runs over the same data give
// the same answer.
func (s *featuredSpeakerService) Recompute(ctx context.Context, conferenceID string) (*domain.FeaturedSpeaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListByConferenceID(ctx, conferenceID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	counts := make(map[string]int)
	var order []string
	for _, sess := range sessions {
		if sess.SpeakerKey == "" {
			continue
		}
		if counts[sess.SpeakerKey] == 0 {
			order = append(order, sess.SpeakerKey)
		}
		counts[sess.SpeakerKey]++
	}

	if len(order) == 0 {
		if err := s.cache.Delete(ctx, featuredKey(conferenceID)); err != nil {
			return nil, fmt.Errorf("delete featured speaker: %w", err)
		}
		return nil, nil
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}

	featured := &domain.FeaturedSpeaker{SpeakerKey: best}
	for _, sess := range sessions {
		if sess.SpeakerKey == best {
			featured.SessionNames = append(featured.SessionNames, sess.Name)
		}
	}

	encoded, err := json.Marshal(featured)
	if err != nil {
		return nil, fmt.Errorf("encode featured speaker: %w", err)
	}
	if err := s.cache.Set(ctx, featuredKey(conferenceID), encoded); err != nil {
		return nil, fmt.Errorf("set featured speaker: %w", err)
	}
	return featured, nil
}

func (s *featuredSpeakerService) Get(ctx context.Context, conferenceID string) (*domain.FeaturedSpeaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raw, ok, err := s.cache.Get(ctx, featuredKey(conferenceID))
	if err != nil {
		return nil, fmt.Errorf("get featured speaker: %w", err)
	}
	if !ok {
		return nil, nil
	}
	featured := &domain.FeaturedSpeaker{}
	if err := json.Unmarshal(raw, featured); err != nil {
		return nil, fmt.Errorf("decode featured speaker: %w", err)
	}
	return featured, nil
}
