package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/domain"
)

type fakeRegistrationService struct {
	changed  bool
	err      error
	confs    []*domain.ConferenceWithOrganizer
	sessions []*domain.Session
}

func (f *fakeRegistrationService) RegisterForConference(ctx context.Context, callerID, conferenceID string) (bool, error) {
	return f.changed, f.err
}

func (f *fakeRegistrationService) UnregisterFromConference(ctx context.Context, callerID, conferenceID string) (bool, error) {
	return f.changed, f.err
}

func (f *fakeRegistrationService) AddSessionToWishlist(ctx context.Context, callerID, sessionID string) (bool, error) {
	return f.changed, f.err
}

func (f *fakeRegistrationService) RemoveSessionFromWishlist(ctx context.Context, callerID, sessionID string) (bool, error) {
	return f.changed, f.err
}

func (f *fakeRegistrationService) GetConferencesToAttend(ctx context.Context, callerID string) ([]*domain.ConferenceWithOrganizer, error) {
	return f.confs, f.err
}

func (f *fakeRegistrationService) GetSessionsInWishlist(ctx context.Context, callerID string) ([]*domain.Session, error) {
	return f.sessions, f.err
}

func TestRegistrationController_RegisterForConference(t *testing.T) {
	tests := []struct {
		name        string
		caller      bool
		svc         *fakeRegistrationService
		wantStatus  int
		wantChanged *bool
	}{
		{
			name:        "success",
			caller:      true,
			svc:         &fakeRegistrationService{changed: true},
			wantStatus:  http.StatusOK,
			wantChanged: boolPtr(true),
		},
		{
			name:       "no caller",
			caller:     false,
			svc:        &fakeRegistrationService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "conference missing",
			caller:     true,
			svc:        &fakeRegistrationService{err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "sold out",
			caller:     true,
			svc:        &fakeRegistrationService{err: domain.ErrConflict},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/conferences/conf-1/registration", nil)
			req.SetPathValue("conferenceID", "conf-1")
			if tt.caller {
				req = withCaller(req, "profile-1", "attendee@example.com")
			}
			rec := httptest.NewRecorder()

			ctrl.RegisterForConference(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantChanged != nil {
				envelope := decodeEnvelope(t, rec.Body)
				data, ok := envelope["data"].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, *tt.wantChanged, data["changed"])
			}
		})
	}
}

func TestRegistrationController_UnregisterNotRegistered(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &fakeRegistrationService{changed: false})
	req := httptest.NewRequest(http.MethodDelete, "/conferences/conf-1/registration", nil)
	req.SetPathValue("conferenceID", "conf-1")
	req = withCaller(req, "profile-1", "attendee@example.com")
	rec := httptest.NewRecorder()

	ctrl.UnregisterFromConference(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["changed"])
}

func TestRegistrationController_Wishlist(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		ctrl := NewRegistrationController(testLogger(), &fakeRegistrationService{changed: true})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess-1/wishlist", nil)
		req.SetPathValue("sessionID", "sess-1")
		req = withCaller(req, "profile-1", "attendee@example.com")
		rec := httptest.NewRecorder()

		ctrl.AddSessionToWishlist(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("add duplicate", func(t *testing.T) {
		ctrl := NewRegistrationController(testLogger(), &fakeRegistrationService{err: domain.ErrConflict})
		req := httptest.NewRequest(http.MethodPost, "/sessions/sess-1/wishlist", nil)
		req.SetPathValue("sessionID", "sess-1")
		req = withCaller(req, "profile-1", "attendee@example.com")
		rec := httptest.NewRecorder()

		ctrl.AddSessionToWishlist(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		svc := &fakeRegistrationService{sessions: []*domain.Session{
			{ID: "sess-1", Name: "Intro"},
			{ID: "sess-2", Name: "Deep Dive"},
		}}
		ctrl := NewRegistrationController(testLogger(), svc)
		req := httptest.NewRequest(http.MethodGet, "/sessions/wishlist", nil)
		req = withCaller(req, "profile-1", "attendee@example.com")
		rec := httptest.NewRecorder()

		ctrl.ListWishlistSessions(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		data, ok := envelope["data"].([]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})
}

func TestRegistrationController_ListConferencesToAttend(t *testing.T) {
	svc := &fakeRegistrationService{confs: []*domain.ConferenceWithOrganizer{
		{Conference: &domain.Conference{ID: "conf-1"}, OrganizerDisplayName: "Ada"},
	}}
	ctrl := NewRegistrationController(testLogger(), svc)
	req := httptest.NewRequest(http.MethodGet, "/conferences/attending", nil)
	req = withCaller(req, "profile-1", "attendee@example.com")
	rec := httptest.NewRecorder()

	ctrl.ListConferencesToAttend(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	data, ok := envelope["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)
}

func boolPtr(b bool) *bool { return &b }
