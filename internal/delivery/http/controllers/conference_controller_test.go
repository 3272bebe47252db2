package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeConferenceService struct {
	created     *domain.Conference
	updated     *domain.Conference
	got         *domain.ConferenceWithOrganizer
	listed      []*domain.Conference
	queried     []*domain.ConferenceWithOrganizer
	ann         string
	err         error
	lastFilters []query.Filter
}

func (f *fakeConferenceService) CreateConference(ctx context.Context, callerID, callerEmail string, conf *domain.Conference) (*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.created, nil
}

func (f *fakeConferenceService) UpdateConference(ctx context.Context, callerID, conferenceID string, upd *domain.ConferenceUpdate) (*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.updated, nil
}

func (f *fakeConferenceService) GetConference(ctx context.Context, conferenceID string) (*domain.ConferenceWithOrganizer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.got, nil
}

func (f *fakeConferenceService) ListConferencesCreated(ctx context.Context, callerID string) ([]*domain.Conference, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.listed, nil
}

func (f *fakeConferenceService) QueryConferences(ctx context.Context, filters []query.Filter) ([]*domain.ConferenceWithOrganizer, error) {
	f.lastFilters = filters
	if f.err != nil {
		return nil, f.err
	}
	return f.queried, nil
}

func (f *fakeConferenceService) RecomputeAnnouncement(ctx context.Context) (string, error) {
	return f.ann, f.err
}

func (f *fakeConferenceService) GetAnnouncement(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.ann, nil
}

type fakeFeaturedService struct {
	featured *domain.FeaturedSpeaker
	err      error
}

func (f *fakeFeaturedService) Recompute(ctx context.Context, conferenceID string) (*domain.FeaturedSpeaker, error) {
	return f.featured, f.err
}

func (f *fakeFeaturedService) Get(ctx context.Context, conferenceID string) (*domain.FeaturedSpeaker, error) {
	return f.featured, f.err
}

func withCaller(r *http.Request, profileID, email string) *http.Request {
	ctx := middleware.SetCaller(r.Context(), middleware.Caller{ProfileID: profileID, Email: email})
	return r.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, body *bytes.Buffer) map[string]any {
	t.Helper()
	var envelope map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&envelope))
	return envelope
}

func TestConferenceController_CreateConference(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		caller     bool
		svc        *fakeConferenceService
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"name":"GopherCon","city":"Denver","max_attendees":100,"start_date":"2026-10-01"}`,
			caller:     true,
			svc:        &fakeConferenceService{created: &domain.Conference{ID: "conf-1", Name: "GopherCon"}},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       `{"city":"Denver"}`,
			caller:     true,
			svc:        &fakeConferenceService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad date format",
			body:       `{"name":"GopherCon","start_date":"01-10-2026"}`,
			caller:     true,
			svc:        &fakeConferenceService{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "no caller",
			body:       `{"name":"GopherCon"}`,
			caller:     false,
			svc:        &fakeConferenceService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "service validation error",
			body:       `{"name":"GopherCon"}`,
			caller:     true,
			svc:        &fakeConferenceService{err: domain.ErrValidation},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewConferenceController(testLogger(), tt.svc, &fakeFeaturedService{})
			req := httptest.NewRequest(http.MethodPost, "/conferences", bytes.NewBufferString(tt.body))
			if tt.caller {
				req = withCaller(req, "profile-1", "organizer@example.com")
			}
			rec := httptest.NewRecorder()

			ctrl.CreateConference(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestConferenceController_UpdateConference_Forbidden(t *testing.T) {
	ctrl := NewConferenceController(testLogger(), &fakeConferenceService{err: domain.ErrForbidden}, &fakeFeaturedService{})
	req := httptest.NewRequest(http.MethodPatch, "/conferences/conf-1", bytes.NewBufferString(`{"name":"New Name"}`))
	req.SetPathValue("conferenceID", "conf-1")
	req = withCaller(req, "profile-2", "other@example.com")
	rec := httptest.NewRecorder()

	ctrl.UpdateConference(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	errObj, ok := envelope["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "forbidden", errObj["code"])
}

func TestConferenceController_GetConference(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeConferenceService{got: &domain.ConferenceWithOrganizer{
			Conference:           &domain.Conference{ID: "conf-1", Name: "GopherCon"},
			OrganizerDisplayName: "Ada",
		}}
		ctrl := NewConferenceController(testLogger(), svc, &fakeFeaturedService{})
		req := httptest.NewRequest(http.MethodGet, "/conferences/conf-1", nil)
		req.SetPathValue("conferenceID", "conf-1")
		rec := httptest.NewRecorder()

		ctrl.GetConference(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		data, ok := envelope["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ada", data["organizer_display_name"])
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewConferenceController(testLogger(), &fakeConferenceService{err: domain.ErrNotFound}, &fakeFeaturedService{})
		req := httptest.NewRequest(http.MethodGet, "/conferences/missing", nil)
		req.SetPathValue("conferenceID", "missing")
		rec := httptest.NewRecorder()

		ctrl.GetConference(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestConferenceController_QueryConferences(t *testing.T) {
	t.Run("passes filters through", func(t *testing.T) {
		svc := &fakeConferenceService{queried: []*domain.ConferenceWithOrganizer{}}
		ctrl := NewConferenceController(testLogger(), svc, &fakeFeaturedService{})
		body := `{"filters":[{"field":"city","operator":"=","value":"Denver"}]}`
		req := httptest.NewRequest(http.MethodPost, "/conferences/query", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		ctrl.QueryConferences(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, svc.lastFilters, 1)
		assert.Equal(t, "city", svc.lastFilters[0].Field)
	})

	t.Run("invalid filter", func(t *testing.T) {
		ctrl := NewConferenceController(testLogger(), &fakeConferenceService{err: query.ErrInvalidFilter}, &fakeFeaturedService{})
		body := `{"filters":[{"field":"city","operator":">","value":"a"},{"field":"month","operator":"<","value":6}]}`
		req := httptest.NewRequest(http.MethodPost, "/conferences/query", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()

		ctrl.QueryConferences(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestConferenceController_GetAnnouncement(t *testing.T) {
	ctrl := NewConferenceController(testLogger(), &fakeConferenceService{ann: "Last chance!"}, &fakeFeaturedService{})
	req := httptest.NewRequest(http.MethodGet, "/conferences/announcement", nil)
	rec := httptest.NewRecorder()

	ctrl.GetAnnouncement(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec.Body)
	data, ok := envelope["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Last chance!", data["announcement"])
}

func TestConferenceController_GetFeaturedSpeaker(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		featured := &fakeFeaturedService{featured: &domain.FeaturedSpeaker{
			SpeakerKey:   "spk-1",
			SessionNames: []string{"Intro", "Deep Dive"},
		}}
		ctrl := NewConferenceController(testLogger(), &fakeConferenceService{}, featured)
		req := httptest.NewRequest(http.MethodGet, "/conferences/conf-1/featured-speaker", nil)
		req.SetPathValue("conferenceID", "conf-1")
		rec := httptest.NewRecorder()

		ctrl.GetFeaturedSpeaker(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		data, ok := envelope["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "spk-1", data["speaker_key"])
	})

	t.Run("none set", func(t *testing.T) {
		ctrl := NewConferenceController(testLogger(), &fakeConferenceService{}, &fakeFeaturedService{})
		req := httptest.NewRequest(http.MethodGet, "/conferences/conf-1/featured-speaker", nil)
		req.SetPathValue("conferenceID", "conf-1")
		rec := httptest.NewRecorder()

		ctrl.GetFeaturedSpeaker(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		envelope := decodeEnvelope(t, rec.Body)
		assert.Nil(t, envelope["data"])
	})
}
