package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/query"
)

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSessionRequest is the request body for POST /conferences/{conferenceID}/sessions.
type CreateSessionRequest struct {
	Name          string `json:"name"`
	Highlights    string `json:"highlights"`
	SpeakerKey    string `json:"speaker_key"`
	TypeOfSession string `json:"type_of_session"`
	Date          string `json:"date"`
	// StartTime uses the 24h "HH:MM" format.
	Time     string `json:"time"`
	Duration *int   `json:"duration"`
}

// Validate implements Validator.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Date != "" {
		if _, err := time.Parse(dateLayout, c.Date); err != nil {
			errs = append(errs, "date must use the YYYY-MM-DD format")
		}
	}
	if c.Time != "" {
		if _, err := query.ParseTimeOfDay(c.Time); err != nil {
			errs = append(errs, "time must use the 24h HH:MM format")
		}
	}
	if c.Duration != nil && *c.Duration < 0 {
		errs = append(errs, "duration must not be negative")
	}
	return errs
}

// CreateSession godoc
// @Summary Create a session
// @Description Creates a session under the conference. Only the conference organizer may create sessions.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} helpers.APIResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	session := &domain.Session{
		ConferenceID:  conferenceID,
		Name:          req.Name,
		Highlights:    req.Highlights,
		SpeakerKey:    req.SpeakerKey,
		TypeOfSession: req.TypeOfSession,
		Date:          parseDate(req.Date),
		Duration:      req.Duration,
	}
	if req.Time != "" {
		minutes, _ := query.ParseTimeOfDay(req.Time)
		session.StartTime = &minutes
	}
	created, err := c.Service.CreateSession(r.Context(), caller.ProfileID, session)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// ListConferenceSessions godoc
// @Summary List sessions of a conference
// @Description Returns all sessions of the conference, optionally filtered by type via the type query parameter.
// @Tags sessions
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Param type query string false "Session type filter"
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) ListConferenceSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	var sessions []*domain.Session
	var err error
	if typeOfSession := r.URL.Query().Get("type"); typeOfSession != "" {
		sessions, err = c.Service.GetConferenceSessionsByType(r.Context(), conferenceID, typeOfSession)
	} else {
		sessions, err = c.Service.GetConferenceSessions(r.Context(), conferenceID)
	}
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListSessionsBySpeaker godoc
// @Summary List sessions by speaker
// @Description Returns all sessions given by the speaker across all conferences.
// @Tags sessions
// @Produce json
// @Param speakerKey path string true "Speaker key"
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Router /speakers/{speakerKey}/sessions [get]
func (c *SessionController) ListSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speakerKey := r.PathValue("speakerKey")
	if speakerKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speakerKey")
		return
	}
	sessions, err := c.Service.GetSessionsBySpeaker(r.Context(), speakerKey)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// QuerySessionsRequest is the request body for POST /sessions/query.
type QuerySessionsRequest struct {
	Filters []query.Filter `json:"filters"`
}

// QuerySessions godoc
// @Summary Query sessions
// @Description Runs field/operator/value filters over all sessions. At most one field may carry inequality operators.
// @Tags sessions
// @Accept json
// @Produce json
// @Param filters body QuerySessionsRequest true "Filter list"
// @Success 200 {object} helpers.APIResponse "data contains the matching sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions/query [post]
func (c *SessionController) QuerySessions(w http.ResponseWriter, r *http.Request) {
	var req QuerySessionsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sessions, err := c.Service.QuerySessions(r.Context(), req.Filters)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// QueryConferenceSessions godoc
// @Summary Query sessions of a conference
// @Description Runs field/operator/value filters over the sessions of one conference. At most one field may carry inequality operators.
// @Tags sessions
// @Accept json
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Param filters body QuerySessionsRequest true "Filter list"
// @Success 200 {object} helpers.APIResponse "data contains the matching sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions/query [post]
func (c *SessionController) QueryConferenceSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	var req QuerySessionsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sessions, err := c.Service.QueryConferenceSessions(r.Context(), conferenceID, req.Filters)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// ListSessionsStartingBefore godoc
// @Summary List sessions starting before a time of day
// @Description Returns sessions starting strictly before the given time, filtered by type or by excluded type. Defaults: exclude workshop, before 19:00.
// @Tags sessions
// @Produce json
// @Param type query string false "Only sessions of this type"
// @Param exclude_type query string false "Only sessions not of this type (default workshop when type is absent)"
// @Param before query string false "Upper bound start time, 24h HH:MM (default 19:00)"
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions/starting-before [get]
func (c *SessionController) ListSessionsStartingBefore(w http.ResponseWriter, r *http.Request) {
	before := r.URL.Query().Get("before")
	if before == "" {
		before = "19:00"
	}
	var sessions []*domain.Session
	var err error
	if typeOfSession := r.URL.Query().Get("type"); typeOfSession != "" {
		sessions, err = c.Service.SessionsByTypeBeforeTime(r.Context(), typeOfSession, before)
	} else {
		excludeType := r.URL.Query().Get("exclude_type")
		if excludeType == "" {
			excludeType = "workshop"
		}
		sessions, err = c.Service.SessionsExcludingTypeBeforeTime(r.Context(), excludeType, before)
	}
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
