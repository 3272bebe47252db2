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

type ConferenceController struct {
	Logger          *slog.Logger
	Service         domain.ConferenceService
	FeaturedService domain.FeaturedSpeakerService
}

func NewConferenceController(logger *slog.Logger, svc domain.ConferenceService, featured domain.FeaturedSpeakerService) *ConferenceController {
	return &ConferenceController{
		Logger:          logger,
		Service:         svc,
		FeaturedService: featured,
	}
}

const dateLayout = "2006-01-02"

// CreateConferenceRequest is the request body for POST /conferences.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Topics       []string `json:"topics"`
	City         string   `json:"city"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements Validator.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	for _, d := range []string{c.StartDate, c.EndDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			errs = append(errs, "dates must use the YYYY-MM-DD format")
			break
		}
	}
	return errs
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// CreateConference godoc
// @Summary Create a conference
// @Description Creates a conference owned by the caller. Seats are initialized from max_attendees.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body CreateConferenceRequest true "Conference data"
// @Success 201 {object} helpers.APIResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conf := &domain.Conference{
		Name:         req.Name,
		Description:  req.Description,
		Topics:       req.Topics,
		City:         req.City,
		StartDate:    parseDate(req.StartDate),
		EndDate:      parseDate(req.EndDate),
		MaxAttendees: req.MaxAttendees,
	}
	created, err := c.Service.CreateConference(r.Context(), caller.ProfileID, caller.Email, conf)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// UpdateConferenceRequest is the request body for PATCH /conferences/{conferenceID}.
// All fields optional; omitted fields are unchanged.
type UpdateConferenceRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Topics       []string `json:"topics"`
	City         *string  `json:"city"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	MaxAttendees *int     `json:"max_attendees"`
}

// Validate implements Validator.
func (u UpdateConferenceRequest) Validate() []string {
	var errs []string
	for _, d := range []*string{u.StartDate, u.EndDate} {
		if d == nil || *d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, *d); err != nil {
			errs = append(errs, "dates must use the YYYY-MM-DD format")
			break
		}
	}
	return errs
}

// UpdateConference godoc
// @Summary Update a conference
// @Description Applies a partial update. Only the organizer may update; ownership is immutable.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param conference body UpdateConferenceRequest true "Fields to update"
// @Success 200 {object} helpers.APIResponse "data contains the updated conference"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID} [patch]
func (c *ConferenceController) UpdateConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	var req UpdateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := &domain.ConferenceUpdate{
		Name:         req.Name,
		Description:  req.Description,
		Topics:       req.Topics,
		City:         req.City,
		MaxAttendees: req.MaxAttendees,
	}
	if req.StartDate != nil {
		upd.StartDate = parseDate(*req.StartDate)
	}
	if req.EndDate != nil {
		upd.EndDate = parseDate(*req.EndDate)
	}
	updated, err := c.Service.UpdateConference(r.Context(), caller.ProfileID, conferenceID, upd)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, updated)
}

// GetConference godoc
// @Summary Get a conference
// @Description Returns the conference with its organizer display name.
// @Tags conferences
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the conference"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	conf, err := c.Service.GetConference(r.Context(), conferenceID)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// ListCreated godoc
// @Summary List conferences created by the caller
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/created [get]
func (c *ConferenceController) ListCreated(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	confs, err := c.Service.ListConferencesCreated(r.Context(), caller.ProfileID)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

// QueryConferencesRequest is the request body for POST /conferences/query.
type QueryConferencesRequest struct {
	Filters []query.Filter `json:"filters"`
}

// QueryConferences godoc
// @Summary Query conferences
// @Description Runs field/operator/value filters over all conferences. At most one field may carry inequality operators.
// @Tags conferences
// @Accept json
// @Produce json
// @Param filters body QueryConferencesRequest true "Filter list"
// @Success 200 {object} helpers.APIResponse "data contains the matching conferences"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /conferences/query [post]
func (c *ConferenceController) QueryConferences(w http.ResponseWriter, r *http.Request) {
	var req QueryConferencesRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	confs, err := c.Service.QueryConferences(r.Context(), req.Filters)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

// GetAnnouncement godoc
// @Summary Get the sold-out announcement
// @Description Returns the cached nearly-sold-out announcement, empty when none is set.
// @Tags conferences
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the announcement string"
// @Router /conferences/announcement [get]
func (c *ConferenceController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Service.GetAnnouncement(r.Context())
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"announcement": announcement})
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured speaker of a conference
// @Description Returns the cached featured speaker, null when none is set.
// @Tags conferences
// @Produce json
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the featured speaker or null"
// @Router /conferences/{conferenceID}/featured-speaker [get]
func (c *ConferenceController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	featured, err := c.FeaturedService.Get(r.Context(), conferenceID)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, featured)
}
