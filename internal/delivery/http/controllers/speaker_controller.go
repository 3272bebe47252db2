package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// AddSpeakerRequest is the request body for POST /speakers.
type AddSpeakerRequest struct {
	DisplayName string `json:"display_name"`
	Biography   string `json:"biography"`
}

// Validate implements Validator.
func (r AddSpeakerRequest) Validate() []string {
	var errs []string
	if r.DisplayName == "" {
		errs = append(errs, "display_name is required")
	}
	return errs
}

// AddSpeaker godoc
// @Summary Add a speaker
// @Description Creates a free-standing speaker. Sessions reference speakers by key.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body AddSpeakerRequest true "Speaker data"
// @Success 201 {object} helpers.APIResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /speakers [post]
func (c *SpeakerController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	var req AddSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speaker := &domain.Speaker{
		DisplayName: req.DisplayName,
		Biography:   req.Biography,
	}
	created, err := c.Service.AddSpeaker(r.Context(), caller.ProfileID, speaker)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetSpeaker godoc
// @Summary Get a speaker
// @Tags speakers
// @Produce json
// @Param speakerKey path string true "Speaker key"
// @Success 200 {object} helpers.APIResponse "data contains the speaker"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /speakers/{speakerKey} [get]
func (c *SpeakerController) GetSpeaker(w http.ResponseWriter, r *http.Request) {
	speakerKey := r.PathValue("speakerKey")
	if speakerKey == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing speakerKey")
		return
	}
	speaker, err := c.Service.GetSpeaker(r.Context(), speakerKey)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// ListSpeakers godoc
// @Summary List all speakers
// @Tags speakers
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the speakers"
// @Router /speakers [get]
func (c *SpeakerController) ListSpeakers(w http.ResponseWriter, r *http.Request) {
	speakers, err := c.Service.GetAllSpeakers(r.Context())
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}
