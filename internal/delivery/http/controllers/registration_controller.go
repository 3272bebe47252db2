package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// transitionResult reports whether a registration or wishlist transition
// changed state.
type transitionResult struct {
	Changed bool `json:"changed"`
}

func (c *RegistrationController) writeTransition(w http.ResponseWriter, r *http.Request, changed bool, err error) {
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, transitionResult{Changed: changed})
}

// RegisterForConference godoc
// @Summary Register for a conference
// @Description Takes a seat in the conference for the caller. Registering twice or with no seats left fails.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains {changed: true}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /conferences/{conferenceID}/registration [post]
func (c *RegistrationController) RegisterForConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	changed, err := c.Service.RegisterForConference(r.Context(), caller.ProfileID, conferenceID)
	c.writeTransition(w, r, changed, err)
}

// UnregisterFromConference godoc
// @Summary Unregister from a conference
// @Description Returns the caller's seat. Unregistering while not registered reports changed: false.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains {changed: bool}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/registration [delete]
func (c *RegistrationController) UnregisterFromConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	changed, err := c.Service.UnregisterFromConference(r.Context(), caller.ProfileID, conferenceID)
	c.writeTransition(w, r, changed, err)
}

// AddSessionToWishlist godoc
// @Summary Add a session to the wishlist
// @Description Adds the session to the caller's wishlist. Wishlisting does not require conference registration.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains {changed: true}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /sessions/{sessionID}/wishlist [post]
func (c *RegistrationController) AddSessionToWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	changed, err := c.Service.AddSessionToWishlist(r.Context(), caller.ProfileID, sessionID)
	c.writeTransition(w, r, changed, err)
}

// RemoveSessionFromWishlist godoc
// @Summary Remove a session from the wishlist
// @Description Removes the session from the caller's wishlist. Removing an absent session reports changed: false.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} helpers.APIResponse "data contains {changed: bool}"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /sessions/{sessionID}/wishlist [delete]
func (c *RegistrationController) RemoveSessionFromWishlist(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("sessionID")
	if sessionID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing sessionID")
		return
	}
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	changed, err := c.Service.RemoveSessionFromWishlist(r.Context(), caller.ProfileID, sessionID)
	c.writeTransition(w, r, changed, err)
}

// ListConferencesToAttend godoc
// @Summary List conferences the caller attends
// @Description Returns the caller's registered conferences in registration order, with organizer names.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/attending [get]
func (c *RegistrationController) ListConferencesToAttend(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	confs, err := c.Service.GetConferencesToAttend(r.Context(), caller.ProfileID)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, confs)
}

// ListWishlistSessions godoc
// @Summary List the caller's wishlisted sessions
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the sessions"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /sessions/wishlist [get]
func (c *RegistrationController) ListWishlistSessions(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	sessions, err := c.Service.GetSessionsInWishlist(r.Context(), caller.ProfileID)
	if err != nil {
		if helpers.IsInternal(err) {
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		}
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
