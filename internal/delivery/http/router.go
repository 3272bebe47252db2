package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// RouterConfig bundles everything the router needs.
type RouterConfig struct {
	Logger          *slog.Logger
	TokenVerifier   domain.TokenVerifier
	AllowedOrigins  []string
	AuthService     domain.AuthService
	ProfileService  domain.ProfileService
	Conferences     domain.ConferenceService
	Sessions        domain.SessionService
	Speakers        domain.SpeakerService
	Registrations   domain.RegistrationService
	FeaturedSpeaker domain.FeaturedSpeakerService
}

// NewRouter builds the HTTP handler tree: all API routes, auth on the routes
// that act as the caller, plus CORS and request logging around the whole mux.
func NewRouter(cfg RouterConfig) http.Handler {
	authCtrl := controllers.NewAuthController(cfg.Logger, cfg.AuthService)
	profileCtrl := controllers.NewProfileController(cfg.Logger, cfg.ProfileService)
	confCtrl := controllers.NewConferenceController(cfg.Logger, cfg.Conferences, cfg.FeaturedSpeaker)
	sessionCtrl := controllers.NewSessionController(cfg.Logger, cfg.Sessions)
	speakerCtrl := controllers.NewSpeakerController(cfg.Logger, cfg.Speakers)
	regCtrl := controllers.NewRegistrationController(cfg.Logger, cfg.Registrations)

	auth := middleware.RequireAuth(cfg.TokenVerifier, cfg.Logger)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/signup", authCtrl.SignUp)
	mux.HandleFunc("POST /auth/login", authCtrl.Login)

	mux.HandleFunc("GET /profile", auth(profileCtrl.GetProfile))
	mux.HandleFunc("PUT /profile", auth(profileCtrl.SaveProfile))

	mux.HandleFunc("POST /conferences", auth(confCtrl.CreateConference))
	mux.HandleFunc("GET /conferences/created", auth(confCtrl.ListCreated))
	mux.HandleFunc("GET /conferences/attending", auth(regCtrl.ListConferencesToAttend))
	mux.HandleFunc("POST /conferences/query", confCtrl.QueryConferences)
	mux.HandleFunc("GET /conferences/announcement", confCtrl.GetAnnouncement)
	mux.HandleFunc("GET /conferences/{conferenceID}", confCtrl.GetConference)
	mux.HandleFunc("PATCH /conferences/{conferenceID}", auth(confCtrl.UpdateConference))
	mux.HandleFunc("GET /conferences/{conferenceID}/featured-speaker", confCtrl.GetFeaturedSpeaker)
	mux.HandleFunc("POST /conferences/{conferenceID}/registration", auth(regCtrl.RegisterForConference))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registration", auth(regCtrl.UnregisterFromConference))
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(sessionCtrl.CreateSession))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", sessionCtrl.ListConferenceSessions)
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions/query", sessionCtrl.QueryConferenceSessions)

	mux.HandleFunc("POST /sessions/query", sessionCtrl.QuerySessions)
	mux.HandleFunc("GET /sessions/starting-before", sessionCtrl.ListSessionsStartingBefore)
	mux.HandleFunc("GET /sessions/wishlist", auth(regCtrl.ListWishlistSessions))
	mux.HandleFunc("POST /sessions/{sessionID}/wishlist", auth(regCtrl.AddSessionToWishlist))
	mux.HandleFunc("DELETE /sessions/{sessionID}/wishlist", auth(regCtrl.RemoveSessionFromWishlist))

	mux.HandleFunc("POST /speakers", auth(speakerCtrl.AddSpeaker))
	mux.HandleFunc("GET /speakers", speakerCtrl.ListSpeakers)
	mux.HandleFunc("GET /speakers/{speakerKey}", speakerCtrl.GetSpeaker)
	mux.HandleFunc("GET /speakers/{speakerKey}/sessions", sessionCtrl.ListSessionsBySpeaker)

	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	return handler
}
