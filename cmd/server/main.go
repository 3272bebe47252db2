package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"conferencecentral/config"
	_ "conferencecentral/docs"
	"conferencecentral/internal/adapters/auth"
	"conferencecentral/internal/adapters/cache"
	"conferencecentral/internal/adapters/email"
	"conferencecentral/internal/adapters/tasks"
	delivery "conferencecentral/internal/delivery/http"
	"conferencecentral/internal/domain"
	"conferencecentral/internal/repository/postgres"
	"conferencecentral/internal/services"
)

const (
	serviceTimeout  = 10 * time.Second
	shutdownTimeout = 15 * time.Second
	queueWorkers    = 4
)

// @title Conference Central API
// @version 1.0
// @description Conference management backend: conferences, sessions, speakers, registrations, and wishlists.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	profileRepo := postgres.NewProfileRepository(db)
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	speakerRepo := postgres.NewSpeakerRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	memCache := cache.NewMemoryCache()
	queue := tasks.NewQueue(logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	issuer := auth.NewJWTIssuer(cfg.JWTSecret)
	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	authService := services.NewAuthService(profileRepo, hasher, issuer, cfg.JWTExpiry, serviceTimeout)
	profileService := services.NewProfileService(profileRepo, serviceTimeout)
	conferenceService := services.NewConferenceService(conferenceRepo, profileRepo, memCache, queue, logger, serviceTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, queue, logger, serviceTimeout)
	speakerService := services.NewSpeakerService(speakerRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, profileRepo, conferenceRepo, sessionRepo, queue, logger, serviceTimeout)
	featuredService := services.NewFeaturedSpeakerService(sessionRepo, memCache, serviceTimeout)
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	queue.Register(domain.TaskSetFeaturedSpeaker, func(ctx context.Context, params map[string]string) error {
		_, err := featuredService.Recompute(ctx, params["conference_id"])
		return err
	})
	queue.Register(domain.TaskSetAnnouncement, func(ctx context.Context, params map[string]string) error {
		_, err := conferenceService.RecomputeAnnouncement(ctx)
		return err
	})
	queue.Register(domain.TaskSendConfirmationEmail, func(ctx context.Context, params map[string]string) error {
		return emailService.SendConferenceCreated(ctx, &domain.ConferenceCreatedEmailData{
			Email:          params["email"],
			ConferenceName: params["conference_name"],
			ConferenceID:   params["conference_id"],
		})
	})

	queueCtx, stopQueue := context.WithCancel(context.Background())
	queue.Start(queueCtx, queueWorkers)

	router := delivery.NewRouter(delivery.RouterConfig{
		Logger:          logger,
		TokenVerifier:   verifier,
		AllowedOrigins:  cfg.AllowedOrigins,
		AuthService:     authService,
		ProfileService:  profileService,
		Conferences:     conferenceService,
		Sessions:        sessionService,
		Speakers:        speakerService,
		Registrations:   registrationService,
		FeaturedSpeaker: featuredService,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	stopQueue()
	queue.Wait()
	logger.Info("stopped")
}
