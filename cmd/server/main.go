package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"interview-scheduler/internal/app"
	"interview-scheduler/internal/config"
	"interview-scheduler/internal/logging"
	"interview-scheduler/internal/server"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	a := &app.App{
		Store: app.NewPostgresStore(pool),
		Cfg:   cfg,
		Log:   logger,
	}

	if prefs, err := app.NewPreferenceStore(cfg); err != nil {
		// The preference cache is best effort; run without it.
		logger.Warn("preference cache unavailable", zap.Error(err))
	} else {
		a.Prefs = prefs
	}

	// Best effort: a failed import leaves the snapshot in place and is
	// retried on the next startup.
	if err := a.ImportLegacySnapshot(ctx, cfg.LegacySnapshotPath); err != nil {
		logger.Warn("legacy snapshot import failed", zap.Error(err))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.GET("/healthz", a.HealthzHandler)

	// OAuth2 callback (must be before auth middleware)
	router.GET("/oauth2callback", a.GoogleOAuth2CallbackHandler)

	router.Use(app.AuthMiddleware(cfg))

	api := router.Group("/api")
	{
		api.GET("/interviewers", a.ListInterviewersHandler)
		api.GET("/teams", a.ListTeamsHandler)
		api.GET("/teams/memberships", a.TeamMembershipsHandler)

		api.GET("/availability", a.AllAvailabilityHandler)
		api.GET("/interviewers/:id/availability", a.GetAvailabilityHandler)
		api.PUT("/interviewers/:id/availability", a.ReplaceAvailabilityHandler)

		api.GET("/grid", a.GridHandler)
		api.GET("/schedule/options", a.ScheduleOptionsHandler)

		api.GET("/bookings", a.ListBookingsHandler)
		api.POST("/bookings", a.CreateBookingHandler)

		api.GET("/preferences/current-interviewer", a.GetCurrentInterviewerHandler)
		api.PUT("/preferences/current-interviewer", a.SetCurrentInterviewerHandler)

		calendar := api.Group("/calendar")
		{
			calendar.GET("/auth", a.GoogleAuthHandler)
			calendar.GET("/events", a.GoogleCalendarEventsHandler)
			calendar.GET("/calendars", a.GoogleCalendarListHandler)
		}
	}

	logger.Info("starting server", zap.String("port", cfg.AppPort))
	server.Run(router, cfg.AppPort)
}
