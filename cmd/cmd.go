package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cleanup-backend/internal/config"
	"cleanup-backend/internal/handlers"
	"cleanup-backend/internal/middleware"
	"cleanup-backend/internal/repository"
	"cleanup-backend/internal/services"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Run() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Setup logger
	setupLogger(cfg.Log.Level)

	// Initialize the in-memory store and the engine
	store := repository.NewStore()
	gate := services.NewSessionGate(store, time.Duration(cfg.Engine.MaxDelayMs)*time.Millisecond)
	hub := services.NewNotificationHub(cfg.Engine.NotificationRadiusM)

	userService := services.NewUserService(store, gate, hub, cfg.JWT.Secret)
	eventService := services.NewEventService(store, gate, hub)
	wastelandService := services.NewWastelandService(store, gate, hub)
	dumpsterService := services.NewDumpsterService(store, gate, hub)

	photoService, err := services.NewPhotoService(
		cfg.AWS.Region,
		cfg.AWS.S3Bucket,
		cfg.AWS.AccessKey,
		cfg.AWS.SecretKey,
		cfg.AWS.Endpoint,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create photo service")
	}

	var pusher *services.PushSender
	if cfg.APNs.Enabled {
		pusher, err = services.NewPushSender(
			cfg.APNs.KeyFile,
			cfg.APNs.KeyID,
			cfg.APNs.TeamID,
			cfg.APNs.Topic,
			cfg.APNs.Production,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create push sender")
		}
	}

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, gate)
	eventHandler := handlers.NewEventHandler(eventService)
	wastelandHandler := handlers.NewWastelandHandler(wastelandService)
	dumpsterHandler := handlers.NewDumpsterHandler(dumpsterService)
	snapshotHandler := handlers.NewSnapshotHandler(eventService, wastelandService, dumpsterService, userService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	listenerHandler := handlers.NewListenerHandler(hub, pusher)
	wsHandler := handlers.NewWebSocketHandler(hub, userService)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(corsMiddleware)

	// Routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/users", userHandler.SignUp)
		r.Post("/login", userHandler.Login)
		r.Get("/users", userHandler.GetUsers)
		r.Get("/events", eventHandler.GetEvents)
		r.Get("/events/{event_id}", eventHandler.GetEvent)
		r.Get("/wastelands", wastelandHandler.GetWastelands)
		r.Get("/dumpsters", dumpsterHandler.GetDumpsters)
		r.Get("/snapshot", snapshotHandler.GetSnapshot)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(userService, gate))
			r.Post("/logout", userHandler.Logout)
			r.Get("/me", userHandler.Me)
			r.Patch("/me", userHandler.UpdateMe)
			r.Delete("/me", userHandler.DeleteMe)

			r.Post("/events", eventHandler.CreateEvent)
			r.Put("/events/{event_id}", eventHandler.UpdateEvent)
			r.Delete("/events/{event_id}", eventHandler.DeleteEvent)
			r.Post("/events/{event_id}/join", eventHandler.JoinEvent)
			r.Post("/events/{event_id}/leave", eventHandler.LeaveEvent)
			r.Get("/events/{event_id}/messages", eventHandler.GetMessages)
			r.Post("/events/{event_id}/messages", eventHandler.SendMessage)
			r.Get("/invitations", eventHandler.GetMyInvitations)
			r.Post("/invitations", eventHandler.SendInvitation)

			r.Post("/wastelands", wastelandHandler.CreateWasteland)
			r.Post("/wastelands/{wasteland_id}/clear", wastelandHandler.ClearWasteland)

			r.Post("/dumpsters", dumpsterHandler.CreateDumpster)
			r.Put("/dumpsters/{dumpster_id}", dumpsterHandler.UpdateDumpster)
			r.Delete("/dumpsters/{dumpster_id}", dumpsterHandler.DeleteDumpster)

			r.Post("/photos/upload", photoHandler.Upload)

			r.Post("/listeners/push", listenerHandler.RegisterPush)
			r.Put("/listeners/{listener_id}", listenerHandler.UpdateListener)
			r.Delete("/listeners/{listener_id}", listenerHandler.RemoveListener)
		})
	})

	// WebSocket route
	r.Get("/ws", wsHandler.HandleWebSocket)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("host", cfg.Server.Host).
			Int("port", cfg.Server.Port).
			Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// setupLogger configures zerolog logger
func setupLogger(level string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
