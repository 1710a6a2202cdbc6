// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"yanindayim/internal/ai"
	"yanindayim/internal/config"
	"yanindayim/internal/handlers"
	"yanindayim/internal/middleware"
	"yanindayim/internal/repository"
	"yanindayim/internal/service"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Bootstrap logger until the config is loaded.
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...")

	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if err := repository.AutoMigrate(db); err != nil {
		slog.Error("Error migrating database schema", slog.Any("error", err))
		os.Exit(1)
	}

	gateway, err := ai.NewGateway(context.Background(), config.Cfg.AI, logger)
	if err != nil {
		slog.Error("Error initializing AI gateway", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency injection
	userRepo := repository.NewGormUserRepository()
	guideRepo := repository.NewGormGuideRepository()
	progressRepo := repository.NewGormProgressRepository()
	contactRepo := repository.NewGormContactRepository()
	alertRepo := repository.NewGormAlertRepository()
	problemRepo := repository.NewGormProblemRepository()
	ideaRepo := repository.NewGormIdeaRepository()
	scenarioRepo := repository.NewGormScenarioRepository()

	mailer := service.NewMailer(&config.Cfg)

	authService := service.NewAuthService(db, userRepo)
	guideService := service.NewGuideService(db, guideRepo, gateway, config.Cfg.App)
	progressService := service.NewProgressService(db, progressRepo, guideRepo)
	companionService := service.NewCompanionService(db, contactRepo, alertRepo, guideRepo, mailer, config.Cfg.App)
	problemService := service.NewProblemService(db, problemRepo, guideRepo, gateway)
	ideaService := service.NewIdeaService(db, ideaRepo)
	scenarioService := service.NewScenarioService(db, scenarioRepo, gateway)

	sessionManager := middleware.NewSessionManager(&config.Cfg)

	authHandler := handlers.NewAuthHandler(authService, sessionManager, logger)
	guideHandler := handlers.NewGuideHandler(guideService, logger)
	progressHandler := handlers.NewProgressHandler(progressService, logger)
	companionHandler := handlers.NewCompanionHandler(companionService, logger)
	problemHandler := handlers.NewProblemHandler(problemService, logger)
	ideaHandler := handlers.NewIdeaHandler(ideaService, logger)
	safetyHandler := handlers.NewSafetyHandler(scenarioService, logger)
	adminHandler := handlers.NewAdminHandler(guideService, ideaService, problemService, scenarioService, logger)

	// Router
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   config.Cfg.CORS.AllowedMethods,
		AllowedHeaders:   config.Cfg.CORS.AllowedHeaders,
		ExposedHeaders:   config.Cfg.CORS.ExposedHeaders,
		AllowCredentials: config.Cfg.CORS.AllowCredentials,
		MaxAge:           config.Cfg.CORS.MaxAge,
	})
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(sessionManager.Middleware)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		// Guide catalog
		r.Get("/guides", guideHandler.ListHome)
		r.Get("/guides/{guideID}", guideHandler.GetGuide)
		r.Post("/guides/report-problem", problemHandler.Report)
		r.Get("/search", guideHandler.Search)
		r.Post("/help/intent", guideHandler.Intent)

		// Ideas
		r.Post("/ideas/create", ideaHandler.Create)

		// Progress (session-gated inside the handlers)
		r.Post("/progress/save", progressHandler.Save)
		r.Post("/progress/complete", progressHandler.Complete)
		r.Get("/progress/{guideID}", progressHandler.Get)
		r.Get("/profile", progressHandler.Profile)

		// Companion mode
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", companionHandler.ListContacts)
			r.Post("/", companionHandler.AddContact)
			r.Delete("/{contactID}", companionHandler.DeleteContact)
		})
		r.Post("/companion/notify", companionHandler.Notify)
		r.Get("/companion/alerts", companionHandler.ListAlerts)

		// Fraud awareness
		r.Get("/safety/scenario", safetyHandler.Scenario)

		// Admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/dashboard", adminHandler.Dashboard)

			r.Route("/guides", func(r chi.Router) {
				r.Get("/", adminHandler.ListGuides)
				r.Post("/", adminHandler.CreateGuide)
				r.Post("/structured", adminHandler.CreateStructuredGuide)
				r.Put("/{guideID}", adminHandler.UpdateGuide)
				r.Delete("/{guideID}", adminHandler.DeleteGuide)
				r.Get("/{guideID}/test", adminHandler.TestGuide)
			})
			r.Post("/generate", adminHandler.GenerateGuide)

			r.Get("/ideas", adminHandler.ListIdeas)
			r.Delete("/ideas/{ideaID}", adminHandler.DeleteIdea)

			r.Get("/problems", adminHandler.ListProblems)
			r.Delete("/problems/{problemID}", adminHandler.DeleteProblem)
			r.Post("/problems/clear", adminHandler.ClearProblems)
			r.Get("/problems/export", adminHandler.ExportProblems)

			r.Route("/scenarios", func(r chi.Router) {
				r.Get("/", adminHandler.ListScenarios)
				r.Post("/", adminHandler.CreateScenario)
				r.Delete("/{scenarioID}", adminHandler.DeleteScenario)
			})
		})
	})

	// Static assets, including AI-generated step illustrations.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := sqlDB.PingContext(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
