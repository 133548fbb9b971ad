package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/contactdesk/contactdesk-go/internal/config"
	"github.com/contactdesk/contactdesk-go/internal/crypto"
	"github.com/contactdesk/contactdesk-go/internal/handler"
	"github.com/contactdesk/contactdesk-go/internal/middleware"
	"github.com/contactdesk/contactdesk-go/internal/repository"
	"github.com/contactdesk/contactdesk-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repository.Open(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}

	hasher := crypto.NewHasher()
	tokens := crypto.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry)

	contactRepo := repository.NewContactRepository(db)
	contactService := service.NewContactService(contactRepo)
	contactHandler := handler.NewContactHandler(contactService)

	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo, hasher)
	userHandler := handler.NewUserHandler(userService)

	authService := service.NewAuthService(userRepo, tokens)
	authHandler := handler.NewAuthHandler(authService)

	apiKey := middleware.APIKey(cfg.APIKey)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", contactHandler.HandleList)
		r.Get("/{id}", contactHandler.HandleGet)
		r.With(apiKey, middleware.RequireJSONBody).Post("/", contactHandler.HandleCreate)
		r.With(apiKey, middleware.RequireJSONBody).Put("/{id}", contactHandler.HandleUpdate)
		r.With(apiKey).Delete("/{id}", contactHandler.HandleDelete)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Get("/{id}", userHandler.HandleGet)
		r.With(apiKey, middleware.RequireJSONBody).Post("/", userHandler.HandleCreate)
		r.With(apiKey, middleware.RequireJSONBody).Put("/{id}", userHandler.HandleUpdate)
		r.With(apiKey).Delete("/{id}", userHandler.HandleDelete)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/auth/login", authHandler.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(tokens))
		r.Get("/auth/me", authHandler.HandleMe)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
