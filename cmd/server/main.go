package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/Alka-null/nbcc2026gamesweb/internal/backend"
	"github.com/Alka-null/nbcc2026gamesweb/internal/config"
	"github.com/Alka-null/nbcc2026gamesweb/internal/database"
	"github.com/Alka-null/nbcc2026gamesweb/internal/handler"
	"github.com/Alka-null/nbcc2026gamesweb/internal/logger"
	"github.com/Alka-null/nbcc2026gamesweb/internal/router"
	"github.com/Alka-null/nbcc2026gamesweb/internal/session"
	"github.com/Alka-null/nbcc2026gamesweb/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting NBCC Games Gateway")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Session Store & Backend Client ─────────────────────
	store := session.NewStore(rdb, cfg.SessionTTL, log)
	client := backend.NewClient(cfg.BackendBaseURL, &http.Client{
		Timeout: cfg.BackendTimeout,
	})

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:      handler.NewAuthHandler(client, store, log),
		Quiz:      handler.NewQuizHandler(client, store, log),
		Jigsaw:    handler.NewJigsawHandler(client, cfg, log),
		Challenge: handler.NewChallengeHandler(client),
		Feedback:  handler.NewFeedbackHandler(client, store, log),
		QR:        handler.NewQRHandler(cfg, log),
		WS:        handler.NewWSHandler(store, log, cfg.AllowedOrigins),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, store, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
