package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gestorrestaurants/restaurant-curator/internal/ai"
	"github.com/gestorrestaurants/restaurant-curator/internal/api"
	"github.com/gestorrestaurants/restaurant-curator/internal/config"
	"github.com/gestorrestaurants/restaurant-curator/internal/ingest"
	"github.com/gestorrestaurants/restaurant-curator/internal/places"
	"github.com/gestorrestaurants/restaurant-curator/internal/promoter"
	"github.com/gestorrestaurants/restaurant-curator/internal/staging"
	"github.com/gestorrestaurants/restaurant-curator/internal/storage"
	"github.com/gestorrestaurants/restaurant-curator/internal/webmeta"
	"github.com/gestorrestaurants/restaurant-curator/internal/youtube"
)

func main() {
	slog.Info("Starting restaurant curation console...")
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, err := storage.New(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Critical error initializing Firestore client", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	ytClient, err := youtube.New(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		slog.Error("Critical error initializing YouTube client", "error", err)
		os.Exit(1)
	}

	suggester, err := ai.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		slog.Error("Critical error initializing suggestion client", "error", err)
		os.Exit(1)
	}

	placeAPI := places.New(cfg.PlacesAPIKey)
	covers := webmeta.New()
	staged := staging.New(store)
	engine := promoter.New(store)
	ingestor := ingest.New(store, ytClient, cfg.VideoType)

	srv := api.NewServer(store, staged, engine, ingestor, placeAPI, ytClient, suggester, covers)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGTERM/SIGINT
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		sig := <-sigCh
		slog.Info("Received signal, shutting down gracefully...", "signal", sig)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}()

	slog.Info("Listening on port", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Failed to listen and serve", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}
