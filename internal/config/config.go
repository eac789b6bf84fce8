package config

import (
	"fmt"
	"log/slog"
	"os"
)

type Config struct {
	ProjectID     string
	PlacesAPIKey  string
	YouTubeAPIKey string
	GeminiAPIKey  string
	GeminiModel   string
	Port          string
	VideoType     string
}

func Load() (*Config, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT environment variable is required but not set")
	}

	placesAPIKey := os.Getenv("PLACES_API_KEY")
	if placesAPIKey == "" {
		slog.Warn("PLACES_API_KEY not set, place search and details will fail")
	}

	youtubeAPIKey := os.Getenv("YOUTUBE_API_KEY")
	if youtubeAPIKey == "" {
		slog.Warn("YOUTUBE_API_KEY not set, channel lookup and video ingestion will fail")
	}

	geminiAPIKey := os.Getenv("GEMINI_API_KEY")
	if geminiAPIKey == "" {
		slog.Info("GEMINI_API_KEY not set, review suggestions disabled")
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.0-flash"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		slog.Info("Defaulting to port", "port", port)
	}

	videoType := os.Getenv("VIDEO_TYPE")
	if videoType == "" {
		videoType = "review"
	}

	return &Config{
		ProjectID:     projectID,
		PlacesAPIKey:  placesAPIKey,
		YouTubeAPIKey: youtubeAPIKey,
		GeminiAPIKey:  geminiAPIKey,
		GeminiModel:   geminiModel,
		Port:          port,
		VideoType:     videoType,
	}, nil
}
