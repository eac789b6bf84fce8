package config

import "testing"

func TestLoadRequiresProjectID(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "")

	if _, err := Load(); err == nil {
		t.Fatal("Expected error when GOOGLE_CLOUD_PROJECT is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("PLACES_API_KEY", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("PORT", "")
	t.Setenv("VIDEO_TYPE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.ProjectID != "test-project" {
		t.Errorf("Expected project id, got %q", cfg.ProjectID)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.0-flash" {
		t.Errorf("Expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.VideoType != "review" {
		t.Errorf("Expected default video type, got %q", cfg.VideoType)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	t.Setenv("GOOGLE_CLOUD_PROJECT", "test-project")
	t.Setenv("PLACES_API_KEY", "pk")
	t.Setenv("YOUTUBE_API_KEY", "yk")
	t.Setenv("GEMINI_API_KEY", "gk")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("PORT", "9090")
	t.Setenv("VIDEO_TYPE", "shorts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.PlacesAPIKey != "pk" || cfg.YouTubeAPIKey != "yk" || cfg.GeminiAPIKey != "gk" {
		t.Errorf("Unexpected api keys: %+v", cfg)
	}
	if cfg.Port != "9090" || cfg.GeminiModel != "gemini-2.5-pro" || cfg.VideoType != "shorts" {
		t.Errorf("Unexpected overrides: %+v", cfg)
	}
}
