package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_RequiresBaseURL(t *testing.T) {
	t.Setenv("BASAAJ_API_BASE_URL", "")
	if _, err := Load(); err == nil {
		t.Fatal("Expected error when BASAAJ_API_BASE_URL is unset")
	} else if !strings.Contains(err.Error(), "BASAAJ_API_BASE_URL") {
		t.Errorf("Error should name the missing variable: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BASAAJ_API_BASE_URL", "https://api.example.com")
	t.Setenv("BASAAJ_MAPS_BASE_URL", "")
	t.Setenv("BASAAJ_STATE_FILE", "/tmp/basaaj-test/state.json")
	t.Setenv("BASAAJ_HTTP_TIMEOUT", "")
	t.Setenv("BASAAJ_SEARCH_DEBOUNCE", "")
	t.Setenv("BASAAJ_LANGUAGE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.MapsBaseURL != "https://maps.googleapis.com/maps/api" {
		t.Errorf("MapsBaseURL default: got %q", cfg.MapsBaseURL)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout default: got %v", cfg.HTTPTimeout)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Errorf("SearchDebounce default: got %v", cfg.SearchDebounce)
	}
	if cfg.Language != "en" {
		t.Errorf("Language default: got %q", cfg.Language)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("BASAAJ_API_BASE_URL", "https://api.example.com")
	t.Setenv("BASAAJ_STATE_FILE", "/tmp/basaaj-test/state.json")
	t.Setenv("BASAAJ_HTTP_TIMEOUT", "5s")
	t.Setenv("BASAAJ_SEARCH_DEBOUNCE", "100ms")
	t.Setenv("BASAAJ_DEFAULT_LAT", "18.52")
	t.Setenv("BASAAJ_DEFAULT_LNG", "73.85")
	t.Setenv("BASAAJ_LANGUAGE", "hi")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.HTTPTimeout != 5*time.Second || cfg.SearchDebounce != 100*time.Millisecond {
		t.Errorf("Durations: got %v / %v", cfg.HTTPTimeout, cfg.SearchDebounce)
	}
	if cfg.DefaultLat != 18.52 || cfg.DefaultLng != 73.85 {
		t.Errorf("Default coordinates: got %v / %v", cfg.DefaultLat, cfg.DefaultLng)
	}
	if cfg.Language != "hi" {
		t.Errorf("Language: got %q", cfg.Language)
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("BASAAJ_API_BASE_URL", "https://api.example.com")
	t.Setenv("BASAAJ_HTTP_TIMEOUT", "fifteen")
	if _, err := Load(); err == nil {
		t.Error("Expected error for an unparseable timeout")
	}
}
