package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	BaseURL        string
	MapsBaseURL    string
	MapsAPIKey     string
	StatePath      string
	HTTPTimeout    time.Duration
	SearchDebounce time.Duration
	DefaultLat     float64
	DefaultLng     float64
	Language       string
}

func Load() (*Config, error) {
	baseURL := os.Getenv("BASAAJ_API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("BASAAJ_API_BASE_URL environment variable is required but not set")
	}

	mapsBaseURL := os.Getenv("BASAAJ_MAPS_BASE_URL")
	if mapsBaseURL == "" {
		mapsBaseURL = "https://maps.googleapis.com/maps/api"
	}

	mapsAPIKey := os.Getenv("BASAAJ_MAPS_API_KEY")
	if mapsAPIKey == "" {
		slog.Warn("BASAAJ_MAPS_API_KEY not set, location detection and search will fail")
	}

	statePath := os.Getenv("BASAAJ_STATE_FILE")
	if statePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory for state file: %w", err)
		}
		statePath = filepath.Join(home, ".basaaj", "state.json")
	}

	httpTimeoutStr := os.Getenv("BASAAJ_HTTP_TIMEOUT")
	if httpTimeoutStr == "" {
		httpTimeoutStr = "15s"
	}
	httpTimeout, err := time.ParseDuration(httpTimeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BASAAJ_HTTP_TIMEOUT %q: %w", httpTimeoutStr, err)
	}

	debounceStr := os.Getenv("BASAAJ_SEARCH_DEBOUNCE")
	if debounceStr == "" {
		debounceStr = "300ms"
	}
	debounce, err := time.ParseDuration(debounceStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BASAAJ_SEARCH_DEBOUNCE %q: %w", debounceStr, err)
	}

	var defaultLat, defaultLng float64
	if v := os.Getenv("BASAAJ_DEFAULT_LAT"); v != "" {
		defaultLat, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BASAAJ_DEFAULT_LAT %q: %w", v, err)
		}
	}
	if v := os.Getenv("BASAAJ_DEFAULT_LNG"); v != "" {
		defaultLng, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid BASAAJ_DEFAULT_LNG %q: %w", v, err)
		}
	}

	language := os.Getenv("BASAAJ_LANGUAGE")
	if language == "" {
		language = "en"
	}

	return &Config{
		BaseURL:        baseURL,
		MapsBaseURL:    mapsBaseURL,
		MapsAPIKey:     mapsAPIKey,
		StatePath:      statePath,
		HTTPTimeout:    httpTimeout,
		SearchDebounce: debounce,
		DefaultLat:     defaultLat,
		DefaultLng:     defaultLng,
		Language:       language,
	}, nil
}
