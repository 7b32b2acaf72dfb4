package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds the project config values
type Config struct {
	BaseURL        string
	GeocodeBaseURL string
	RequestTimeout time.Duration
	MaxUploadBytes int64
	MaxMediaCount  int
	SearchDebounce time.Duration
	SearchMinChars int
}

// New sets up all config related services. Values come from the environment
// (with a .env file honored when present) and fall back to workable defaults.
func New() *Config {
	_ = godotenv.Load()

	//setup zap logger and replace default logger
	logger, err := setLogger(os.Getenv("APP_ENV"))
	if err == nil {
		defer logger.Sync()
		_ = zap.ReplaceGlobals(logger)
	}

	return &Config{
		BaseURL:        getEnv("API_BASE_URL", "http://localhost:5000/api/v1"),
		GeocodeBaseURL: getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		MaxUploadBytes: getInt64("MAX_UPLOAD_BYTES", 10<<20),
		MaxMediaCount:  getInt("MAX_MEDIA_COUNT", 4),
		SearchDebounce: getMillis("SEARCH_DEBOUNCE_MS", 400*time.Millisecond),
		SearchMinChars: getInt("SEARCH_MIN_CHARS", 3),
	}
}

// setLogger builds the zap logger matching the given environment
func setLogger(env string) (*zap.Logger, error) {
	switch env {
	case "production":
		return zap.NewProduction()
	case "development":
		return zap.NewDevelopment()
	default:
		return zap.NewExample(), nil
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		zap.S().Warnw("ignoring non-numeric config value", "key", key, "value", v)
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
		zap.S().Warnw("ignoring non-numeric config value", "key", key, "value", v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		zap.S().Warnw("ignoring malformed config duration", "key", key, "value", v)
	}
	return fallback
}

func getMillis(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return time.Duration(n) * time.Millisecond
		}
		zap.S().Warnw("ignoring non-numeric config value", "key", key, "value", v)
	}
	return fallback
}
