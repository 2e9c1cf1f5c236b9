// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// Application environments, which select the log format
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// ErrMissingMongoURI is returned when the mongo store is selected without a connection string
var ErrMissingMongoURI = errors.New("MONGODB_URI is required when STORE_DRIVER=mongo")

// Config holds all configuration for the server.
type Config struct {
	// Cloudinary credentials. Images are stored on local disk when any is empty.
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	AppEnv        string
	Port          string
	StoreDriver   string
	MongoURI      string
	MongoDatabase string

	// UploadsDir is where locally stored images live; served under /uploads
	UploadsDir string

	CORSAllowedOrigins []string

	MongoTimeout      time.Duration
	MediaTimeout      time.Duration
	RateLimitWindow   time.Duration
	RateLimitRequests int
	MaxUploadMB       int
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

var loadDotEnvOnce sync.Once

// LoadDotEnv reads .env into the environment once, if the file exists.
// Variables already set in the environment win.
func LoadDotEnv() {
	loadDotEnvOnce.Do(func() {
		if _, err := os.Stat(".env"); err != nil {
			return
		}
		if err := godotenv.Load(); err != nil {
			slog.Warn("failed to load .env", "error", err)
		}
	})
}

// Load reads configuration from environment variables with defaults.
func Load() (*Config, error) {
	LoadDotEnv()

	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", EnvLocal),
		Port:                getEnv("PORT", "5000"),
		StoreDriver:         strings.ToLower(getEnv("STORE_DRIVER", StoreMongo)),
		MongoURI:            firstEnv("MONGODB_URI", "MONGO_URI", "DATABASE_URI"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "boardgames"),
		CloudinaryCloudName: firstEnv("CLOUDINARY_CLOUD_NAME", "REACT_APP_CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    firstEnv("CLOUDINARY_API_KEY", "REACT_APP_CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: firstEnv("CLOUDINARY_API_SECRET", "REACT_APP_CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    os.Getenv("CLOUDINARY_FOLDER"),
		UploadsDir:          getEnv("UPLOADS_DIR", "uploads"),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.MongoTimeout, err = getDuration("MONGODB_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.MediaTimeout, err = getDuration("MEDIA_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.RateLimitRequests, err = getInt("RATE_LIMIT_REQUESTS", 100); err != nil {
		return nil, err
	}
	if cfg.MaxUploadMB, err = getInt("MAX_UPLOAD_MB", 10); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field requirements
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}

	switch c.AppEnv {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, dev, prod", c.AppEnv)
	}

	switch c.StoreDriver {
	case StoreMongo:
		if c.MongoURI == "" {
			return ErrMissingMongoURI
		}
	case StoreMemory:
	default:
		return fmt.Errorf("invalid STORE_DRIVER %q: must be mongo or memory", c.StoreDriver)
	}

	if c.RateLimitRequests <= 0 {
		return errors.New("RATE_LIMIT_REQUESTS must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// firstEnv returns the first non-empty variable, so legacy names keep working
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
