package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration values.
type Config struct {
	Port           string
	DatabaseURL    string
	AllowedOrigins []string
	Media          MediaConfig
	Render         RenderConfig
	RateLimit      RateLimitConfig
}

// MediaConfig describes S3/media related configuration.
type MediaConfig struct {
	Bucket          string
	Region          string
	Endpoint        string
	PublicURL       string
	KeyPrefix       string
	ForcePathStyle  bool
	AccessKeyID     string
	SecretAccessKey string
	LocalDir        string
}

// RenderConfig selects and tunes the image model backend.
type RenderConfig struct {
	// Provider is one of sdwebui, imagen, gemini, openai or demo.
	Provider           string
	Model              string
	Endpoint           string
	APIKey             string
	ProjectID          string
	Location           string
	ServiceAccount     string
	ServiceAccountJSON string
	UseADC             bool
	Strength           float64
	GuidanceScale      float64
	Steps              int
	Size               int
	Timeout            time.Duration
}

// RateLimitConfig bounds how often the image model is called.
type RateLimitConfig struct {
	PerSecond float64
	Burst     int
}

// FromEnv loads a .env file when present, then reads configuration from
// environment variables and applies defaults.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("config: could not read .env: %v", err)
	}

	cfg := Config{
		Port:           getenv("APP_PORT", "5000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "*")),
		Media: MediaConfig{
			Bucket:          os.Getenv("S3_BUCKET"),
			Region:          os.Getenv("S3_REGION"),
			Endpoint:        os.Getenv("S3_ENDPOINT"),
			PublicURL:       os.Getenv("S3_PUBLIC_URL"),
			KeyPrefix:       strings.Trim(os.Getenv("S3_KEY_PREFIX"), "/"),
			ForcePathStyle:  getenvBool("S3_FORCE_PATH_STYLE", false),
			AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
			LocalDir:        os.Getenv("MEDIA_LOCAL_DIR"),
		},
		Render: RenderConfig{
			Provider:           strings.ToLower(getenv("RENDER_PROVIDER", "demo")),
			Model:              os.Getenv("RENDER_MODEL"),
			Endpoint:           os.Getenv("RENDER_ENDPOINT"),
			APIKey:             os.Getenv("RENDER_API_KEY"),
			ProjectID:          os.Getenv("VERTEX_PROJECT_ID"),
			Location:           getenv("VERTEX_LOCATION", "us-central1"),
			ServiceAccount:     os.Getenv("VERTEX_SERVICE_ACCOUNT_FILE"),
			ServiceAccountJSON: os.Getenv("VERTEX_SERVICE_ACCOUNT_JSON"),
			UseADC:             getenvBool("VERTEX_USE_ADC", false),
			Strength:           getenvFloat("RENDER_STRENGTH", 0.65),
			GuidanceScale:      getenvFloat("RENDER_GUIDANCE_SCALE", 15.0),
			Steps:              getenvInt("RENDER_STEPS", 70),
			Size:               getenvInt("RENDER_SIZE", 512),
			Timeout:            time.Duration(getenvInt("RENDER_TIMEOUT_SECONDS", 300)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			PerSecond: getenvFloat("RENDER_RATE_PER_SECOND", 0.5),
			Burst:     getenvInt("RENDER_RATE_BURST", 2),
		},
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Port == "" {
		return fmt.Errorf("config: APP_PORT cannot be empty")
	}
	switch c.Render.Provider {
	case "sdwebui", "imagen", "gemini", "openai", "demo":
	default:
		return fmt.Errorf("config: unknown RENDER_PROVIDER %q", c.Render.Provider)
	}
	if math.IsNaN(c.Render.Strength) || c.Render.Strength <= 0 || c.Render.Strength > 1 {
		return fmt.Errorf("config: RENDER_STRENGTH must be in (0,1], got %v", c.Render.Strength)
	}
	if math.IsNaN(c.Render.GuidanceScale) || math.IsInf(c.Render.GuidanceScale, 0) || c.Render.GuidanceScale <= 0 {
		return fmt.Errorf("config: RENDER_GUIDANCE_SCALE must be positive")
	}
	if c.Render.Steps <= 0 || c.Render.Size <= 0 {
		return fmt.Errorf("config: RENDER_STEPS and RENDER_SIZE must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getenvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}

	return parsed
}

func getenvInt(key string, fallback int) int {
	parsed, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvFloat(key string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
