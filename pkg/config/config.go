package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
)

const defaultHTTPTimeout = 15 * time.Second

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	BaseURL            string
	EtsyAPIKey         string
	EtsyBaseURL        string
	GeminiAPIKey       string
	GeminiTextModel    string
	GeminiImageModel   string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	JWTSecret          string
	FrontendURL        string
	AllowedEmails      []string
	CompareConcurrency int
	HTTPTimeout        time.Duration
}

// FileConfig is the optional JSON-with-comments config file. Environment
// variables take precedence over it.
type FileConfig struct {
	Port               string   `json:"port"`
	DatabaseURL        string   `json:"database_url"`
	AppEnv             string   `json:"app_env"`
	BaseURL            string   `json:"base_url"`
	EtsyBaseURL        string   `json:"etsy_base_url"`
	GeminiTextModel    string   `json:"gemini_text_model"`
	GeminiImageModel   string   `json:"gemini_image_model"`
	GoogleRedirectURL  string   `json:"google_redirect_url"`
	FrontendURL        string   `json:"frontend_url"`
	AllowedEmails      []string `json:"allowed_emails"`
	CompareConcurrency int      `json:"compare_concurrency"`
	HTTPTimeout        string   `json:"http_timeout"`
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	path := getEnv("CONFIG_FILE", "etsy-analyzer.json")
	fc, err := LoadFile(path)
	if err != nil {
		log.Printf("config: ignoring %s: %v", path, err)
		fc = &FileConfig{}
	}

	return &Config{
		Port:               getEnv("PORT", or(fc.Port, "8080")),
		DatabaseURL:        getEnv("DATABASE_URL", or(fc.DatabaseURL, "file:db.sqlite")),
		AppEnv:             getEnv("APP_ENV", or(fc.AppEnv, "local")),
		BaseURL:            getEnv("BASE_URL", or(fc.BaseURL, "http://localhost:8080")),
		EtsyAPIKey:         getEnv("ETSY_API_KEY", ""),
		EtsyBaseURL:        getEnv("ETSY_BASE_URL", or(fc.EtsyBaseURL, "https://api.etsy.com/v3/application")),
		GeminiAPIKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiTextModel:    getEnv("GEMINI_TEXT_MODEL", or(fc.GeminiTextModel, "gemini-2.0-flash")),
		GeminiImageModel:   getEnv("GEMINI_IMAGE_MODEL", or(fc.GeminiImageModel, "gemini-2.0-flash-preview-image-generation")),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", or(fc.GoogleRedirectURL, "http://localhost:8080/auth/google/callback")),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		FrontendURL:        getEnv("FRONTEND_URL", or(fc.FrontendURL, "http://localhost:8080/dashboard")),
		AllowedEmails:      splitList(getEnv("ALLOWED_EMAILS", strings.Join(fc.AllowedEmails, ","))),
		CompareConcurrency: getEnvInt("COMPARE_CONCURRENCY", orInt(fc.CompareConcurrency, 4)),
		HTTPTimeout:        getEnvDuration("HTTP_TIMEOUT", fc.HTTPTimeout, defaultHTTPTimeout),
	}
}

// LoadFile reads a config file that may contain comments and trailing commas.
// A missing file is not an error.
func LoadFile(path string) (*FileConfig, error) {
	fc := &FileConfig{}
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fc, nil
	}
	if err != nil {
		return nil, err
	}

	std, err := hujson.Standardize(b)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(std, fc); err != nil {
		return nil, err
	}
	return fc, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// getEnvDuration takes the env value, then the file value, then fallback.
// Values that don't parse or aren't positive are skipped.
func getEnvDuration(key, fileValue string, fallback time.Duration) time.Duration {
	for _, v := range []string{getEnv(key, ""), fileValue} {
		if v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			log.Printf("config: ignoring %s=%q", key, v)
			continue
		}
		return d
	}
	return fallback
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
