package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names accepted by PROFILE_BACKEND.
const (
	BackendPostgres = "postgres"
	BackendFile     = "file"
)

// Recommendation sources accepted by RECOMMENDATION_SOURCE.
const (
	RecommendationSourceTable  = "table"
	RecommendationSourceRemote = "remote"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv                  string
	Port                    string
	DatabaseURL             string
	DBMaxConns              int
	DBMinConns              int
	DBConnectTimeout        time.Duration
	ProfileBackend          string
	ProfileKey              string
	StoragePath             string
	OFFBaseURL              string
	OFFUserAgent            string
	OFFTimeout              time.Duration
	OFFSearchTimeout        time.Duration
	OFFMaxRetries           int
	RecommendationSource    string
	RecommendationURL       string
	RecommendationTablePath string
	CORSAllowedOrigins      []string
	GeoIPDBPath             string
	DefaultLocale           string
	HTTPReadTimeout         time.Duration
	HTTPWriteTimeout        time.Duration
	HTTPIdleTimeout         time.Duration
	RateLimitPerMin         int
	HistoryMaxDays          int
	SearchPageSize          int
	Location                *time.Location
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                  getEnv("APP_ENV", "development"),
		Port:                    getEnv("PORT", "8080"),
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		DBMaxConns:              getEnvInt("DB_MAX_CONNS", 10),
		DBMinConns:              getEnvInt("DB_MIN_CONNS", 1),
		DBConnectTimeout:        time.Second * time.Duration(getEnvInt("DB_CONNECT_TIMEOUT_SECONDS", 10)),
		ProfileBackend:          strings.ToLower(getEnv("PROFILE_BACKEND", BackendPostgres)),
		ProfileKey:              getEnv("PROFILE_KEY", "userProfile"),
		StoragePath:             getEnv("STORAGE_PATH", "./storage"),
		OFFBaseURL:              getEnv("OFF_BASE_URL", "https://world.openfoodfacts.net"),
		OFFUserAgent:            getEnv("OFF_USER_AGENT", "NutriTrack/1.0 (https://github.com/nutritrack)"),
		OFFTimeout:              time.Second * time.Duration(getEnvInt("OFF_TIMEOUT_SECONDS", 20)),
		OFFSearchTimeout:        time.Second * time.Duration(getEnvInt("OFF_SEARCH_TIMEOUT_SECONDS", 30)),
		OFFMaxRetries:           getEnvInt("OFF_MAX_RETRIES", 3),
		RecommendationSource:    strings.ToLower(getEnv("RECOMMENDATION_SOURCE", RecommendationSourceTable)),
		RecommendationURL:       os.Getenv("RECOMMENDATION_URL"),
		RecommendationTablePath: os.Getenv("RECOMMENDATION_TABLE_PATH"),
		CORSAllowedOrigins:      getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		GeoIPDBPath:             os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:           getEnv("DEFAULT_LOCALE", "fr"),
		HTTPReadTimeout:         time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:        time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 60)),
		HTTPIdleTimeout:         time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:         getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		HistoryMaxDays:          getEnvInt("HISTORY_MAX_DAYS", 90),
		SearchPageSize:          getEnvInt("SEARCH_PAGE_SIZE", 10),
	}

	loc, err := time.LoadLocation(getEnv("APP_TIMEZONE", "Local"))
	if err != nil {
		return nil, fmt.Errorf("APP_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	switch cfg.ProfileBackend {
	case BackendPostgres, BackendFile:
	default:
		return nil, fmt.Errorf("PROFILE_BACKEND must be %q or %q", BackendPostgres, BackendFile)
	}

	switch cfg.RecommendationSource {
	case RecommendationSourceTable:
	case RecommendationSourceRemote:
		if cfg.RecommendationURL == "" {
			return nil, fmt.Errorf("RECOMMENDATION_URL is required when RECOMMENDATION_SOURCE=remote")
		}
	default:
		return nil, fmt.Errorf("RECOMMENDATION_SOURCE must be %q or %q", RecommendationSourceTable, RecommendationSourceRemote)
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.HistoryMaxDays < 1 {
		cfg.HistoryMaxDays = 1
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
