package config

import (
	"fmt"
	"os"
	"strings"
)

const (
	defaultListenAddr    = ":8080"
	defaultDatabaseURL   = "campusgate.db"
	defaultPortalBaseURL = "http://localhost:9100"
	defaultGradBaseURL   = "http://localhost:9101"
	defaultAuthProvider  = "portal"
)

// Config is the process configuration, read once at startup from the
// environment (with .env loaded by cmd/api before this runs).
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string

	// AuthProvider selects the upstream strategy: "portal" talks to the
	// real identity systems, "static" is the in-memory dev provider.
	AuthProvider  string
	PortalBaseURL string
	GradBaseURL   string

	// AdminCardnums is the externally supplied admin allow-list.
	AdminCardnums []string
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = getEnv("LISTEN_ADDR", defaultListenAddr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", defaultDatabaseURL)
	cfg.AuthProvider = strings.ToLower(getEnv("AUTH_PROVIDER", defaultAuthProvider))
	cfg.PortalBaseURL = getEnv("PORTAL_BASE_URL", defaultPortalBaseURL)
	cfg.GradBaseURL = getEnv("GRAD_BASE_URL", defaultGradBaseURL)

	if raw := strings.TrimSpace(os.Getenv("ADMIN_CARDNUMS")); raw != "" {
		for _, cardnum := range strings.Split(raw, ",") {
			cardnum = strings.TrimSpace(cardnum)
			if cardnum != "" {
				cfg.AdminCardnums = append(cfg.AdminCardnums, cardnum)
			}
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AuthProvider != "portal" && cfg.AuthProvider != "static" {
		return fmt.Errorf("AUTH_PROVIDER must be portal or static, got %q", cfg.AuthProvider)
	}
	if isProdLike(cfg.AppEnv) {
		if cfg.AuthProvider != "portal" {
			return fmt.Errorf("in prod/release AUTH_PROVIDER must be portal")
		}
		if cfg.PortalBaseURL == defaultPortalBaseURL {
			return fmt.Errorf("in prod/release PORTAL_BASE_URL must be set")
		}
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}
