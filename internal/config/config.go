// Package config reads the server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds the settings of cmd/signupform-server.
type Config struct {
	Env            string
	HTTPAddr       string
	DefinitionPath string
	Locale         string
	AllowedOrigins []string
	SessionTTL     time.Duration
	Theme          string
	ThemeVariant   string
}

// Load reads the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads settings through getenv, falling back to defaults for unset
// keys.
func LoadFrom(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Env:            get("APP_ENV", "dev"),
		HTTPAddr:       get("HTTP_ADDR", ":8080"),
		DefinitionPath: get("SIGNUPFORM_DEFINITION", ""),
		Locale:         get("SIGNUPFORM_LOCALE", "en"),
		AllowedOrigins: splitList(get("SIGNUPFORM_ALLOWED_ORIGINS", "*")),
		Theme:          get("SIGNUPFORM_THEME", "signupform"),
		ThemeVariant:   get("SIGNUPFORM_THEME_VARIANT", ""),
	}

	ttl, err := time.ParseDuration(get("SIGNUPFORM_SESSION_TTL", "30m"))
	if err != nil {
		return Config{}, fmt.Errorf("config: SIGNUPFORM_SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return Config{}, fmt.Errorf("config: SIGNUPFORM_SESSION_TTL must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl
	return cfg, nil
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
