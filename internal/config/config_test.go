package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(env(nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Env:            "dev",
		HTTPAddr:       ":8080",
		Locale:         "en",
		AllowedOrigins: []string{"*"},
		SessionTTL:     30 * time.Minute,
		Theme:          "signupform",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(env(map[string]string{
		"APP_ENV":                    "prod",
		"HTTP_ADDR":                  "127.0.0.1:9000",
		"SIGNUPFORM_DEFINITION":      "/etc/signupform/form.yaml",
		"SIGNUPFORM_LOCALE":          "es",
		"SIGNUPFORM_ALLOWED_ORIGINS": "https://a.example, https://b.example ,",
		"SIGNUPFORM_SESSION_TTL":     "5m",
		"SIGNUPFORM_THEME_VARIANT":   "dark",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{
		Env:            "prod",
		HTTPAddr:       "127.0.0.1:9000",
		DefinitionPath: "/etc/signupform/form.yaml",
		Locale:         "es",
		AllowedOrigins: []string{"https://a.example", "https://b.example"},
		SessionTTL:     5 * time.Minute,
		Theme:          "signupform",
		ThemeVariant:   "dark",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_InvalidTTL(t *testing.T) {
	for _, raw := range []string{"soon", "-1m"} {
		if _, err := LoadFrom(env(map[string]string{"SIGNUPFORM_SESSION_TTL": raw})); err == nil {
			t.Fatalf("expected error for ttl %q", raw)
		}
	}
}
