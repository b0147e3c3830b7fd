package config

import (
	"testing"
	"time"
)

func TestLoadWithDefaults(t *testing.T) {
	t.Setenv("CUBBO_CLIENT_ID", "cid")
	t.Setenv("CUBBO_CLIENT_SECRET", "secret")
	t.Setenv("CUBBO_STORE_ID", "42")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DefaultCountry != "Brasil" {
		t.Errorf("DefaultCountry = %q", cfg.DefaultCountry)
	}
	if cfg.Cubbo.BaseURL != "https://api.cubbo.com/v1" {
		t.Errorf("BaseURL = %q", cfg.Cubbo.BaseURL)
	}
	if cfg.Cubbo.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v", cfg.Cubbo.Timeout)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CUBBO_CLIENT_ID", "cid")
	t.Setenv("CUBBO_CLIENT_SECRET", "secret")
	t.Setenv("CUBBO_STORE_ID", "42")
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_COUNTRY", "México")
	t.Setenv("CUBBO_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.DefaultCountry != "México" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Cubbo.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Cubbo.Timeout)
	}
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("CUBBO_CLIENT_ID", "")
	t.Setenv("CUBBO_CLIENT_SECRET", "")
	t.Setenv("CUBBO_STORE_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("esperava erro sem credenciais")
	}
}
