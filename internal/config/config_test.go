// File: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := writeConfig(t, "bot:\n  token: \"123:abc\"\n")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Bot.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Bot.Workers)
	}
	if cfg.Bot.Mode != "polling" {
		t.Errorf("mode = %q, want polling", cfg.Bot.Mode)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("log defaults wrong: %+v", cfg.Log)
	}
	if cfg.Upstream.Timeout.Std() != 10*time.Second {
		t.Errorf("upstream timeout = %v, want 10s", cfg.Upstream.Timeout)
	}
	if cfg.Redis.TTL.Std() != 10*time.Minute {
		t.Errorf("redis ttl = %v, want 10m", cfg.Redis.TTL)
	}
	if cfg.Admin.Port != 8081 {
		t.Errorf("admin port = %d, want 8081", cfg.Admin.Port)
	}
}

func TestLoadConfig_EnvTokenOverridesFile(t *testing.T) {
	path := writeConfig(t, "bot:\n  token: \"file-token\"\n")
	t.Setenv("BOT_TOKEN", "env-token")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Bot.Token != "env-token" {
		t.Fatalf("token = %q, want env-token", cfg.Bot.Token)
	}
}

func TestLoadConfig_MissingTokenFails(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("BOT_TOKEN", "")

	if _, err := LoadConfig(path, false); err == nil {
		t.Fatalf("expected error for missing token")
	}
}

func TestLoadConfig_ExplicitValuesKept(t *testing.T) {
	path := writeConfig(t, `
bot:
  token: "123:abc"
  workers: 3
upstream:
  timeout: 5s
  crates_base_url: https://example.test
rate_limit:
  per_chat: 7
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Bot.Workers != 3 {
		t.Errorf("workers = %d, want 3", cfg.Bot.Workers)
	}
	if cfg.Upstream.Timeout.Std() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.Upstream.Timeout)
	}
	if cfg.Upstream.CratesBaseURL != "https://example.test" {
		t.Errorf("crates url = %q", cfg.Upstream.CratesBaseURL)
	}
	if cfg.RateLimit.PerChat != 7 {
		t.Errorf("per_chat = %d, want 7", cfg.RateLimit.PerChat)
	}
	if !cfg.Runtime.Dev {
		t.Errorf("dev flag not propagated")
	}
}
