package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv(configPathEnv, "")
	t.Setenv(facebookTokenEnv, "")

	cfg := Load()

	if cfg.Scheduler.Interval != time.Minute {
		t.Fatalf("unexpected interval: %v", cfg.Scheduler.Interval)
	}
	if cfg.Store.Path != defaultStorePath {
		t.Fatalf("unexpected store path: %s", cfg.Store.Path)
	}
	if cfg.Composer.ContextWindow != 1022 || cfg.Composer.Keywords != 5 {
		t.Fatalf("unexpected composer defaults: %+v", cfg.Composer)
	}
	if cfg.History.Path != defaultHistoryPath || cfg.History.Disabled {
		t.Fatalf("unexpected history: %+v", cfg.History)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Scanner != "verge" {
		t.Fatalf("unexpected sites: %+v", cfg.Sites)
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	secret := filepath.Join(dir, "token.txt")

	yamlBody := `
store:
  path: ` + filepath.Join(dir, "posts.json") + `
scheduler:
  interval: 10s
composer:
  backend: ml
  tags: ["#A", "#B"]
history:
  disabled: true
publisher:
  facebook:
    secretFile: ` + secret + `
sites:
  - name: example
    scanner: generic
    url: https://example.org/news
    options:
      linkSelector: "article a"
`
	if err := os.WriteFile(path, []byte(yamlBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := os.WriteFile(secret, []byte("  page-token \n"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(facebookTokenEnv, "")
	t.Setenv(intervalEnv, "30s")
	t.Setenv(telegramChatIDEnv, "-1001")

	cfg := Load()

	if cfg.Scheduler.Interval != 30*time.Second {
		t.Fatalf("env interval should win, got %v", cfg.Scheduler.Interval)
	}
	if cfg.Composer.Backend != "ml" {
		t.Fatalf("unexpected backend: %s", cfg.Composer.Backend)
	}
	if len(cfg.Composer.Tags) != 2 {
		t.Fatalf("unexpected tags: %v", cfg.Composer.Tags)
	}
	if cfg.Composer.ContextWindow != 1022 {
		t.Fatalf("default context window should survive merge, got %d", cfg.Composer.ContextWindow)
	}
	if cfg.Publisher.Facebook.Token != "page-token" {
		t.Fatalf("secret file not loaded: %q", cfg.Publisher.Facebook.Token)
	}
	if !cfg.History.Disabled {
		t.Fatalf("history should be disabled by file")
	}
	if cfg.Publisher.Telegram.ChatID != -1001 {
		t.Fatalf("unexpected chat id: %d", cfg.Publisher.Telegram.ChatID)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Options["linkSelector"] != "article a" {
		t.Fatalf("unexpected sites: %+v", cfg.Sites)
	}
}

func TestEnvTokenBeatsSecretFile(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "token.txt")
	if err := os.WriteFile(secret, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("write secret: %v", err)
	}

	cfg := defaultConfig()
	cfg.Publisher.Facebook.SecretFile = secret
	t.Setenv(facebookTokenEnv, "from-env")
	cfg.applyEnvOverrides()
	cfg.loadSecrets()

	if cfg.Publisher.Facebook.Token != "from-env" {
		t.Fatalf("unexpected token: %q", cfg.Publisher.Facebook.Token)
	}
}
