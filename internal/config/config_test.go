package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"planify/internal/config"
)

func TestNew_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.Firebase.TasksCollection != "tasks" {
		t.Errorf("expected tasks collection, got %q", cfg.Firebase.TasksCollection)
	}
	if cfg.Quotes.URL != config.DefaultQuotesURL {
		t.Errorf("unexpected quotes url %q", cfg.Quotes.URL)
	}
	if !cfg.Notifications.Enabled || cfg.Notifications.DelaySeconds != 2 {
		t.Errorf("unexpected notification defaults %+v", cfg.Notifications)
	}
	if cfg.Theme != "auto" {
		t.Errorf("expected auto theme, got %q", cfg.Theme)
	}
	if cfg.HasBackend() {
		t.Error("expected no backend without api key")
	}
}

func TestNew_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "firebase:\n  api_key: file-key\n  project_id: demo\ntheme: dark\nnotifications:\n  delay_seconds: 5\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANIFY_FIREBASE_API_KEY", "env-key")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Firebase.APIKey != "env-key" {
		t.Errorf("expected env override, got %q", cfg.Firebase.APIKey)
	}
	if cfg.Firebase.ProjectID != "demo" {
		t.Errorf("expected project from file, got %q", cfg.Firebase.ProjectID)
	}
	if cfg.Theme != "dark" || cfg.Notifications.DelaySeconds != 5 {
		t.Errorf("unexpected settings %+v", cfg)
	}
	if !cfg.HasBackend() {
		t.Error("expected backend configured")
	}
}

func TestNew_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.EnvFile), []byte("PLANIFY_FIREBASE_PROJECT_ID=from-dotenv\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PLANIFY_FIREBASE_PROJECT_ID", "")
	os.Unsetenv("PLANIFY_FIREBASE_PROJECT_ID")

	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Firebase.ProjectID != "from-dotenv" {
		t.Errorf("expected project from .env, got %q", cfg.Firebase.ProjectID)
	}
}

func TestSaveLocale(t *testing.T) {
	dir := t.TempDir()
	yaml := "theme: light\n"
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default(dir)
	if err := cfg.SaveLocale("pt-BR"); err != nil {
		t.Fatalf("SaveLocale: %v", err)
	}

	reloaded, err := config.New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if reloaded.Locale != "pt-BR" {
		t.Errorf("expected saved locale, got %q", reloaded.Locale)
	}
	if reloaded.Theme != "light" {
		t.Errorf("expected other keys kept, got theme %q", reloaded.Theme)
	}
}

func TestOAuthClientPath(t *testing.T) {
	cfg := config.Default("/cfg")
	if got := cfg.OAuthClientPath(); got != filepath.Join("/cfg", "oauth_client.json") {
		t.Errorf("unexpected path %q", got)
	}
	cfg.Google.ClientFile = "/abs/client.json"
	if got := cfg.OAuthClientPath(); got != "/abs/client.json" {
		t.Errorf("unexpected absolute path %q", got)
	}
}
