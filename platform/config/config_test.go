package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/collegesera")
	t.Setenv("JWT_ACCESS_SECRET", "access-secret")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GetSessionSecret() != "access-secret" {
		t.Fatalf("expected session secret to default to access secret, got %q", cfg.GetSessionSecret())
	}
	if cfg.GetSessionTTL() != 720*time.Hour {
		t.Fatalf("unexpected session ttl %s", cfg.GetSessionTTL())
	}
	if cfg.GetGeminiSearchModel() != "gemini-2.5-flash" {
		t.Fatalf("unexpected search model %q", cfg.GetGeminiSearchModel())
	}
	if cfg.GetGeminiThinkingBudget() != 32768 {
		t.Fatalf("unexpected thinking budget %d", cfg.GetGeminiThinkingBudget())
	}
	if cfg.IsSchedulerEnabled() {
		t.Fatalf("scheduler must be disabled without REDIS_URL")
	}
	if cfg.GetEmailEnabled() {
		t.Fatalf("email must be disabled without SMTP_HOST")
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing DATABASE_URL")
	}
}

func TestLoadRejectsWildcardWithCredentials(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ORIGINS", "*")
	t.Setenv("CORS_ALLOW_CREDENTIALS", "true")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for wildcard origins with credentials")
	}
}

func TestLoadWorkerSkipsLLMKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/collegesera")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := LoadWorker()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.IsSchedulerEnabled() {
		t.Fatalf("expected scheduler enabled")
	}
}
