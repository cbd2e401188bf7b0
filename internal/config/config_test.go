package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "SCRIPTSTORE_URL", "MENTOR_URL", "FEEDBACK_ENABLED",
		"FEEDBACK_TOKEN_BUDGET", "WORKER_COUNT", "MAX_QUEUE_SIZE",
		"MAX_UPLOAD_BYTES", "JOB_TTL", "PDF_FALLBACK_PDFTOTEXT",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8091" {
		t.Errorf("expected default port 8091, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("unexpected pool defaults: %d %d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.MaxUploadBytes != 10485760 {
		t.Errorf("expected 10MB upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h job TTL, got %v", cfg.JobTTL)
	}
	if cfg.FeedbackEnabled {
		t.Error("expected feedback disabled by default")
	}
	if cfg.FeedbackTokenBudget != 6000 {
		t.Errorf("expected default token budget 6000, got %d", cfg.FeedbackTokenBudget)
	}
	if !cfg.PDFFallbackPdftotext {
		t.Error("expected pdftotext fallback enabled by default")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("WORKER_COUNT", "8")
	t.Setenv("JOB_TTL", "30m")
	t.Setenv("FEEDBACK_ENABLED", "true")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port override, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 8 {
		t.Errorf("expected worker override, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("expected TTL override, got %v", cfg.JobTTL)
	}
	if !cfg.FeedbackEnabled {
		t.Error("expected feedback enabled")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("JOB_TTL", "soon")
	t.Setenv("MAX_QUEUE_SIZE", "-5")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("expected fallback worker count, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected fallback TTL, got %v", cfg.JobTTL)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected negative queue size clamped, got %d", cfg.MaxQueueSize)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{ScriptstoreAPIKey: "a", ServiceAPIKey: "b"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}

	if err := (Config{ServiceAPIKey: "b"}).Validate(); err == nil {
		t.Error("expected missing store key rejected")
	}
	if err := (Config{ScriptstoreAPIKey: "a"}).Validate(); err == nil {
		t.Error("expected missing service key rejected")
	}

	cfg = Config{ScriptstoreAPIKey: "a", ServiceAPIKey: "b", FeedbackEnabled: true}
	if err := cfg.Validate(); err == nil {
		t.Error("expected mentor key required when feedback enabled")
	}
	cfg.MentorAPIKey = "c"
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config with mentor key, got %v", err)
	}
}
