package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Script storage connection
	ScriptstoreURL    string
	ScriptstoreAPIKey string

	// Auth
	ServiceAPIKey string

	// Mentor feedback backend
	MentorURL           string
	MentorAPIKey        string
	FeedbackEnabled     bool
	FeedbackTokenBudget int

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		ScriptstoreURL:    envOr("SCRIPTSTORE_URL", "http://localhost:8080"),
		ScriptstoreAPIKey: os.Getenv("SCRIPTSTORE_API_KEY"),

		ServiceAPIKey: os.Getenv("SCRIPTPARSE_API_KEY"),

		MentorURL:           envOr("MENTOR_URL", "http://localhost:8070"),
		MentorAPIKey:        os.Getenv("MENTOR_API_KEY"),
		FeedbackEnabled:     envBool("FEEDBACK_ENABLED", false),
		FeedbackTokenBudget: envInt("FEEDBACK_TOKEN_BUDGET", 6000),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.FeedbackTokenBudget <= 0 {
		cfg.FeedbackTokenBudget = 6000
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ScriptstoreAPIKey == "" {
		return fmt.Errorf("SCRIPTSTORE_API_KEY is required")
	}
	if c.ServiceAPIKey == "" {
		return fmt.Errorf("SCRIPTPARSE_API_KEY is required")
	}
	if c.FeedbackEnabled && c.MentorAPIKey == "" {
		return fmt.Errorf("MENTOR_API_KEY is required when FEEDBACK_ENABLED is set")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
