package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string `yaml:"port"`

	// Auth
	APIKey string `yaml:"api_key"`

	// Reader
	PageBudget     int           `yaml:"page_budget"`
	ScreenWidth    float64       `yaml:"screen_width"`
	SettleDebounce time.Duration `yaml:"settle_debounce"`
	SuppressWindow time.Duration `yaml:"suppress_window"`
	OutboxLimit    int           `yaml:"outbox_limit"`
	SessionTTL     time.Duration `yaml:"session_ttl"`

	// Worker pool
	WorkerCount  int `yaml:"worker_count"`
	MaxQueueSize int `yaml:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `yaml:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `yaml:"job_ttl"`

	// PDF
	PDFFallbackPdftotext bool `yaml:"pdf_fallback_pdftotext"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		Port:                 "8090",
		PageBudget:           600,
		ScreenWidth:          390,
		SettleDebounce:       200 * time.Millisecond,
		SuppressWindow:       500 * time.Millisecond,
		OutboxLimit:          64,
		SessionTTL:           2 * time.Hour,
		WorkerCount:          4,
		MaxQueueSize:         100,
		MaxUploadBytes:       52428800, // 50MB
		JobTTL:               1 * time.Hour,
		PDFFallbackPdftotext: true,
	}
}

// Load builds the config from defaults, then the YAML file named by
// PAGEWISE_CONFIG (if any), then environment variables.
func Load() (Config, error) {
	cfg := Defaults()
	if path := os.Getenv("PAGEWISE_CONFIG"); path != "" {
		if err := cfg.overlayFile(path); err != nil {
			return cfg, err
		}
	}

	cfg.Port = envOr("PORT", cfg.Port)
	cfg.APIKey = envOr("PAGEWISE_API_KEY", cfg.APIKey)

	cfg.PageBudget = envInt("PAGE_BUDGET", cfg.PageBudget)
	cfg.ScreenWidth = envFloat("SCREEN_WIDTH", cfg.ScreenWidth)
	cfg.SettleDebounce = envDuration("SETTLE_DEBOUNCE", cfg.SettleDebounce)
	cfg.SuppressWindow = envDuration("SUPPRESS_WINDOW", cfg.SuppressWindow)
	cfg.OutboxLimit = envInt("OUTBOX_LIMIT", cfg.OutboxLimit)
	cfg.SessionTTL = envDuration("SESSION_TTL", cfg.SessionTTL)

	cfg.WorkerCount = envInt("WORKER_COUNT", cfg.WorkerCount)
	cfg.MaxQueueSize = envInt("MAX_QUEUE_SIZE", cfg.MaxQueueSize)
	cfg.MaxUploadBytes = envInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.JobTTL = envDuration("JOB_TTL", cfg.JobTTL)
	cfg.PDFFallbackPdftotext = envBool("PDF_FALLBACK_PDFTOTEXT", cfg.PDFFallbackPdftotext)

	d := Defaults()
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = d.WorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = d.MaxQueueSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = d.MaxUploadBytes
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = d.JobTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = d.SessionTTL
	}

	return cfg, nil
}

func (c *Config) overlayFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.APIKey == "" {
		errs = append(errs, errors.New("PAGEWISE_API_KEY is required"))
	}
	if c.PageBudget <= 0 {
		errs = append(errs, fmt.Errorf("PAGE_BUDGET must be positive, got %d", c.PageBudget))
	}
	if c.ScreenWidth <= 0 {
		errs = append(errs, fmt.Errorf("SCREEN_WIDTH must be positive, got %v", c.ScreenWidth))
	}
	if c.SettleDebounce <= 0 {
		errs = append(errs, fmt.Errorf("SETTLE_DEBOUNCE must be positive, got %s", c.SettleDebounce))
	}
	if c.SuppressWindow <= 0 {
		errs = append(errs, fmt.Errorf("SUPPRESS_WINDOW must be positive, got %s", c.SuppressWindow))
	}
	return errors.Join(errs...)
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

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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
