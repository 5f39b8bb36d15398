package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.RESTPort != DefaultRESTPort {
		t.Errorf("RESTPort = %q, want %q", cfg.RESTPort, DefaultRESTPort)
	}
	if cfg.PredictionThreshold != DefaultThreshold {
		t.Errorf("PredictionThreshold = %f, want %f", cfg.PredictionThreshold, DefaultThreshold)
	}
	if cfg.IngestRetryDelay != DefaultIngestRetryDelay {
		t.Errorf("IngestRetryDelay = %v, want %v", cfg.IngestRetryDelay, DefaultIngestRetryDelay)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CURRENT_SEASON", "2026-27")
	t.Setenv("PREDICTION_THRESHOLD", "0.1")
	t.Setenv("DAILY_INGESTION_HOUR", "3")
	t.Setenv("INGEST_RETRY_DELAY_MIN", "10")
	t.Setenv("ENABLE_DAILY_INGESTION", "false")

	cfg := Load()

	if cfg.CurrentSeason != "2026-27" {
		t.Errorf("CurrentSeason = %q, want 2026-27", cfg.CurrentSeason)
	}
	if cfg.PredictionThreshold != 0.1 {
		t.Errorf("PredictionThreshold = %f, want 0.1", cfg.PredictionThreshold)
	}
	if cfg.DailyIngestionHour != 3 {
		t.Errorf("DailyIngestionHour = %d, want 3", cfg.DailyIngestionHour)
	}
	if cfg.IngestRetryDelay != 10*time.Minute {
		t.Errorf("IngestRetryDelay = %v, want 10m", cfg.IngestRetryDelay)
	}
	if cfg.EnableDailyIngestion {
		t.Error("EnableDailyIngestion should be false")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"threshold too high", func(c *Config) { c.PredictionThreshold = 1.5 }, true},
		{"negative hour", func(c *Config) { c.DailyIngestionHour = -1 }, true},
		{"bad season label", func(c *Config) { c.CurrentSeason = "2026" }, true},
		{"negative retries", func(c *Config) { c.IngestMaxRetries = -2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			if err := Validate(cfg); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
