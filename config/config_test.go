package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("SHOPSIGHT_SERVER_PORT")
		os.Unsetenv("SHOPSIGHT_SERVER_ENVIRONMENT")
		os.Unsetenv("SHOPSIGHT_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("SHOPSIGHT_PIPELINE_FORECAST_HORIZON")
		os.Unsetenv("SHOPSIGHT_PIPELINE_SEASONALITY_PERIOD")
		os.Unsetenv("SHOPSIGHT_PIPELINE_TOP_PRODUCTS")
		os.Unsetenv("SHOPSIGHT_UPLOAD_MAX_SIZE_MB")
		os.Unsetenv("SHOPSIGHT_RATELIMIT_PER_IP")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Pipeline.ForecastHorizon != 30 {
			t.Errorf("Pipeline.ForecastHorizon = %d, want 30", cfg.Pipeline.ForecastHorizon)
		}
		if cfg.Pipeline.SeasonalityPeriod != 7 {
			t.Errorf("Pipeline.SeasonalityPeriod = %d, want 7", cfg.Pipeline.SeasonalityPeriod)
		}
		if cfg.Pipeline.TopProducts != 10 {
			t.Errorf("Pipeline.TopProducts = %d, want 10", cfg.Pipeline.TopProducts)
		}
		if cfg.Upload.MaxSizeMB != 64 {
			t.Errorf("Upload.MaxSizeMB = %d, want 64", cfg.Upload.MaxSizeMB)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		os.Setenv("SHOPSIGHT_SERVER_PORT", "9090")
		os.Setenv("SHOPSIGHT_PIPELINE_TOP_PRODUCTS", "5")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Pipeline.TopProducts != 5 {
			t.Errorf("Pipeline.TopProducts = %d, want 5", cfg.Pipeline.TopProducts)
		}
	})

	t.Run("rejects non-positive pipeline values", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		os.Setenv("SHOPSIGHT_PIPELINE_FORECAST_HORIZON", "0")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})

	t.Run("rejects non-positive upload cap", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		os.Setenv("SHOPSIGHT_UPLOAD_MAX_SIZE_MB", "-1")

		if _, err := Load(); err == nil {
			t.Error("Load() error = nil, want validation error")
		}
	})
}
