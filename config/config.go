package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Pipeline  PipelineConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PipelineConfig holds analytics pipeline tuning
type PipelineConfig struct {
	ForecastHorizon   int `mapstructure:"forecast_horizon"`
	SeasonalityPeriod int `mapstructure:"seasonality_period"`
	TopProducts       int `mapstructure:"top_products"`
}

// UploadConfig holds dataset upload limits
type UploadConfig struct {
	MaxSizeMB int64 `mapstructure:"max_size_mb"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopsight/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	// Pipeline defaults
	v.SetDefault("pipeline.forecast_horizon", 30)
	v.SetDefault("pipeline.seasonality_period", 7)
	v.SetDefault("pipeline.top_products", 10)

	// Upload defaults
	v.SetDefault("upload.max_size_mb", 64)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Pipeline.ForecastHorizon <= 0 {
		return fmt.Errorf("forecast horizon must be positive, got: %d", config.Pipeline.ForecastHorizon)
	}

	if config.Pipeline.SeasonalityPeriod <= 0 {
		return fmt.Errorf("seasonality period must be positive, got: %d", config.Pipeline.SeasonalityPeriod)
	}

	if config.Pipeline.TopProducts <= 0 {
		return fmt.Errorf("top products must be positive, got: %d", config.Pipeline.TopProducts)
	}

	if config.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("upload max size must be positive, got: %d", config.Upload.MaxSizeMB)
	}

	return nil
}
