// Package config loads sopforge settings from defaults, an optional
// config.yaml, and SOPFORGE_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings.
type Config struct {
	Port   string `mapstructure:"port"`
	APIKey string `mapstructure:"api_key"`

	// Render output
	OutputDir    string `mapstructure:"output_dir"`
	TemplatePath string `mapstructure:"template_path"`

	// Worker pool
	WorkerCount  int `mapstructure:"worker_count"`
	MaxQueueSize int `mapstructure:"max_queue_size"`

	// Upload limits
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes"`

	// Job state
	JobTTL time.Duration `mapstructure:"job_ttl"`

	// PDF import
	PDFFallbackPdftotext bool `mapstructure:"pdf_fallback_pdftotext"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration. cfgFile overrides the default search path
// (working directory, then ~/.sopforge).
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8090")
	v.SetDefault("output_dir", "out")
	v.SetDefault("worker_count", 4)
	v.SetDefault("max_queue_size", 100)
	v.SetDefault("max_upload_bytes", int64(10*1024*1024))
	v.SetDefault("job_ttl", time.Hour)
	v.SetDefault("pdf_fallback_pdftotext", true)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetEnvPrefix("SOPFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.sopforge")
	}

	// The config file is optional; defaults and env cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 * 1024 * 1024
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = time.Hour
	}

	return cfg, nil
}

// Validate checks settings the server cannot run without.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}
