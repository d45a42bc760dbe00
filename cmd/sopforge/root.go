package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sopforge/sopforge/internal/config"
	"github.com/sopforge/sopforge/internal/outline"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "sopforge",
	Short: "Controlled-document generator for SOPs and work instructions",
	Long: `Sopforge turns structured YAML outlines into formatted controlled
documents (SOPs, work instructions, policies).

It can:
  - Render a YAML document to markdown, HTML, plain text, or docx
  - Import an existing document (docx, pdf, md, html, txt) into a YAML skeleton
  - Validate a YAML document against the controlled-document schema
  - Serve an HTTP API with an asynchronous render queue`,
	Version: Version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.sopforge/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "", "log level: debug, info, warn, error",
	)
	rootCmd.PersistentFlags().StringVar(
		&logFormat, "log-format", "", "log format: json or text",
	)

	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads configuration, letting command-line flags override the
// file and environment values.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(cfg.LogFormat) == "text" {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}

func newDecomposer(log *slog.Logger) outline.Decomposer {
	return outline.New(log)
}
