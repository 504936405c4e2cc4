package config

import (
	"fmt"
	"os"
	"strings"

	"facturex/internal/logger"
)

type Config struct {
	// Export Configuration
	OutputDir   string // directory export files are written into
	JournalCode string // sales journal code used for ledger formats
	CompanyName string // issuing company name, shown in PDF reports

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OutputDir:     getEnv("FACTUREX_OUTPUT_DIR", "."),
		JournalCode:   getEnv("FACTUREX_JOURNAL_CODE", "VTE"),
		CompanyName:   getEnv("FACTUREX_COMPANY_NAME", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("FACTUREX_OUTPUT_DIR must not be empty")
	}
	if c.JournalCode == "" {
		return fmt.Errorf("FACTUREX_JOURNAL_CODE must not be empty")
	}
	// FEC field 1 (JournalCode) is limited in practice; keep it short and
	// free of the ledger delimiters.
	if len(c.JournalCode) > 10 || strings.ContainsAny(c.JournalCode, "|;") {
		return fmt.Errorf("FACTUREX_JOURNAL_CODE %q is not a valid journal code", c.JournalCode)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
