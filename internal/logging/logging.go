// Package logging routes the process log to stderr and an optional rotating file.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidLogSetting is returned when a LOG_* size or age variable is not a positive integer.
var ErrInvalidLogSetting = errors.New("invalid log setting")

// Config holds log output configuration.
type Config struct {
	FilePath   string // Empty disables the log file
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// LoadConfig reads log configuration from environment variables.
func LoadConfig() (*Config, error) {
	cfg := &Config{FilePath: os.Getenv("LOG_FILE")}

	var err error
	if cfg.MaxSizeMB, err = envInt("LOG_MAX_SIZE_MB", 100); err != nil {
		return nil, err
	}
	if cfg.MaxBackups, err = envInt("LOG_MAX_BACKUPS", 5); err != nil {
		return nil, err
	}
	if cfg.MaxAgeDays, err = envInt("LOG_MAX_AGE_DAYS", 30); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Setup points the standard logger at stderr and, when configured, a
// rotating log file. The returned closer releases the file.
func Setup(cfg *Config) io.Closer {
	if cfg.FilePath == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	return file
}

func envInt(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidLogSetting, key, raw)
	}
	return n, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
