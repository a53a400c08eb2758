// Package logging builds the file logger. The terminal belongs to the UI,
// so nothing is ever written to stdout or stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/config"
)

// New opens cfg.File for appending and returns a logger writing to it along
// with a close function. An empty file discards all output.
func New(cfg config.Log) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	logger.SetLevel(level)

	if cfg.File == "" {
		logger.SetOutput(io.Discard)
		return logger, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f.Close, nil
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// KeyFields describes a key press against the state it was applied to.
func KeyFields(k calc.KeyID, s calc.DisplayState) logrus.Fields {
	return logrus.Fields{
		"key":   string(k),
		"class": calc.Classify(k).String(),
		"shift": s.ShiftActive,
		"alpha": s.AlphaActive,
		"mode":  string(s.Mode),
	}
}
