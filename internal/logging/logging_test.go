package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fc100v.log")
	logger, closeFn, err := New(config.Log{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.WithFields(KeyFields(calc.KeyMODE, calc.New().Start())).Debug("key")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "key=MODE")
	assert.Contains(t, out, "class=mode")
	assert.Contains(t, out, "mode=COMP")
	assert.Contains(t, out, "shift=false")
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fc100v.log")
	logger, closeFn, err := New(config.Log{File: path, Level: "warn"})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "shown")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.Log{Level: "loud"})
	assert.Error(t, err)
}

func TestNewWithoutFileDiscards(t *testing.T) {
	logger, closeFn, err := New(config.Log{Level: "info"})
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.NoError(t, closeFn())
}
