package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/csheth/fc100v/internal/calc"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, name := range []string{envConfigPath, "FC100V_INITIAL_MODE", "FC100V_PROVIDER", "FC100V_MODEL",
		"FC100V_ENDPOINT", "FC100V_MANUAL", "FC100V_LOG_FILE", "FC100V_LOG_LEVEL"} {
		t.Setenv(name, "")
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, calc.ModeCOMP, cfg.Mode())
	assert.Equal(t, "gemini", cfg.Assistant.Provider)
	assert.Equal(t, 2*time.Minute, cfg.Assistant.RequestTimeout.Std())
	assert.True(t, cfg.UI.AltScreen)
	assert.Equal(t, "fc100v.log", filepath.Base(cfg.Log.File))
}

func TestLoadYAML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
initial_mode: cash
assistant:
  provider: ollama
  model: llama3
  request_timeout: 45s
transcript_path: /tmp/sessions.json
ui:
  alt_screen: false
`), 0o644))

	cfg, used, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, calc.ModeCASH, cfg.Mode())
	assert.Equal(t, "ollama", cfg.Assistant.Provider)
	assert.Equal(t, "llama3", cfg.Assistant.Model)
	assert.Equal(t, 45*time.Second, cfg.Assistant.RequestTimeout.Std())
	assert.Equal(t, "/tmp/sessions.json", cfg.TranscriptPath)
	assert.False(t, cfg.UI.AltScreen)
	assert.Equal(t, "info", cfg.Log.Level, "unset keys keep defaults")
}

func TestLoadTOML(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fc.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
initial_mode = "AMRT"

[assistant]
provider = "openai"
request_timeout = "1m30s"

[log]
level = "debug"
`), 0o644))

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, calc.ModeAMRT, cfg.Mode())
	assert.Equal(t, "openai", cfg.Assistant.Provider)
	assert.Equal(t, 90*time.Second, cfg.Assistant.RequestTimeout.Std())
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fc.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))

	_, _, err := Load(path)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadMissingFile(t *testing.T) {
	isolate(t)

	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist, "an explicit path must exist")

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Default().Assistant, cfg.Assistant)
}

func TestLoadDiscoversUserConfig(t *testing.T) {
	isolate(t)
	dir, err := os.UserConfigDir()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, appDir), 0o755))
	path := filepath.Join(dir, appDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("initial_mode = \"SMPL\"\n"), 0o644))

	cfg, used, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, calc.ModeSMPL, cfg.Mode())
}

func TestPrecedence(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assistant:\n  provider: openai\n  model: from-file\n"), 0o644))
	t.Setenv("FC100V_MODEL", "from-env")
	t.Setenv("FC100V_PROVIDER", "ollama")

	cfg, _, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Assistant.Provider)
	assert.Equal(t, "from-env", cfg.Assistant.Model)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagModel, "flag-default", "")
	fs.String(FlagProvider, "gemini", "")
	fs.Bool(FlagNoAltScreen, false, "")
	fs.Bool(FlagDebug, false, "")
	require.NoError(t, fs.Parse([]string{"--model", "from-flag", "--no-alt-screen", "--debug"}))

	cfg.ApplyFlags(fs)
	assert.Equal(t, "from-flag", cfg.Assistant.Model)
	assert.Equal(t, "ollama", cfg.Assistant.Provider, "unset flags do not override")
	assert.False(t, cfg.UI.AltScreen)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"mode":     func(c *Config) { c.InitialMode = "BOND" },
		"provider": func(c *Config) { c.Assistant.Provider = "bard" },
		"timeout":  func(c *Config) { c.Assistant.RequestTimeout = 0 },
		"level":    func(c *Config) { c.Log.Level = "loud" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestYAMLRendersDuration(t *testing.T) {
	out, err := Default().YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "request_timeout: 2m0s")
	assert.Contains(t, string(out), "initial_mode: COMP")
}

func TestSchema(t *testing.T) {
	raw, err := Schema()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "fc100v configuration", doc["title"])
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema has properties")
	assert.Contains(t, props, "initial_mode")
	assert.Contains(t, props, "assistant")
}
