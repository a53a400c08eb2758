// Package config loads fc100v settings from a YAML or TOML file, the
// environment, and command line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/llm"
)

// ErrUnsupportedFormat is returned for config files that are not YAML or TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

const (
	appDir        = "fc100v"
	envConfigPath = "FC100V_CONFIG"
)

// Config is the effective application configuration.
type Config struct {
	InitialMode    string    `yaml:"initial_mode" toml:"initial_mode" jsonschema:"description=Mode restored at power on,enum=COMP,enum=SMPL,enum=CMPD,enum=CASH,enum=AMRT"`
	Assistant      Assistant `yaml:"assistant" toml:"assistant"`
	TranscriptPath string    `yaml:"transcript_path,omitempty" toml:"transcript_path,omitempty" jsonschema:"description=JSON file that archives closed assistant sessions. Empty disables archiving."`
	Log            Log       `yaml:"log" toml:"log"`
	UI             UI        `yaml:"ui" toml:"ui"`
}

// Assistant configures the help overlay's language model.
type Assistant struct {
	Provider       string   `yaml:"provider" toml:"provider" jsonschema:"enum=gemini,enum=openai,enum=ollama"`
	Model          string   `yaml:"model,omitempty" toml:"model,omitempty" jsonschema:"description=Model name. Empty selects the provider default."`
	Endpoint       string   `yaml:"endpoint,omitempty" toml:"endpoint,omitempty" jsonschema:"description=Base URL override for the provider API"`
	RequestTimeout Duration `yaml:"request_timeout" toml:"request_timeout" jsonschema:"description=Deadline for one question (Go duration syntax)"`
	Manual         string   `yaml:"manual,omitempty" toml:"manual,omitempty" jsonschema:"description=Path or URL of a user's guide (PDF or text) used to ground answers"`
}

// Log configures the log file.
type Log struct {
	File  string `yaml:"file" toml:"file"`
	Level string `yaml:"level" toml:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
}

// UI configures the terminal surface.
type UI struct {
	AltScreen bool `yaml:"alt_screen" toml:"alt_screen"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InitialMode: string(calc.ModeCOMP),
		Assistant: Assistant{
			Provider:       llm.ProviderGemini,
			RequestTimeout: Duration(2 * time.Minute),
		},
		Log: Log{
			File:  defaultLogFile(),
			Level: "info",
		},
		UI: UI{AltScreen: true},
	}
}

func defaultLogFile() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, appDir, "fc100v.log")
}

// Load builds the effective config from defaults, the config file and the
// environment. explicit is the --config flag value; when it names a missing
// file Load fails, while a missing discovered file just yields defaults.
// The returned path is the file that was read, or "" if none.
func Load(explicit string) (Config, string, error) {
	cfg := Default()
	path, required := discoverPath(explicit)
	if path != "" {
		err := cfg.mergeFile(path)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !required:
			path = ""
		default:
			return cfg, path, err
		}
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, path, nil
}

func discoverPath(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(envConfigPath); env != "" {
		return env, true
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		candidate := filepath.Join(dir, appDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, false
		}
	}
	return "", false
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse YAML %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse TOML %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	return nil
}

// ApplyEnv overlays FC100V_* variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	set := func(name string, target *string) {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			*target = strings.TrimSpace(v)
		}
	}
	set("FC100V_INITIAL_MODE", &c.InitialMode)
	set("FC100V_PROVIDER", &c.Assistant.Provider)
	set("FC100V_MODEL", &c.Assistant.Model)
	set("FC100V_ENDPOINT", &c.Assistant.Endpoint)
	set("FC100V_MANUAL", &c.Assistant.Manual)
	set("FC100V_LOG_FILE", &c.Log.File)
	set("FC100V_LOG_LEVEL", &c.Log.Level)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := calc.ParseMode(c.InitialMode); err != nil {
		return fmt.Errorf("initial_mode: %w", err)
	}
	provider := strings.ToLower(c.Assistant.Provider)
	valid := false
	for _, p := range llm.Providers() {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("assistant.provider: unknown provider %q (want one of %s)", c.Assistant.Provider, strings.Join(llm.Providers(), ", "))
	}
	if c.Assistant.RequestTimeout <= 0 {
		return fmt.Errorf("assistant.request_timeout must be positive")
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Mode returns the parsed initial mode. Call Validate first.
func (c Config) Mode() calc.Mode {
	mode, err := calc.ParseMode(c.InitialMode)
	if err != nil {
		return calc.ModeCOMP
	}
	return mode
}

// YAML renders the config for display.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
