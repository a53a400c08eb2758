package config

import (
	"github.com/spf13/pflag"
)

// Flag names understood by ApplyFlags.
const (
	FlagProvider    = "provider"
	FlagModel       = "model"
	FlagEndpoint    = "endpoint"
	FlagManual      = "manual"
	FlagInitialMode = "initial-mode"
	FlagNoAltScreen = "no-alt-screen"
	FlagDebug       = "debug"
)

// ApplyFlags overlays only the flags the user set explicitly, so flag
// defaults never mask file or environment values.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) {
	fs.Visit(func(f *pflag.Flag) {
		value := f.Value.String()
		switch f.Name {
		case FlagProvider:
			c.Assistant.Provider = value
		case FlagModel:
			c.Assistant.Model = value
		case FlagEndpoint:
			c.Assistant.Endpoint = value
		case FlagManual:
			c.Assistant.Manual = value
		case FlagInitialMode:
			c.InitialMode = value
		case FlagNoAltScreen:
			if value == "true" {
				c.UI.AltScreen = false
			}
		case FlagDebug:
			if value == "true" {
				c.Log.Level = "debug"
			}
		}
	})
}
