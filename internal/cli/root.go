// Package cli wires the fc100v command tree.
package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/csheth/fc100v/internal/config"
	"github.com/csheth/fc100v/internal/credentials"
	"github.com/csheth/fc100v/internal/llm"
)

const flagConfig = "config"

// NewRoot builds the top-level `fc100v` command. Errors and usage are left to
// the caller so main can print a single `error:` line.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:   "fc100v",
		Short: "Casio FC-100V keypad simulator with an AI help overlay",
		Long: `fc100v renders the FC-100V financial calculator in the terminal.

Keys only edit the display: there is no calculation engine, and "=" writes a
placeholder result. Press ? to ask the assistant how a key or mode works.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE:          runTUI,
	}

	flags := root.PersistentFlags()
	flags.String(flagConfig, "", "config file (YAML or TOML)")
	flags.String(config.FlagProvider, "", "assistant provider: gemini, openai or ollama")
	flags.String(config.FlagModel, "", "assistant model (default depends on provider)")
	flags.String(config.FlagEndpoint, "", "assistant API base URL")
	flags.String(config.FlagManual, "", "user's guide (PDF, text or URL) used to ground answers")
	flags.String(config.FlagInitialMode, "", "mode restored at power on (COMP, SMPL, CMPD, CASH, AMRT)")
	flags.Bool(config.FlagDebug, false, "log at debug level")
	root.Flags().Bool(config.FlagNoAltScreen, false, "disable the alternate screen buffer")

	root.AddCommand(
		newPressCmd(),
		newKeysCmd(),
		newAskCmd(),
		newAuthCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRoot().Execute()
}

// loadConfig resolves the effective config for cmd: file, environment, then
// the flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString(flagConfig)
	cfg, _, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyFlags(cmd.Flags())
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newClient builds the assistant client for cfg. A missing key is only
// logged; the client reports it on the first question.
func newClient(cfg config.Config, manualText string, log *logrus.Logger) (llm.Client, error) {
	key, err := credentials.Resolve(cfg.Assistant.Provider)
	if err != nil {
		log.WithError(err).WithField("provider", cfg.Assistant.Provider).Warn("assistant key unavailable")
	}
	return llm.New(llm.Config{
		Provider: cfg.Assistant.Provider,
		Model:    cfg.Assistant.Model,
		Endpoint: cfg.Assistant.Endpoint,
		APIKey:   key,
		Manual:   manualText,
	})
}
