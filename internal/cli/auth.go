package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/csheth/fc100v/internal/credentials"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage assistant API keys in the system keychain",
	}
	cmd.AddCommand(newSetKeyCmd(), newClearKeyCmd())
	return cmd
}

func newSetKeyCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "set-key",
		Short: "Store an API key for the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := authProvider(cmd)
			if err != nil {
				return err
			}
			if !credentials.NeedsKey(provider) {
				return fmt.Errorf("provider %q does not use an API key", provider)
			}
			if key == "" {
				key, err = promptKey(cmd, provider)
				if err != nil {
					return err
				}
			}
			if err := credentials.Store(provider, key); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s API key in the keychain.\n", provider)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "API key (prompted for when omitted)")
	return cmd
}

func newClearKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-key",
		Short: "Remove the stored API key for the provider",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider, err := authProvider(cmd)
			if err != nil {
				return err
			}
			if err := credentials.Clear(provider); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s API key from the keychain.\n", provider)
			return nil
		},
	}
}

func authProvider(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return strings.ToLower(cfg.Assistant.Provider), nil
}

// promptKey asks for the key with a masked input on a terminal and reads one
// line otherwise.
func promptKey(cmd *cobra.Command, provider string) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		var key string
		err := huh.NewInput().
			Title(fmt.Sprintf("%s API key", provider)).
			Description(fmt.Sprintf("Stored in the system keychain; %s still takes precedence.", strings.Join(credentials.EnvVars(provider), " or "))).
			EchoMode(huh.EchoModePassword).
			Value(&key).
			Run()
		return key, err
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read key: %w", err)
	}
	return strings.TrimSpace(line), nil
}
