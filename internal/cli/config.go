package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/csheth/fc100v/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString(flagConfig)
			cfg, used, err := config.Load(path)
			if err != nil {
				return err
			}
			cfg.ApplyFlags(cmd.Flags())
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if used != "" {
				fmt.Fprintf(out, "# loaded from %s\n", used)
			}
			_, err = out.Write(data)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	})
	return cmd
}
