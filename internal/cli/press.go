package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/csheth/fc100v/internal/calc"
)

func newPressCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "press [keys...]",
		Short: "Run key presses through the interpreter and print the display",
		Long: `Press applies keys to a freshly powered-on calculator and prints the four
display lines. Keys are identifiers or printed labels (7, +, SHIFT, M+, ×).
A single quoted argument is split like a shell command line.`,
		Example: `  fc100v press 7 + 3 =
  fc100v press "SHIFT 5 MODE" --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			keys, err := parseKeys(args)
			if err != nil {
				return err
			}
			interp := calc.New(calc.WithInitialMode(cfg.Mode()))
			screen := calc.Project(interp.Run(interp.Start(), keys...))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(screen)
			}
			for _, line := range []string{screen.Line1, screen.Line2, screen.Line3, screen.Line4} {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the display as JSON")
	return cmd
}

func parseKeys(args []string) ([]calc.KeyID, error) {
	if len(args) == 1 && strings.ContainsAny(args[0], " \t") {
		split, err := shlex.Split(args[0])
		if err != nil {
			return nil, fmt.Errorf("split keys: %w", err)
		}
		args = split
	}
	keys := make([]calc.KeyID, 0, len(args))
	for _, arg := range args {
		k, err := calc.ParseKey(arg)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
