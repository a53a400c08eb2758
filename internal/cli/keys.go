package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/csheth/fc100v/internal/calc"
	"github.com/csheth/fc100v/internal/keypad"
)

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List the keypad and its keyboard bindings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			resolver := keypad.NewResolver(keypad.DefaultBindings())
			var rows [][]string
			for _, pos := range keypad.Positions() {
				k := pos.Key
				rows = append(rows, []string{
					strconv.Itoa(pos.Row + 1),
					strconv.Itoa(pos.Column + 1),
					string(k.ID),
					k.Label,
					string(k.Kind),
					k.Theme.String(),
					resolver.KeyHint(k.ID),
				})
			}
			// "=" has no cap on the face but is still reachable from the keyboard.
			rows = append(rows, []string{"-", "-", string(calc.KeyEquals), "=", "", "", resolver.KeyHint(calc.KeyEquals)})

			headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
			cellStyle := lipgloss.NewStyle().Padding(0, 1)
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ROW", "COL", "ID", "LABEL", "TYPE", "THEME", "KEYBOARD").
				Rows(rows...).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	}
}
