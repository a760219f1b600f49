package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ioxu/boxer/pkg/view"
	"github.com/ioxu/boxer/pkg/view/plugins"
)

// viewsCommand lists the registered view types.
func (c *CLI) viewsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the view types a leaf can show",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), viewsTable(plugins.NewCatalog()))
			return nil
		},
	}
}

func viewsTable(catalog *view.Catalog) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{{"-1", view.NoneName, "", "", ""}}
	for _, t := range catalog.Types() {
		v := t.New()
		rows = append(rows, []string{
			strconv.Itoa(t.Index),
			t.Name,
			t.GoType().String(),
			yesNo(implements[view.Initializer](v)),
			yesNo(implements[view.Interactive](v)),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Name", "Type", "Draws", "Interactive").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 1:
				return lipgloss.NewStyle().Foreground(colorCyan)
			default:
				return lipgloss.NewStyle().Foreground(colorGray)
			}
		}).
		Render()
}

func implements[T any](v view.View) bool {
	_, ok := v.(T)
	return ok
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
