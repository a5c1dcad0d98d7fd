package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/labyrinth/pkg/generate"
)

// algorithmsCommand lists the registered generation algorithms.
func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "algorithms",
		Aliases: []string{"algos"},
		Short:   "List maze generation algorithms",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), algorithmTable().Render())
			return nil
		},
	}
}

func algorithmTable() *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	var rows [][]string
	for _, name := range generate.Names() {
		marker := ""
		if name == generate.DefaultAlgorithm {
			marker = iconSuccess
		}
		rows = append(rows, []string{name, generate.Describe(name), marker})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Algorithm", "Description", "Default").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan)
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		})
}
