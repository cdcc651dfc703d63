package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/config"
	"github.com/halmertz/vertrag/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked contracts",
		RunE:  runList,
	}

	cmd.Flags().String("status", "", "filter by status (aktiv, gekündigt, beendet)")
	cmd.Flags().String("category", "", "filter by category tag")
	cmd.Flags().String("provider", "", "filter by provider")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var contracts []model.Contract
	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	provider, _ := cmd.Flags().GetString("provider")

	switch {
	case status != "":
		contracts, err = store.GetContractsByStatus(cmd.Context(), model.ContractStatus(status))
	case category != "":
		contracts, err = store.GetContractsByCategory(cmd.Context(), model.Category(category))
	case provider != "":
		contracts, err = store.GetContractsByProvider(cmd.Context(), provider)
	default:
		contracts, err = store.ListContracts(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("failed to list contracts: %w", err)
	}

	if len(contracts) == 0 {
		fmt.Println(cli.FormatSubtle("No contracts found."))
		return nil
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle("Contracts"))
	fmt.Println(renderContractTable(contracts, settings))
	return nil
}

func renderContractTable(contracts []model.Contract, settings config.Settings) string {
	headers := []string{"ID", "Name", "Category", "Provider", "Monthly", "Deadline", "Status"}

	var b strings.Builder
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = cli.TableHeaderStyle.Render(h)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, padCells(cells)...))
	b.WriteString("\n")

	for i := range contracts {
		c := &contracts[i]
		row := []string{
			c.ID,
			c.Name,
			string(c.Category),
			c.Provider,
			cli.FormatAmount(c.MonthlyCost, settings),
			cli.FormatDate(c.CancellationDate, settings),
			string(c.Status),
		}
		for j, v := range row {
			row[j] = cli.TableCellStyle.Render(v)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, padCells(row)...))
		b.WriteString("\n")
	}

	return b.String()
}

// padCells gives every column a stable width so rows line up.
func padCells(cells []string) []string {
	widths := []int{6, 28, 20, 16, 12, 12, 10}
	out := make([]string, len(cells))
	for i, cell := range cells {
		w := 12
		if i < len(widths) {
			w = widths[i]
		}
		out[i] = lipgloss.NewStyle().Width(w).Render(cell)
	}
	return out
}
