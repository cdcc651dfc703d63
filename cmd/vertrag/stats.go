package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/config"
	"github.com/halmertz/vertrag/internal/model"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show monthly cost totals per category",
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	summary, err := store.GetMonthlyCostSummary(cmd.Context())
	if err != nil {
		return err
	}

	total, err := store.GetActiveMonthlyTotal(cmd.Context())
	if err != nil {
		return err
	}

	count, err := store.CountContracts(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(cli.ChartIcon + " Monthly costs (active contracts)"))

	// Highest spend first, ties by name for stable output.
	categories := make([]model.Category, 0, len(summary))
	for category := range summary {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		if summary[categories[i]] != summary[categories[j]] {
			return summary[categories[i]] > summary[categories[j]]
		}
		return categories[i] < categories[j]
	})

	for _, category := range categories {
		fmt.Printf("  %-30s %s\n", category, cli.FormatAmount(summary[category], settings))
	}

	fmt.Println()
	fmt.Printf("  %-30s %s\n", "Total per month", cli.FormatAmount(total, settings))
	fmt.Printf("  %-30s %s\n", "Total per year", cli.FormatAmount(total*12, settings))
	fmt.Println(cli.FormatSubtle(fmt.Sprintf("  %d contracts in the database", count)))

	return nil
}
