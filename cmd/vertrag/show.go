package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/config"
)

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show all details of one contract",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	c, err := store.GetContract(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatTitle(c.Name))

	line := func(label, value string) {
		if value == "" {
			value = "-"
		}
		fmt.Printf("  %-22s %s\n", label, value)
	}

	line("ID", c.ID)
	line("Category", string(c.Category))
	line("Subcategory", c.Subcategory)
	line("Provider", c.Provider)
	line("Contract number", c.ContractNumber)
	line("Monthly cost", cli.FormatAmount(c.MonthlyCost, settings))
	line("Billing cost", cli.FormatAmount(c.BillingCostOrMonthly(), settings))
	line("Billing period", string(c.BillingPeriod))
	line("Start date", cli.FormatDate(&c.StartDate, settings))
	line("End date", cli.FormatDate(c.EndDate, settings))
	line("Cancellation period", fmt.Sprintf("%d days", c.CancellationPeriod))
	line("Cancellation deadline", cli.FormatDate(c.CancellationDate, settings))
	line("Reminder", fmt.Sprintf("%d days before deadline", c.ReminderDays))
	line("Status", string(c.Status))
	line("Payment method", string(c.PaymentMethod))
	line("Notes", c.Notes)

	return nil
}
