package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new contract",
		Long: `Add a contract to the tracker.

The monthly cost and the cancellation deadline are derived automatically
from the billing fields and the end date.

Examples:
  vertrag add "Netflix Premium" --category streaming-video --cost 17.99
  vertrag add "KFZ Versicherung" --category kfz-versicherung --cost 420 \
    --period yearly --end 2026-03-31 --cancellation-period 90`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().String("category", string(model.CategoryCustom), "category tag")
	cmd.Flags().String("subcategory", "", "free-text subcategory")
	cmd.Flags().String("provider", "", "provider name")
	cmd.Flags().String("number", "", "contract number")
	cmd.Flags().Float64("cost", 0, "billing cost per billing period")
	cmd.Flags().String("period", string(model.BillingMonthly), "billing period (monthly, quarterly, half-yearly, yearly)")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().Int("cancellation-period", 30, "notice period in days before the end date")
	cmd.Flags().Int("reminder-days", 30, "days before the deadline to remind")
	cmd.Flags().String("payment", "", "payment method (sepa, rechnung, kreditkarte, bar, other)")
	cmd.Flags().String("notes", "", "free-text notes")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	cost, _ := cmd.Flags().GetFloat64("cost")
	period, _ := cmd.Flags().GetString("period")
	category, _ := cmd.Flags().GetString("category")

	cat := model.Category(category)
	if !cat.IsValid() {
		return fmt.Errorf("unknown category %q (see 'vertrag add --help')", category)
	}

	contract := &model.Contract{
		Name:          args[0],
		Category:      cat,
		BillingCost:   &cost,
		BillingPeriod: model.BillingPeriod(period),
		StartDate:     time.Now(),
	}
	contract.Subcategory, _ = cmd.Flags().GetString("subcategory")
	contract.Provider, _ = cmd.Flags().GetString("provider")
	contract.ContractNumber, _ = cmd.Flags().GetString("number")
	contract.CancellationPeriod, _ = cmd.Flags().GetInt("cancellation-period")
	contract.ReminderDays, _ = cmd.Flags().GetInt("reminder-days")
	contract.Notes, _ = cmd.Flags().GetString("notes")
	if payment, _ := cmd.Flags().GetString("payment"); payment != "" {
		contract.PaymentMethod = model.PaymentMethod(payment)
	}

	if start, _ := cmd.Flags().GetString("start"); start != "" {
		t, err := parseDateFlag(start)
		if err != nil {
			return fmt.Errorf("invalid --start date: %w", err)
		}
		contract.StartDate = t
	}
	if end, _ := cmd.Flags().GetString("end"); end != "" {
		t, err := parseDateFlag(end)
		if err != nil {
			return fmt.Errorf("invalid --end date: %w", err)
		}
		contract.EndDate = &t
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	id, err := store.SaveContract(cmd.Context(), contract)
	if err != nil {
		return fmt.Errorf("failed to save contract: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Saved contract %q (id %s)", contract.Name, id)))
	if contract.CancellationDate != nil {
		fmt.Println(cli.FormatSubtle(fmt.Sprintf("  cancellation deadline: %s",
			contract.CancellationDate.Format("2006-01-02"))))
	}
	return nil
}

func parseDateFlag(s string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02.01.2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
}
