package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/config"
	"github.com/halmertz/vertrag/internal/notify"
)

func remindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Show contracts whose cancellation deadline is coming up",
		Long: `Show active contracts inside their reminder window.

A contract appears once its cancellation deadline lies within the number of
reminder days configured on the contract. With --watch the check repeats on
an interval until interrupted.`,
		RunE: runRemind,
	}
	cmd.Flags().Bool("watch", false, "keep running and re-check periodically")
	cmd.Flags().Duration("interval", notify.DailyInterval, "check interval in watch mode")
	return cmd
}

func runRemind(cmd *cobra.Command, _ []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	checker := notify.NewChecker(store)

	printReminders := func(due []notify.Reminder) {
		if len(due) == 0 {
			fmt.Println(cli.FormatSubtle("No cancellation deadlines coming up."))
			return
		}
		fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s %d upcoming cancellation deadlines", cli.DeadlineIcon, len(due))))
		for _, r := range due {
			fmt.Printf("  %-30s %s (in %d days)\n",
				r.Contract.Name,
				cli.FormatDate(r.Contract.CancellationDate, settings),
				r.DaysUntil)
		}
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		due, err := checker.Due(cmd.Context(), time.Now())
		if err != nil {
			return err
		}
		printReminders(due)
		return nil
	}

	interval, _ := cmd.Flags().GetDuration("interval")
	err = checker.Watch(cmd.Context(), interval, printReminders)
	if err != nil && cmd.Context().Err() != nil {
		return nil
	}
	return err
}
