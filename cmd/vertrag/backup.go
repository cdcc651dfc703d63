package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/backup"
	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/common"
)

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup [file]",
		Short: "Write a JSON backup of all contracts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBackup,
	}
}

func runBackup(cmd *cobra.Command, args []string) error {
	path := fmt.Sprintf("vertraege-backup-%s.json", time.Now().Format("2006-01-02"))
	if len(args) == 1 {
		path = args[0]
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	data, err := backup.Export(cmd.Context(), store)
	if err != nil {
		return fmt.Errorf("failed to export backup: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Backup written to %s", path)))
	return nil
}

func restoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore contracts from a JSON backup",
		Long: `Restore the contract collection from a backup file.

Restoring REPLACES all existing contracts. Backups from older releases are
migrated to the current schema automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: runRestore,
	}
	cmd.Flags().Bool("force", false, "replace existing contracts without asking")
	return cmd
}

func runRestore(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return common.NewUserError(fmt.Sprintf("could not read %s", args[0]), err)
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		count, err := store.CountContracts(cmd.Context())
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("database already holds %d contracts; restoring replaces them all, re-run with --force", count)
		}
	}

	result, err := backup.Import(cmd.Context(), store, data)
	if err != nil {
		return common.NewUserError("restore failed", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored %d contracts from %s", result.Imported, args[0])))
	return nil
}
