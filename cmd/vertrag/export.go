package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export contracts to CSV or XLSX",
		Long: `Export all contracts as a spreadsheet.

The format follows the output file extension (.csv or .xlsx); the default
is a dated CSV file in the current directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	path := fmt.Sprintf("vertraege-%s.csv", time.Now().Format("2006-01-02"))
	if len(args) == 1 {
		path = args[0]
	}

	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	contracts, err := store.ListContracts(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read contracts: %w", err)
	}

	var data []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		data, err = export.EncodeCSV(contracts)
	case ".xlsx":
		data, err = export.EncodeXLSX(contracts)
	default:
		return fmt.Errorf("unsupported export format %q (use .csv or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("failed to encode contracts: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d contracts to %s", len(contracts), path)))
	return nil
}
