package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
	"github.com/halmertz/vertrag/internal/common"
	"github.com/halmertz/vertrag/internal/importer"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import contracts from CSV or XLSX files",
		Long: `Import contracts from spreadsheet files.

Columns may use the German export labels (Name, Kategorie, Anbieter,
Kosten, ...) or the canonical field names. Rows with problems are skipped
and reported; the rest of the file still imports.

Examples:
  vertrag import vertraege.csv
  vertrag import vertraege.xlsx weitere.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	totalSucceeded := 0
	var allErrors []string

	for _, path := range args {
		rows, err := importer.DecodeFile(path)
		if err != nil {
			return common.NewUserError(fmt.Sprintf("could not read %s", path), err)
		}

		bar := progressbar.Default(int64(len(rows)), fmt.Sprintf("importing %s", path))
		result := importer.ProcessRows(cmd.Context(), store, rows, func() {
			_ = bar.Add(1)
		})
		_ = bar.Finish()

		totalSucceeded += result.Succeeded
		for _, e := range result.Errors {
			allErrors = append(allErrors, fmt.Sprintf("%s: %s", path, e))
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d contracts", totalSucceeded)))
	if len(allErrors) > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d rows skipped:", len(allErrors))))
		for _, e := range allErrors {
			fmt.Println(cli.FormatSubtle("  " + e))
		}
	}

	if totalSucceeded == 0 && len(allErrors) > 0 {
		return common.ErrNothingImported
	}
	return nil
}
