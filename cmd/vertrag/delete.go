package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/halmertz/vertrag/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a contract",
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	store, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteContract(cmd.Context(), args[0]); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted contract %s", args[0])))
	return nil
}
