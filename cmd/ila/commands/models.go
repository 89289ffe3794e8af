/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: models.go
Description: Models commands. Lists and deletes models kept in the SQLite model database.
*/

package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/kleascm/ila-classifier/pkg/store"
	"github.com/spf13/cobra"
)

func newModelsCommand() *cobra.Command {
	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "Manage models in the SQLite model database",
	}

	modelsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored models, newest first",
		Args:  cobra.NoArgs,
		RunE:  runModelsList,
	})
	modelsCmd.AddCommand(&cobra.Command{
		Use:   "delete <model_id>",
		Short: "Delete a stored model",
		Args:  cobra.ExactArgs(1),
		RunE:  runModelsDelete,
	})

	return modelsCmd
}

// openDatabase opens the model database regardless of the configured store kind
func openDatabase(cmd *cobra.Command) (*store.SQLiteStore, string, func(), error) {
	cfg, logger, err := prepare(cmd, "")
	if err != nil {
		return nil, "", nil, err
	}
	db, err := store.NewSQLiteStore(cfg.Database)
	if err != nil {
		logger.Close()
		return nil, "", nil, fmt.Errorf("failed to open model database: %w", err)
	}
	return db, cfg.Database, func() {
		db.Close()
		logger.Close()
	}, nil
}

func runModelsList(cmd *cobra.Command, args []string) error {
	db, path, done, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer done()

	entries, err := db.List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintf(out, "No models stored in %s\n", path)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCLASS\tRULES\tTRAINED\tSIZE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\n",
			e.ID, e.ClassName, e.Rules, e.TrainedAt.Local().Format(time.DateTime), e.Size)
	}
	return w.Flush()
}

func runModelsDelete(cmd *cobra.Command, args []string) error {
	db, _, done, err := openDatabase(cmd)
	if err != nil {
		return err
	}
	defer done()

	id := args[0]
	if err := db.Delete(cmd.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("model %s not found", id)
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted model %s\n", id)
	return nil
}
