package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/weeklybite/weeklybite/internal/backup"
	"github.com/weeklybite/weeklybite/internal/errors"
)

func newBackupCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export and restore all data",
	}

	export := &cobra.Command{
		Use:   "export <file>",
		Short: "Write every recipe, meal plan and shopping list to a zip archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := invoke[*backup.Exporter](a).ExportFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			c := result.Manifest.Counts
			fmt.Fprintf(cmd.OutOrStdout(), "Backup %s written to %s (%s)\n",
				result.Manifest.ID, args[0], humanize.Bytes(uint64(result.Size))) //#nosec G115 -- sizes are never negative
			fmt.Fprintf(cmd.OutOrStdout(), "  %d recipes, %d meal plans, %d shopping lists\n",
				c.Recipes, c.MealPlans, c.ShoppingLists)
			return nil
		},
	}

	var opts backup.RestoreOptions
	var strategy string
	restore := &cobra.Command{
		Use:   "restore <file>",
		Short: "Load a backup archive into the store",
		Long: `Load a backup archive into the store. Records are upserted by key; records
not in the archive are left alone.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.MergeStrategy = backup.MergeStrategy(strategy)

			f, err := os.Open(args[0]) //#nosec G304 -- path is chosen by the operator
			if err != nil {
				return errors.Wrap(err, errors.CodeNotFound, "unable to open backup")
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return errors.Wrap(err, errors.CodeInternal, "unable to open backup")
			}

			result, err := invoke[*backup.Restorer](a).Restore(cmd.Context(), f, info.Size(), opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			verb := "Restored"
			if opts.DryRun {
				verb = "Would restore"
			}
			fmt.Fprintf(out, "%s backup %s from %s\n", verb, result.Manifest.ID,
				result.Manifest.CreatedAt.Format("2006-01-02 15:04"))
			for _, name := range []string{"recipes", "mealPlans", "shoppingLists"} {
				fmt.Fprintf(out, "  %-14s %d imported, %d skipped\n", name, result.Imported[name], result.Skipped[name])
			}
			for _, e := range result.Errors {
				a.log().Warn("record not restored", "collection", e.Collection, "line", e.Line, "key", e.Key, "error", e.Error)
			}
			if n := len(result.Errors); n > 0 {
				fmt.Fprintf(out, "  %d records could not be restored\n", n)
			}
			return nil
		},
	}
	restore.Flags().StringVar(&strategy, "strategy", string(backup.MergeKeepBackup), "on conflict: keep_backup or keep_local")
	restore.Flags().BoolVar(&opts.DryRun, "dry-run", false, "validate without writing")

	cmd.AddCommand(export, restore)
	return cmd
}
