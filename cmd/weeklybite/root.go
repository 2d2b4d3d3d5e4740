package main

import (
	"time"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/config"
	"github.com/weeklybite/weeklybite/internal/di"
	"github.com/weeklybite/weeklybite/internal/di/providers"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/logger"
)

// app carries the container of the running command.
type app struct {
	overrides config.Overrides
	noSeed    bool
	injector  *do.RootScope
	now       func() time.Time
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeklybite",
		Short: "Plan weekly meals, shopping lists and nutrition",
		Long: `WeeklyBite keeps a recipe collection, a meal plan per calendar week,
a shopping list generated from each plan, and a weekly nutrition summary.

Weeks start on Sunday. Any date given with --week is moved back to the
Sunday of its week.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.noSeed {
				a.overrides.SeedDefaults = "false"
			}
			a.injector = di.NewContainer(a.overrides)
			return di.Bootstrap(a.injector)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.overrides.DataPath, "data-path", "", "directory of the database (env DATA_PATH)")
	flags.StringVar(&a.overrides.Env, "env", "", "environment: development, staging or production (env ENV)")
	flags.StringVar(&a.overrides.LogLevel, "log-level", "", "log level: debug, info, warn or error (env LOG_LEVEL)")
	flags.StringVar(&a.overrides.EnvFile, "env-file", config.DefaultEnvFile, "dotenv file to load")
	flags.StringVar(&a.overrides.Ephemeral, "ephemeral", "", "keep all data in memory: true or false (env EPHEMERAL)")
	flags.Lookup("ephemeral").NoOptDefVal = "true"
	flags.BoolVar(&a.noSeed, "no-seed", false, "do not load the default recipes into an empty collection")

	cmd.AddCommand(
		newRecipesCmd(a),
		newPlanCmd(a),
		newShoppingCmd(a),
		newNutritionCmd(a),
		newBackupCmd(a),
	)

	return cmd
}

// shutdown closes the store and the container. A failed close is logged;
// the command's own result stands.
func (a *app) shutdown() {
	if a.injector == nil {
		return
	}
	injector := a.injector
	a.injector = nil

	if storeHandle, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		if err := storeHandle.Shutdown(); err != nil {
			if log, err := do.Invoke[*logger.Logger](injector); err == nil {
				log.WithError(err).Error("Failed to close database")
			}
		}
	}
	_ = injector.Shutdown()
}

func (a *app) log() *logger.Logger {
	return do.MustInvoke[*logger.Logger](a.injector)
}

// addWeekFlag registers --week on cmd and returns the resolved week start.
func (a *app) addWeekFlag(cmd *cobra.Command) func() (time.Time, error) {
	var week string
	cmd.Flags().StringVar(&week, "week", "", "any date of the week (YYYY-MM-DD, default: today)")

	return func() (time.Time, error) {
		if week == "" {
			return calendar.WeekStart(a.now()), nil
		}
		t, err := calendar.ParseDateKey(week)
		if err != nil {
			return time.Time{}, errors.Validationf("invalid --week %q: want YYYY-MM-DD", week)
		}
		return calendar.WeekStart(t), nil
	}
}

// invoke resolves a service from the running container.
func invoke[T any](a *app) T {
	return do.MustInvoke[T](a.injector)
}
