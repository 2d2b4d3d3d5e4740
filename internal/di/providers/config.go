// Package providers contains dependency injection providers for WeeklyBite.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/weeklybite/weeklybite/internal/config"
	"github.com/weeklybite/weeklybite/internal/logger"
)

// ProvideConfig returns a provider that loads the configuration with the
// given command-line overrides applied.
func ProvideConfig(o config.Overrides) func(do.Injector) (*config.Config, error) {
	return func(do.Injector) (*config.Config, error) {
		return config.Load(o)
	}
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg, err := do.Invoke[*config.Config](i)
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.Logger.Level == "debug",
		Environment: cfg.App.Environment,
	})

	log.Debug("Starting WeeklyBite",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Storage.DataPath,
		"ephemeral", cfg.Storage.Ephemeral,
	)

	return log, nil
}
