// Package di provides dependency injection configuration for WeeklyBite.
package di

import (
	"github.com/samber/do/v2"

	"github.com/weeklybite/weeklybite/internal/config"
	"github.com/weeklybite/weeklybite/internal/di/providers"
	"github.com/weeklybite/weeklybite/internal/logger"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer(o config.Overrides) *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig(o))
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideStore)

	// Repositories
	do.Provide(injector, providers.ProvideRecipeService)
	do.Provide(injector, providers.ProvideMealPlanService)
	do.Provide(injector, providers.ProvideShoppingListService)
	do.Provide(injector, providers.ProvideNutritionService)

	// Input validation and backups
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideExporter)
	do.Provide(injector, providers.ProvideRestorer)

	return injector
}

// Bootstrap resolves the core infrastructure so configuration errors surface
// before any command runs. Repositories stay lazy.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*logger.Logger](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	return nil
}
