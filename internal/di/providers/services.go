package providers

import (
	"github.com/samber/do/v2"

	"github.com/weeklybite/weeklybite/internal/backup"
	"github.com/weeklybite/weeklybite/internal/config"
	"github.com/weeklybite/weeklybite/internal/logger"
	"github.com/weeklybite/weeklybite/internal/seed"
	"github.com/weeklybite/weeklybite/internal/service"
	"github.com/weeklybite/weeklybite/internal/validation"
)

// ProvideRecipeService provides the recipe repository, seeded with the
// embedded default recipes unless seeding is turned off.
func ProvideRecipeService(i do.Injector) (*service.RecipeService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	var opts []service.RecipeOption
	if cfg.Recipes.SeedDefaults {
		recipes, err := seed.DefaultRecipes()
		if err != nil {
			return nil, err
		}
		opts = append(opts, service.WithSeed(recipes))
	}

	return service.NewRecipeService(storeHandle.Store, log.Logger, opts...), nil
}

// ProvideMealPlanService provides the meal plan repository.
func ProvideMealPlanService(i do.Injector) (*service.MealPlanService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	recipes := do.MustInvoke[*service.RecipeService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewMealPlanService(storeHandle.Store, recipes, log.Logger), nil
}

// ProvideShoppingListService provides the shopping list generator and repository.
func ProvideShoppingListService(i do.Injector) (*service.ShoppingListService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	recipes := do.MustInvoke[*service.RecipeService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewShoppingListService(storeHandle.Store, recipes, log.Logger), nil
}

// ProvideNutritionService provides the weekly nutrition aggregator.
func ProvideNutritionService(i do.Injector) (*service.NutritionService, error) {
	plans := do.MustInvoke[*service.MealPlanService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNutritionService(plans, log.Logger), nil
}

// ProvideValidator provides the recipe input validator.
func ProvideValidator(do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideExporter provides the backup exporter.
func ProvideExporter(i do.Injector) (*backup.Exporter, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backup.NewExporter(storeHandle.Store, log.Logger), nil
}

// ProvideRestorer provides the backup restorer.
func ProvideRestorer(i do.Injector) (*backup.Restorer, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backup.NewRestorer(storeHandle.Store, log.Logger), nil
}
