package di_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weeklybite/weeklybite/internal/backup"
	"github.com/weeklybite/weeklybite/internal/config"
	"github.com/weeklybite/weeklybite/internal/di"
	"github.com/weeklybite/weeklybite/internal/service"
	"github.com/weeklybite/weeklybite/internal/validation"
)

func overrides(t *testing.T) config.Overrides {
	t.Helper()
	return config.Overrides{
		Env:       "development",
		LogLevel:  "error",
		Ephemeral: "true",
		EnvFile:   filepath.Join(t.TempDir(), "missing.env"),
	}
}

func TestContainer_WiresServices(t *testing.T) {
	injector := di.NewContainer(overrides(t))
	t.Cleanup(func() { injector.Shutdown() })

	require.NoError(t, di.Bootstrap(injector))

	recipes := do.MustInvoke[*service.RecipeService](injector)
	_ = do.MustInvoke[*service.MealPlanService](injector)
	_ = do.MustInvoke[*service.ShoppingListService](injector)
	_ = do.MustInvoke[*service.NutritionService](injector)
	_ = do.MustInvoke[*validation.Validator](injector)

	all, err := recipes.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 10, "default recipes are seeded")
}

func TestContainer_NoSeed(t *testing.T) {
	o := overrides(t)
	o.SeedDefaults = "false"
	injector := di.NewContainer(o)
	t.Cleanup(func() { injector.Shutdown() })

	recipes := do.MustInvoke[*service.RecipeService](injector)
	all, err := recipes.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestContainer_BackupUsesSharedStore(t *testing.T) {
	injector := di.NewContainer(overrides(t))
	t.Cleanup(func() { injector.Shutdown() })
	ctx := context.Background()

	recipes := do.MustInvoke[*service.RecipeService](injector)
	require.NoError(t, recipes.Init(ctx))

	var buf bytes.Buffer
	result, err := do.MustInvoke[*backup.Exporter](injector).Export(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 10, result.Manifest.Counts.Recipes)

	_, err = do.MustInvoke[*backup.Restorer](injector).Validate(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
}

func TestBootstrap_InvalidConfig(t *testing.T) {
	o := overrides(t)
	o.LogLevel = "verbose"
	injector := di.NewContainer(o)
	t.Cleanup(func() { injector.Shutdown() })

	assert.Error(t, di.Bootstrap(injector))
}
