package service

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/store"
)

// testWeek is the Sunday 2024-01-07.
var testWeek = time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)

// fakeClock returns a strictly increasing time on every call.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 7, 8, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

type testServices struct {
	store     *store.Store
	recipes   *RecipeService
	plans     *MealPlanService
	shopping  *ShoppingListService
	nutrition *NutritionService
	clock     *fakeClock
}

func setupServices(t *testing.T, opts ...RecipeOption) *testServices {
	t.Helper()

	s := store.New(store.Options{InMemory: true})
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := newFakeClock()

	recipes := NewRecipeService(s, logger, opts...)
	recipes.now = clock.Now
	plans := NewMealPlanService(s, recipes, logger)
	plans.now = clock.Now
	shopping := NewShoppingListService(s, recipes, logger)
	shopping.now = clock.Now

	return &testServices{
		store:     s,
		recipes:   recipes,
		plans:     plans,
		shopping:  shopping,
		nutrition: NewNutritionService(plans, logger),
		clock:     clock,
	}
}

func recipeInput(name string, calories int, ingredients ...string) domain.RecipeInput {
	return domain.RecipeInput{
		Name:         name,
		PrepTime:     10,
		Calories:     calories,
		Servings:     1,
		Ingredients:  ingredients,
		Instructions: []string{"Cook it."},
	}
}
