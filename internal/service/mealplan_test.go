package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/errors"
)

func TestMealPlanService_GetWeekPlan_AbsentIsEmptyAndNotPersisted(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	plan, err := svc.plans.GetWeekPlan(ctx, testWeek)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-07", plan.WeekStart)
	assert.NotNil(t, plan.Meals)
	assert.Empty(t, plan.Meals)

	n, err := svc.store.MealPlans.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMealPlanService_AddMeal(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast, "1")
	require.NoError(t, err)

	plan, err := svc.plans.GetWeekPlan(ctx, testWeek)
	require.NoError(t, err)
	require.Len(t, plan.Meals, 1)

	meal, ok := plan.Meal("2024-01-07", domain.MealBreakfast)
	require.True(t, ok)
	assert.Equal(t, "1", meal.RecipeID)
	assert.Equal(t, "2024-01-07", meal.Day)
	assert.Equal(t, domain.MealBreakfast, meal.MealType)
	assert.False(t, meal.AddedAt.IsZero())
	assert.False(t, plan.UpdatedAt.IsZero())
}

func TestMealPlanService_AddMeal_Overwrites(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast, "1")
	require.NoError(t, err)
	plan, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast, "2")
	require.NoError(t, err)

	require.Len(t, plan.Meals, 1)
	meal, _ := plan.Meal("2024-01-07", domain.MealBreakfast)
	assert.Equal(t, "2", meal.RecipeID)
}

func TestMealPlanService_AddMeal_Validation(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		day      string
		mealType domain.MealType
		recipeID string
	}{
		{"unknown meal type", "2024-01-07", domain.MealType("brunch"), "1"},
		{"day before week", "2024-01-06", domain.MealLunch, "1"},
		{"day after week", "2024-01-14", domain.MealLunch, "1"},
		{"not a date", "monday", domain.MealLunch, "1"},
		{"no recipe", "2024-01-07", domain.MealLunch, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.plans.AddMeal(ctx, testWeek, tt.day, tt.mealType, tt.recipeID)
			require.Error(t, err)
			assert.Equal(t, errors.CodeValidation, errors.CodeOf(err))
		})
	}

	n, err := svc.store.MealPlans.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestMealPlanService_RemoveMeal(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast, "1")
	require.NoError(t, err)
	_, err = svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealLunch, "2")
	require.NoError(t, err)

	plan, err := svc.plans.RemoveMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast)
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 1)
	_, ok := plan.Meal("2024-01-07", domain.MealLunch)
	assert.True(t, ok)
}

func TestMealPlanService_RemoveMeal_AbsentSlotIsNoop(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast, "1")
	require.NoError(t, err)

	plan, err := svc.plans.RemoveMeal(ctx, testWeek, "2024-01-09", domain.MealDinner)
	require.NoError(t, err)
	require.Len(t, plan.Meals, 1)
	meal, ok := plan.Meal("2024-01-07", domain.MealBreakfast)
	require.True(t, ok)
	assert.Equal(t, "1", meal.RecipeID)
}

func TestMealPlanService_CopyDay_FullyOverwritesTarget(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	from, to := "2024-01-07", "2024-01-08"
	for _, add := range []struct {
		day      string
		mealType domain.MealType
		recipe   string
	}{
		{from, domain.MealBreakfast, "1"},
		{from, domain.MealDinner, "2"},
		{to, domain.MealBreakfast, "9"},
		{to, domain.MealLunch, "8"},
		{to, domain.MealSnacks, "7"},
	} {
		_, err := svc.plans.AddMeal(ctx, testWeek, add.day, add.mealType, add.recipe)
		require.NoError(t, err)
	}

	plan, err := svc.plans.CopyDay(ctx, testWeek, from, to)
	require.NoError(t, err)

	for _, mt := range domain.MealTypes {
		src, srcOK := plan.Meal(from, mt)
		dst, dstOK := plan.Meal(to, mt)
		assert.Equal(t, srcOK, dstOK, mt)
		if srcOK {
			assert.Equal(t, src.RecipeID, dst.RecipeID, mt)
			assert.Equal(t, to, dst.Day)
		}
	}
	assert.Len(t, plan.Meals, 4)
}

func TestMealPlanService_CopyDay_ToItself(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	_, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealLunch, "1")
	require.NoError(t, err)

	plan, err := svc.plans.CopyDay(ctx, testWeek, "2024-01-07", "2024-01-07")
	require.NoError(t, err)
	meal, ok := plan.Meal("2024-01-07", domain.MealLunch)
	require.True(t, ok)
	assert.Equal(t, "1", meal.RecipeID)
}

func TestMealPlanService_CopyDay_OutsideWeek(t *testing.T) {
	svc := setupServices(t)

	_, err := svc.plans.CopyDay(context.Background(), testWeek, "2024-01-07", "2024-01-20")
	assert.ErrorIs(t, err, errors.ErrValidation)
}

func TestMealPlanService_SaveWeekPlan_Shapes(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	meal := domain.MealAssignment{Day: "2024-01-09", MealType: domain.MealLunch, RecipeID: "3"}

	plan, err := svc.plans.SaveWeekPlan(ctx, testWeek, []domain.MealEntry{{Key: "2024-01-09-lunch", Meal: meal}})
	require.NoError(t, err)
	assert.Equal(t, domain.Meals{"2024-01-09-lunch": meal}, plan.Meals)

	plan, err = svc.plans.SaveWeekPlan(ctx, testWeek, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.Meals)

	plan, err = svc.plans.SaveWeekPlan(ctx, testWeek, domain.Meals{"2024-01-09-lunch": meal})
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 1)

	plan, err = svc.plans.SaveWeekPlan(ctx, testWeek, "not meals")
	require.NoError(t, err)
	assert.Empty(t, plan.Meals)

	stored, err := svc.plans.GetWeekPlan(ctx, testWeek)
	require.NoError(t, err)
	assert.Empty(t, stored.Meals)
}

func TestMealPlanService_SaveWeekPlan_DropsSlotsOutsideWeek(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	plan, err := svc.plans.SaveWeekPlan(ctx, testWeek, domain.Meals{
		"2024-01-13-dinner": {RecipeID: "1"},
		"2024-01-14-dinner": {RecipeID: "2"},
		"2024-01-13-tea":    {RecipeID: "3"},
	})
	require.NoError(t, err)
	assert.Len(t, plan.Meals, 1)
	assert.Contains(t, plan.Meals, "2024-01-13-dinner")
}

func TestMealPlanService_SaveWeekPlan_KeepsCreatedAt(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	first, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealLunch, "1")
	require.NoError(t, err)

	second, err := svc.plans.SaveWeekPlan(ctx, testWeek, first.Meals)
	require.NoError(t, err)

	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestMealPlanService_WeeksAreIndependent(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()
	nextWeek := testWeek.AddDate(0, 0, 7)

	_, err := svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealLunch, "1")
	require.NoError(t, err)
	_, err = svc.plans.AddMeal(ctx, nextWeek, "2024-01-14", domain.MealLunch, "2")
	require.NoError(t, err)

	plan, err := svc.plans.GetWeekPlan(ctx, nextWeek)
	require.NoError(t, err)
	require.Len(t, plan.Meals, 1)
	assert.Contains(t, plan.Meals, "2024-01-14-lunch")
}

func TestMealPlanService_ResolveWeek(t *testing.T) {
	svc := setupServices(t)
	ctx := context.Background()

	oatmeal, err := svc.recipes.Create(ctx, recipeInput("Oatmeal", 300, "oats"))
	require.NoError(t, err)

	_, err = svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealDinner, "404")
	require.NoError(t, err)
	_, err = svc.plans.AddMeal(ctx, testWeek, "2024-01-07", domain.MealBreakfast, oatmeal.ID)
	require.NoError(t, err)
	_, err = svc.plans.AddMeal(ctx, testWeek, "2024-01-10", domain.MealSnacks, oatmeal.ID)
	require.NoError(t, err)

	week, err := svc.plans.ResolveWeek(ctx, testWeek)
	require.NoError(t, err)
	require.Len(t, week, 7)
	assert.Equal(t, "2024-01-07", week[0].Date)
	assert.Equal(t, "2024-01-13", week[6].Date)

	sunday := week[0].Meals
	require.Len(t, sunday, 2)
	assert.Equal(t, domain.MealBreakfast, sunday[0].MealType)
	require.NotNil(t, sunday[0].Recipe)
	assert.Equal(t, "Oatmeal", sunday[0].Recipe.Name)
	assert.Equal(t, domain.MealDinner, sunday[1].MealType)
	assert.Nil(t, sunday[1].Recipe)

	assert.Empty(t, week[1].Meals)
	assert.Len(t, week[3].Meals, 1)
}
