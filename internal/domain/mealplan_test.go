package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMealType_Valid(t *testing.T) {
	for _, mt := range MealTypes {
		assert.True(t, mt.Valid(), mt)
	}
	assert.False(t, MealType("brunch").Valid())
	assert.False(t, MealType("").Valid())
}

func TestMealType_Order(t *testing.T) {
	assert.Equal(t, 0, MealBreakfast.Order())
	assert.Equal(t, 3, MealSnacks.Order())
	assert.Equal(t, len(MealTypes), MealType("brunch").Order())
}

func TestParseMealKey(t *testing.T) {
	tests := []struct {
		key      string
		day      string
		mealType MealType
		ok       bool
	}{
		{"2024-01-07-breakfast", "2024-01-07", MealBreakfast, true},
		{MealKey("2024-01-13", MealSnacks), "2024-01-13", MealSnacks, true},
		{"2024-01-07-brunch", "", "", false},
		{"2024-01-07-", "", "", false},
		{"-dinner", "", "", false},
		{"dinner", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			day, mealType, ok := ParseMealKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.day, day)
			assert.Equal(t, tt.mealType, mealType)
		})
	}
}

func TestWeekPlan_Clone_OwnsMeals(t *testing.T) {
	p := &WeekPlan{WeekStart: "2024-01-07", Meals: Meals{
		"2024-01-07-lunch": {Day: "2024-01-07", MealType: MealLunch, RecipeID: "3"},
	}}

	c := p.Clone()
	delete(c.Meals, "2024-01-07-lunch")

	m, ok := p.Meal("2024-01-07", MealLunch)
	assert.True(t, ok)
	assert.Equal(t, "3", m.RecipeID)
}

func TestMeals_Clone_Nil(t *testing.T) {
	var m Meals
	c := m.Clone()
	assert.NotNil(t, c)
	assert.Empty(t, c)
}
