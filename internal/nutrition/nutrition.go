// Package nutrition computes calorie and macro totals for resolved meals.
//
// Everything here is pure: inputs are resolved meals, outputs are values.
// A meal without a recipe contributes nothing.
package nutrition

import (
	"math"
	"slices"

	"github.com/weeklybite/weeklybite/internal/domain"
)

// Meal is one planned meal with its recipe resolved, or nil when the
// recipe no longer exists.
type Meal struct {
	MealType domain.MealType `json:"mealType"`
	Recipe   *domain.Recipe  `json:"recipe"`
}

// Day is the resolved meals of one date.
type Day struct {
	Date  string `json:"date"`
	Meals []Meal `json:"meals"`
}

// HasMeals reports whether at least one meal is planned for the day.
func (d Day) HasMeals() bool {
	return len(d.Meals) > 0
}

// Week is the resolved days of a week in date order.
type Week []Day

// Resolved returns a copy of w without meals whose recipe is missing.
func (w Week) Resolved() Week {
	out := make(Week, len(w))
	for i, day := range w {
		out[i] = Day{Date: day.Date, Meals: make([]Meal, 0, len(day.Meals))}
		for _, m := range day.Meals {
			if m.Recipe != nil {
				out[i].Meals = append(out[i].Meals, m)
			}
		}
	}
	return out
}

// MealCount returns the number of meals across all days.
func (w Week) MealCount() int {
	n := 0
	for _, day := range w {
		n += len(day.Meals)
	}
	return n
}

// UniqueRecipes returns the number of distinct resolved recipes in the week.
func (w Week) UniqueRecipes() int {
	seen := make(map[string]bool)
	for _, day := range w {
		for _, m := range day.Meals {
			if m.Recipe != nil {
				seen[m.Recipe.ID] = true
			}
		}
	}
	return len(seen)
}

// Macros holds macro nutrients in grams.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Add returns the component-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Protein: m.Protein + o.Protein,
		Carbs:   m.Carbs + o.Carbs,
		Fat:     m.Fat + o.Fat,
	}
}

// Totals is calories plus macros.
type Totals struct {
	Calories float64 `json:"calories"`
	Macros
}

// DayCalories sums the calories of every meal with a resolved recipe.
func DayCalories(meals []Meal) int {
	total := 0
	for _, m := range meals {
		if m.Recipe != nil {
			total += m.Recipe.Calories
		}
	}
	return total
}

// DayMacros sums protein, carbs and fat of every meal with a resolved recipe.
func DayMacros(meals []Meal) Macros {
	var total Macros
	for _, m := range meals {
		if m.Recipe != nil {
			total = total.Add(Macros{
				Protein: m.Recipe.Protein,
				Carbs:   m.Recipe.Carbs,
				Fat:     m.Recipe.Fat,
			})
		}
	}
	return total
}

// DayTotals combines DayCalories and DayMacros.
func DayTotals(meals []Meal) Totals {
	return Totals{
		Calories: float64(DayCalories(meals)),
		Macros:   DayMacros(meals),
	}
}

// WeekTotals sums the day totals of every day in the week.
func WeekTotals(week Week) Totals {
	var total Totals
	for _, day := range week {
		dt := DayTotals(day.Meals)
		total.Calories += dt.Calories
		total.Macros = total.Macros.Add(dt.Macros)
	}
	return total
}

// ActiveDays counts the days that have at least one planned meal.
func ActiveDays(week Week) int {
	n := 0
	for _, day := range week {
		if day.HasMeals() {
			n++
		}
	}
	return n
}

// DailyAverages divides the week totals by the number of days with planned
// meals, not by seven. Each value is rounded to the nearest whole number.
// A week with no planned meals averages to zero.
func DailyAverages(week Week) Totals {
	days := ActiveDays(week)
	if days == 0 {
		return Totals{}
	}
	total := WeekTotals(week)
	d := float64(days)
	return Totals{
		Calories: math.Round(total.Calories / d),
		Macros: Macros{
			Protein: math.Round(total.Protein / d),
			Carbs:   math.Round(total.Carbs / d),
			Fat:     math.Round(total.Fat / d),
		},
	}
}

// RecipeCount is how often a recipe appears in a week.
type RecipeCount struct {
	Recipe *domain.Recipe `json:"recipe"`
	Count  int            `json:"count"`
}

// MostCooked ranks the resolved recipes of the week by how often they are
// planned and returns at most n of them. Ties keep first-seen order.
func MostCooked(week Week, n int) []RecipeCount {
	index := make(map[string]int)
	var counts []RecipeCount
	for _, day := range week {
		for _, m := range day.Meals {
			if m.Recipe == nil {
				continue
			}
			if i, ok := index[m.Recipe.ID]; ok {
				counts[i].Count++
				continue
			}
			index[m.Recipe.ID] = len(counts)
			counts = append(counts, RecipeCount{Recipe: m.Recipe, Count: 1})
		}
	}

	slices.SortStableFunc(counts, func(a, b RecipeCount) int {
		return b.Count - a.Count
	})

	if n >= 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
