package service

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/domain"
)

// MealsOutcome tells how NormalizeMeals arrived at its result.
type MealsOutcome int

// Normalization outcomes.
const (
	// MealsAccepted means the input already was a meals mapping.
	MealsAccepted MealsOutcome = iota
	// MealsMaterialized means the input was a list or sequence of entries.
	MealsMaterialized
	// MealsDefaulted means the input was nil and an empty mapping was substituted.
	MealsDefaulted
	// MealsMalformed means the input had an unsupported shape and an empty
	// mapping was substituted.
	MealsMalformed
)

func (o MealsOutcome) String() string {
	switch o {
	case MealsAccepted:
		return "accepted"
	case MealsMaterialized:
		return "materialized"
	case MealsDefaulted:
		return "defaulted"
	case MealsMalformed:
		return "malformed"
	default:
		return fmt.Sprintf("MealsOutcome(%d)", int(o))
	}
}

// MealsResult is the canonical mapping produced by NormalizeMeals.
type MealsResult struct {
	Meals   domain.Meals
	Outcome MealsOutcome
	// Dropped lists the keys that did not decode to a day and meal type.
	Dropped []string
	// Shape is the Go type of a malformed input.
	Shape string
}

// NormalizeMeals converts any accepted meals shape into a domain.Meals.
//
// Accepted shapes are domain.Meals, map[string]domain.MealAssignment,
// []domain.MealEntry and iter.Seq2[string, domain.MealAssignment]; nil yields
// an empty mapping. Anything else also yields an empty mapping with outcome
// MealsMalformed. It never fails.
func NormalizeMeals(meals any) MealsResult {
	var (
		res     MealsResult
		entries iter.Seq2[string, domain.MealAssignment]
	)

	switch m := meals.(type) {
	case nil:
		return MealsResult{Meals: domain.Meals{}, Outcome: MealsDefaulted}
	case domain.Meals:
		res.Outcome = MealsAccepted
		entries = maps.All(m)
	case map[string]domain.MealAssignment:
		res.Outcome = MealsAccepted
		entries = maps.All(m)
	case []domain.MealEntry:
		res.Outcome = MealsMaterialized
		entries = func(yield func(string, domain.MealAssignment) bool) {
			for _, e := range m {
				if !yield(e.Key, e.Meal) {
					return
				}
			}
		}
	case iter.Seq2[string, domain.MealAssignment]:
		res.Outcome = MealsMaterialized
		entries = m
	case func(yield func(string, domain.MealAssignment) bool):
		res.Outcome = MealsMaterialized
		entries = m
	default:
		return MealsResult{
			Meals:   domain.Meals{},
			Outcome: MealsMalformed,
			Shape:   fmt.Sprintf("%T", meals),
		}
	}

	res.Meals = domain.Meals{}
	for key, meal := range entries {
		if _, _, ok := decodeSlot(key); !ok {
			res.Dropped = append(res.Dropped, key)
			continue
		}
		res.Meals[key] = meal
	}
	slices.Sort(res.Dropped)
	return res
}

// decodeSlot splits a slot key and checks that its day is a date key.
func decodeSlot(key string) (day string, mealType domain.MealType, ok bool) {
	day, mealType, ok = domain.ParseMealKey(key)
	if !ok {
		return "", "", false
	}
	if _, err := calendar.ParseDateKey(day); err != nil {
		return "", "", false
	}
	return day, mealType, true
}
