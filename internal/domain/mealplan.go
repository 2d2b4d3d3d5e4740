package domain

import (
	"maps"
	"strings"
	"time"
)

// MealType is one of the four fixed slots of a day.
type MealType string

// Meal types in display order.
const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes lists the meal types in day order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// Valid reports whether t is one of the fixed meal types.
func (t MealType) Valid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnacks:
		return true
	default:
		return false
	}
}

// Order returns the position of t within a day, or len(MealTypes) when t is unknown.
func (t MealType) Order() int {
	for i, mt := range MealTypes {
		if mt == t {
			return i
		}
	}
	return len(MealTypes)
}

// MealKey builds the slot key "<day>-<mealType>".
func MealKey(day string, mealType MealType) string {
	return day + "-" + string(mealType)
}

// ParseMealKey splits a slot key into its day and meal type.
// The day is everything before the last hyphen, since date keys contain hyphens.
func ParseMealKey(key string) (day string, mealType MealType, ok bool) {
	i := strings.LastIndexByte(key, '-')
	if i <= 0 || i == len(key)-1 {
		return "", "", false
	}
	mealType = MealType(key[i+1:])
	if !mealType.Valid() {
		return "", "", false
	}
	return key[:i], mealType, true
}

// MealAssignment places one recipe in one slot.
type MealAssignment struct {
	Day      string    `json:"day"`
	MealType MealType  `json:"mealType"`
	RecipeID string    `json:"recipeId"`
	AddedAt  time.Time `json:"addedAt"`
}

// Meals maps slot keys to assignments.
type Meals map[string]MealAssignment

// Clone returns a copy of m. A nil map clones to an empty one.
func (m Meals) Clone() Meals {
	out := make(Meals, len(m))
	maps.Copy(out, m)
	return out
}

// MealEntry is one key/assignment pair of a Meals mapping in list form.
type MealEntry struct {
	Key  string         `json:"key"`
	Meal MealAssignment `json:"meal"`
}

// WeekPlan holds the meal assignments of one calendar week.
type WeekPlan struct {
	WeekStart string    `json:"weekStart"`
	Meals     Meals     `json:"meals"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// Clone returns a copy of p with its own Meals map.
func (p *WeekPlan) Clone() *WeekPlan {
	if p == nil {
		return nil
	}
	c := *p
	c.Meals = p.Meals.Clone()
	return &c
}

// Meal returns the assignment in the given slot.
func (p *WeekPlan) Meal(day string, mealType MealType) (MealAssignment, bool) {
	m, ok := p.Meals[MealKey(day, mealType)]
	return m, ok
}
