package backup

import "time"

// FormatVersion is the backup format version. Increment major on breaking changes.
const FormatVersion = "1.0"

// Archive entry names.
const (
	manifestFile      = "manifest.json"
	recipesFile       = "recipes.jsonl"
	mealPlansFile     = "mealPlans.jsonl"
	shoppingListsFile = "shoppingLists.jsonl"
)

// Manifest describes backup contents and metadata.
type Manifest struct {
	Version   string    `json:"version"`
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	// Content summary
	Counts Counts `json:"counts"`
}

// Counts tracks records per collection for validation and reporting.
type Counts struct {
	Recipes       int `json:"recipes"`
	MealPlans     int `json:"mealPlans"`
	ShoppingLists int `json:"shoppingLists"`
}

// Total returns the number of records across all collections.
func (c Counts) Total() int {
	return c.Recipes + c.MealPlans + c.ShoppingLists
}
