// Package ingredient normalizes free-text ingredient lines and sorts them into
// shopping categories.
package ingredient

import (
	"strings"

	"github.com/weeklybite/weeklybite/internal/domain"
)

// Rule assigns Category to any ingredient containing one of Keywords.
type Rule struct {
	Category domain.Category
	Keywords []string
}

// Matches reports whether the lowercased ingredient contains one of the rule's keywords.
func (r Rule) Matches(lower string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// Rules are evaluated in order and the first match wins, so an ingredient
// matching both a produce and a condiments keyword is produce.
// "bell pepper" is listed under produce and "pepper" under pantry; keep that order.
var Rules = []Rule{
	{
		Category: domain.CategoryProduce,
		Keywords: []string{
			"lettuce", "tomato", "onion", "garlic", "ginger", "cucumber", "bell pepper",
			"carrot", "broccoli", "spinach", "avocado", "lime", "lemon", "herb", "parsley",
			"dill", "basil", "cilantro", "mushroom", "zucchini", "snap pea",
		},
	},
	{
		Category: domain.CategoryDairy,
		Keywords: []string{
			"cheese", "milk", "butter", "yogurt", "cream", "feta", "mozzarella",
			"parmesan", "cottage cheese",
		},
	},
	{
		Category: domain.CategoryMeat,
		Keywords: []string{
			"chicken", "beef", "pork", "salmon", "fish", "turkey", "bacon", "ham", "ground beef",
		},
	},
	{
		Category: domain.CategoryPantry,
		Keywords: []string{
			"rice", "quinoa", "pasta", "bread", "flour", "sugar", "salt", "pepper", "oil",
			"vinegar", "soy sauce", "honey", "spice", "oregano", "cumin", "paprika", "oat",
		},
	},
	{
		Category: domain.CategoryCondiments,
		Keywords: []string{
			"sauce", "dressing", "mayo", "mustard", "ketchup", "tahini", "paste",
		},
	},
}

// Categorize returns the category of the first rule matching the ingredient,
// or CategoryOther when none does.
func Categorize(ingredient string) domain.Category {
	lower := strings.ToLower(ingredient)
	for _, rule := range Rules {
		if rule.Matches(lower) {
			return rule.Category
		}
	}
	return domain.CategoryOther
}

// Normalize lowercases and trims an ingredient line for aggregation.
func Normalize(ingredient string) string {
	return strings.ToLower(strings.TrimSpace(ingredient))
}

// Tally counts normalized ingredients, remembering first-seen order.
type Tally struct {
	order  []string
	counts map[string]int
}

// NewTally creates an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Add normalizes ingredient and increments its count. Blank lines are ignored.
func (t *Tally) Add(ingredient string) {
	key := Normalize(ingredient)
	if key == "" {
		return
	}
	if _, ok := t.counts[key]; !ok {
		t.order = append(t.order, key)
	}
	t.counts[key]++
}

// Entry is one distinct ingredient and how many times it was added.
type Entry struct {
	Name  string
	Count int
}

// Entries returns the distinct ingredients in first-seen order.
func (t *Tally) Entries() []Entry {
	out := make([]Entry, len(t.order))
	for i, name := range t.order {
		out[i] = Entry{Name: name, Count: t.counts[name]}
	}
	return out
}
