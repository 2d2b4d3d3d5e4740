package ingredient

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weeklybite/weeklybite/internal/domain"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		ingredient string
		want       domain.Category
	}{
		{"2 Tomatoes, diced", domain.CategoryProduce},
		{"1 cup milk", domain.CategoryDairy},
		{"200g chicken breast", domain.CategoryMeat},
		{"1 cup rolled oats", domain.CategoryPantry},
		{"2 tbsp Dijon mustard", domain.CategoryCondiments},
		{"3 eggs", domain.CategoryOther},
		{"", domain.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.ingredient, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.ingredient))
		})
	}
}

func TestCategorize_FirstMatchWins(t *testing.T) {
	// "tomato paste" matches produce ("tomato") and condiments ("paste").
	assert.Equal(t, domain.CategoryProduce, Categorize("tomato paste"))

	// "garlic butter" matches produce before dairy.
	assert.Equal(t, domain.CategoryProduce, Categorize("garlic butter"))

	// "bell pepper" is produce even though "pepper" alone is pantry.
	assert.Equal(t, domain.CategoryProduce, Categorize("1 red bell pepper"))
	assert.Equal(t, domain.CategoryPantry, Categorize("black pepper"))

	// "cream cheese" is dairy, "ham" inside "graham" is still meat.
	assert.Equal(t, domain.CategoryDairy, Categorize("cream cheese"))
	assert.Equal(t, domain.CategoryMeat, Categorize("graham crackers"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "tomato", Normalize("Tomato"))
	assert.Equal(t, "tomato", Normalize("tomato "))
	assert.Equal(t, "olive oil", Normalize("  Olive Oil\t"))
	assert.Empty(t, Normalize("   "))
}

func TestTally_AggregatesNormalizedNames(t *testing.T) {
	tally := NewTally()
	tally.Add("Tomato")
	tally.Add("carrot")
	tally.Add("tomato ")
	tally.Add("  ")

	assert.Equal(t, []Entry{
		{Name: "tomato", Count: 2},
		{Name: "carrot", Count: 1},
	}, tally.Entries())
	assert.Equal(t, domain.CategoryProduce, Categorize("tomato"))
}

func TestTally_Empty(t *testing.T) {
	assert.Empty(t, NewTally().Entries())
}
