package domain

import (
	"slices"
	"strconv"
	"time"
)

// Category groups shopping items by store section.
type Category string

// Built-in categories. Custom items may carry any category string.
const (
	CategoryProduce    Category = "produce"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategoryPantry     Category = "pantry"
	CategoryCondiments Category = "condiments"
	CategoryOther      Category = "other"
)

// ShoppingItem is one line of a shopping list.
// Generated items have IsCustom false; user-added ones have it true.
type ShoppingItem struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	Quantity     string   `json:"quantity"` // "" or "<n>x"
	IsChecked    bool     `json:"isChecked"`
	FromRecipeID *string  `json:"fromRecipeId"`
	IsCustom     bool     `json:"isCustom,omitempty"`
}

// ShoppingItemUpdate is a partial item. Nil fields are left untouched.
type ShoppingItemUpdate struct {
	Name      *string   `json:"name,omitempty"`
	Category  *Category `json:"category,omitempty"`
	Quantity  *string   `json:"quantity,omitempty"`
	IsChecked *bool     `json:"isChecked,omitempty"`
}

// Apply shallow-merges the set fields of u over item.
func (u ShoppingItemUpdate) Apply(item *ShoppingItem) {
	if u.Name != nil {
		item.Name = *u.Name
	}
	if u.Category != nil {
		item.Category = *u.Category
	}
	if u.Quantity != nil {
		item.Quantity = *u.Quantity
	}
	if u.IsChecked != nil {
		item.IsChecked = *u.IsChecked
	}
}

// ShoppingList is the shopping list of one calendar week.
// Items is replaced on every regeneration; CustomItems survive it.
type ShoppingList struct {
	WeekStart   string         `json:"weekStart"`
	Items       []ShoppingItem `json:"items"`
	CustomItems []ShoppingItem `json:"customItems"`
	CreatedAt   time.Time      `json:"createdAt,omitzero"`
	UpdatedAt   time.Time      `json:"updatedAt,omitzero"`
	GeneratedAt time.Time      `json:"generatedAt,omitzero"`
}

// Clone returns a deep copy of l.
func (l *ShoppingList) Clone() *ShoppingList {
	if l == nil {
		return nil
	}
	c := *l
	c.Items = cloneItems(l.Items)
	c.CustomItems = cloneItems(l.CustomItems)
	return &c
}

// AllItems returns generated items followed by custom items.
func (l *ShoppingList) AllItems() []ShoppingItem {
	all := make([]ShoppingItem, 0, len(l.Items)+len(l.CustomItems))
	all = append(all, l.Items...)
	return append(all, l.CustomItems...)
}

// NextItemID returns one more than the largest numeric id across both item lists.
// Ids that are not numeric count as zero.
func (l *ShoppingList) NextItemID() string {
	maxID := 0
	for _, item := range l.AllItems() {
		if n, err := strconv.Atoi(item.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1)
}

func cloneItems(items []ShoppingItem) []ShoppingItem {
	if items == nil {
		return []ShoppingItem{}
	}
	out := slices.Clone(items)
	for i := range out {
		if out[i].FromRecipeID != nil {
			id := *out[i].FromRecipeID
			out[i].FromRecipeID = &id
		}
	}
	return out
}
