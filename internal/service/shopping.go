package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/ingredient"
	"github.com/weeklybite/weeklybite/internal/store"
)

// Glyphs used by the text export.
const (
	GlyphChecked   = "✓"
	GlyphUnchecked = "☐"
)

// maxConcurrentLookups bounds recipe lookups during generation.
const maxConcurrentLookups = 8

// ShoppingListService generates and edits week shopping lists.
type ShoppingListService struct {
	store   *store.Store
	recipes *RecipeService
	logger  *slog.Logger
	now     func() time.Time
}

// NewShoppingListService creates a new shopping list service.
func NewShoppingListService(store *store.Store, recipes *RecipeService, logger *slog.Logger) *ShoppingListService {
	return &ShoppingListService{
		store:   store,
		recipes: recipes,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *ShoppingListService) init(ctx context.Context) error {
	if err := s.store.Init(ctx); err != nil {
		return fail(s.logger, err, "unable to initialize shopping lists")
	}
	return nil
}

// GetWeekShoppingList returns the list of the week starting at weekStart.
// An absent week yields an empty list that is not persisted.
func (s *ShoppingListService) GetWeekShoppingList(ctx context.Context, weekStart time.Time) (*domain.ShoppingList, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}
	list, _, err := s.load(ctx, calendar.DateKey(weekStart))
	return list, err
}

// load returns the stored list for key, or a fresh empty one and false.
func (s *ShoppingListService) load(ctx context.Context, key string) (*domain.ShoppingList, bool, error) {
	list, err := s.store.ShoppingLists.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.ShoppingList{
			WeekStart:   key,
			Items:       []domain.ShoppingItem{},
			CustomItems: []domain.ShoppingItem{},
		}, false, nil
	}
	if err != nil {
		return nil, false, fail(s.logger, err, "unable to load shopping list", "week_start", key)
	}
	return list.Clone(), true, nil
}

// GenerateFromMealPlan rebuilds the generated items of a week from the
// recipes referenced by meals. Custom items are left untouched.
//
// Ingredients are aggregated by their lowercased, trimmed text. An
// ingredient that appears in n recipes gets quantity "nx".
func (s *ShoppingListService) GenerateFromMealPlan(ctx context.Context, weekStart time.Time, meals any) (*domain.ShoppingList, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}

	key := calendar.DateKey(weekStart)
	res := NormalizeMeals(meals)
	if res.Outcome == MealsMalformed {
		s.logger.Warn("expected meals mapping, generating an empty list", "week_start", key, "shape", res.Shape)
	}

	recipes, err := s.resolve(ctx, recipeIDs(res.Meals))
	if err != nil {
		return nil, fail(s.logger, err, "unable to generate shopping list", "week_start", key)
	}

	tally := ingredient.NewTally()
	for _, r := range recipes {
		for _, ing := range r.Ingredients {
			tally.Add(ing)
		}
	}

	list, existed, err := s.load(ctx, key)
	if err != nil {
		return nil, errors.Surface(err, "unable to generate shopping list")
	}

	taken := make(map[string]bool, len(list.CustomItems))
	for _, item := range list.CustomItems {
		taken[item.ID] = true
	}

	entries := tally.Entries()
	items := make([]domain.ShoppingItem, 0, len(entries))
	next := 1
	for _, e := range entries {
		for taken[strconv.Itoa(next)] {
			next++
		}
		quantity := ""
		if e.Count > 1 {
			quantity = strconv.Itoa(e.Count) + "x"
		}
		items = append(items, domain.ShoppingItem{
			ID:       strconv.Itoa(next),
			Name:     e.Name,
			Category: ingredient.Categorize(e.Name),
			Quantity: quantity,
		})
		next++
	}

	now := s.now()
	list.Items = items
	list.GeneratedAt = now
	if !existed {
		list.CreatedAt = now
	}

	saved, err := s.save(ctx, list, "unable to generate shopping list")
	if err != nil {
		return nil, err
	}

	s.logger.Info("shopping list generated",
		"week_start", key,
		"recipes", len(recipes),
		"items", len(items),
	)
	return saved, nil
}

// UpdateItem merges u over the generated item itemID. Custom items cannot be
// updated through it.
func (s *ShoppingListService) UpdateItem(ctx context.Context, weekStart time.Time, itemID string, u domain.ShoppingItemUpdate) (*domain.ShoppingList, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}

	list, _, err := s.load(ctx, calendar.DateKey(weekStart))
	if err != nil {
		return nil, errors.Surface(err, "unable to update item")
	}

	i := slices.IndexFunc(list.Items, func(item domain.ShoppingItem) bool {
		return item.ID == itemID
	})
	if i < 0 {
		return nil, errors.NotFoundf("item %s not found", itemID)
	}
	u.Apply(&list.Items[i])

	return s.save(ctx, list, "unable to update item")
}

// AddCustomItem appends a user item. An empty category becomes "other".
func (s *ShoppingListService) AddCustomItem(ctx context.Context, weekStart time.Time, name string, category domain.Category) (*domain.ShoppingList, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}

	list, existed, err := s.load(ctx, calendar.DateKey(weekStart))
	if err != nil {
		return nil, errors.Surface(err, "unable to add item")
	}

	if category == "" {
		category = domain.CategoryOther
	}
	list.CustomItems = append(list.CustomItems, domain.ShoppingItem{
		ID:       list.NextItemID(),
		Name:     strings.TrimSpace(name),
		Category: category,
		IsCustom: true,
	})
	if !existed {
		list.CreatedAt = s.now()
	}

	return s.save(ctx, list, "unable to add item")
}

// RemoveCustomItem drops a user item. Removing a missing item is not an error.
func (s *ShoppingListService) RemoveCustomItem(ctx context.Context, weekStart time.Time, itemID string) (*domain.ShoppingList, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}

	list, _, err := s.load(ctx, calendar.DateKey(weekStart))
	if err != nil {
		return nil, errors.Surface(err, "unable to remove item")
	}

	list.CustomItems = slices.DeleteFunc(list.CustomItems, func(item domain.ShoppingItem) bool {
		return item.ID == itemID
	})

	return s.save(ctx, list, "unable to remove item")
}

// GetShoppingListText renders the list as plain text, grouped by category in
// order of first appearance over generated items followed by custom items.
func (s *ShoppingListService) GetShoppingListText(ctx context.Context, weekStart time.Time) (string, error) {
	list, err := s.GetWeekShoppingList(ctx, weekStart)
	if err != nil {
		return "", errors.Surface(err, "unable to generate list text")
	}
	return s.render(weekStart, list), nil
}

func (s *ShoppingListService) render(weekStart time.Time, list *domain.ShoppingList) string {
	upper := cases.Upper(language.Und)
	var order []domain.Category
	groups := make(map[domain.Category][]domain.ShoppingItem)
	for _, item := range list.AllItems() {
		if _, ok := groups[item.Category]; !ok {
			order = append(order, item.Category)
		}
		groups[item.Category] = append(groups[item.Category], item)
	}

	var b strings.Builder
	b.WriteString("Shopping List - Week of ")
	b.WriteString(calendar.WeekOf(weekStart))
	b.WriteString("\n\n")

	for _, category := range order {
		b.WriteString(upper.String(string(category)))
		b.WriteString(":\n")
		for _, item := range groups[category] {
			glyph := GlyphUnchecked
			if item.IsChecked {
				glyph = GlyphChecked
			}
			b.WriteString(glyph)
			b.WriteByte(' ')
			if item.Quantity != "" {
				b.WriteString("(" + item.Quantity + ") ")
			}
			b.WriteString(item.Name)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *ShoppingListService) save(ctx context.Context, list *domain.ShoppingList, msg string) (*domain.ShoppingList, error) {
	list.UpdatedAt = s.now()
	if err := s.store.ShoppingLists.Set(ctx, list); err != nil {
		return nil, fail(s.logger, err, msg, "week_start", list.WeekStart)
	}
	return list.Clone(), nil
}

// resolve looks up recipes concurrently, keeping the order of ids. Ids that
// do not resolve are skipped.
func (s *ShoppingListService) resolve(ctx context.Context, ids []string) ([]*domain.Recipe, error) {
	found := make([]*domain.Recipe, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLookups)
	for i, id := range ids {
		g.Go(func() error {
			r, err := s.recipes.GetByID(gctx, id)
			if err != nil {
				return err
			}
			found[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	recipes := make([]*domain.Recipe, 0, len(found))
	for i, r := range found {
		if r == nil {
			s.logger.Debug("skipping unknown recipe", "recipe_id", ids[i])
			continue
		}
		recipes = append(recipes, r)
	}
	return recipes, nil
}

// recipeIDs returns the distinct recipe ids of meals, walking slots by day
// and then by meal type.
func recipeIDs(meals domain.Meals) []string {
	slots := make([]domain.MealAssignment, 0, len(meals))
	for key, meal := range meals {
		day, mealType, ok := domain.ParseMealKey(key)
		if !ok {
			continue
		}
		meal.Day, meal.MealType = day, mealType
		slots = append(slots, meal)
	}
	slices.SortFunc(slots, func(a, b domain.MealAssignment) int {
		return cmp.Or(
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.MealType.Order(), b.MealType.Order()),
		)
	})

	seen := make(map[string]bool)
	ids := make([]string, 0, len(slots))
	for _, slot := range slots {
		if slot.RecipeID == "" || seen[slot.RecipeID] {
			continue
		}
		seen[slot.RecipeID] = true
		ids = append(ids, slot.RecipeID)
	}
	return ids
}
