package service

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/store"
)

// RecipeService manages the recipe collection.
type RecipeService struct {
	store  *store.Store
	logger *slog.Logger
	seed   []*domain.Recipe
	now    func() time.Time

	mu          sync.Mutex
	initialized bool
}

// RecipeOption configures a RecipeService.
type RecipeOption func(*RecipeService)

// WithSeed sets the recipes loaded into an empty collection on first init.
func WithSeed(recipes []*domain.Recipe) RecipeOption {
	return func(s *RecipeService) {
		s.seed = recipes
	}
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(store *store.Store, logger *slog.Logger, opts ...RecipeOption) *RecipeService {
	s := &RecipeService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init opens the store and seeds the default recipes when the collection is
// empty. Seeding happens at most once per service.
func (s *RecipeService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := s.store.Init(ctx); err != nil {
		return fail(s.logger, err, "unable to load recipes")
	}

	if len(s.seed) > 0 {
		n, err := s.store.Recipes.Count(ctx)
		if err != nil {
			return fail(s.logger, err, "unable to load recipes")
		}
		if n == 0 {
			seed := make([]*domain.Recipe, len(s.seed))
			for i, r := range s.seed {
				seed[i] = r.Clone()
			}
			if err := s.store.Recipes.SetAll(ctx, seed); err != nil {
				return fail(s.logger, err, "unable to load recipes")
			}
			s.logger.Info("seeded default recipes", "count", len(seed))
		}
	}

	s.initialized = true
	return nil
}

// GetAll returns every recipe, newest first.
func (s *RecipeService) GetAll(ctx context.Context) ([]*domain.Recipe, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	recipes, err := s.store.Recipes.All(ctx)
	if err != nil {
		return nil, fail(s.logger, err, "unable to load recipes")
	}

	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	return recipes, nil
}

// GetByID returns the recipe with the given id, or nil if there is none.
func (s *RecipeService) GetByID(ctx context.Context, id string) (*domain.Recipe, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	recipe, err := s.store.Recipes.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fail(s.logger, err, "unable to load recipe", "recipe_id", id)
	}
	return recipe, nil
}

// GetFavorites returns the favorite recipes, newest first.
func (s *RecipeService) GetFavorites(ctx context.Context) ([]*domain.Recipe, error) {
	recipes, err := s.GetAll(ctx)
	if err != nil {
		return nil, errors.Surface(err, "unable to load favorites")
	}
	return slices.DeleteFunc(recipes, func(r *domain.Recipe) bool {
		return !r.IsFavorite
	}), nil
}

// Search returns recipes whose name or an ingredient contains query
// (case-insensitive) and that carry every tag in tags.
func (s *RecipeService) Search(ctx context.Context, query string, tags []string) ([]*domain.Recipe, error) {
	recipes, err := s.GetAll(ctx)
	if err != nil {
		return nil, errors.Surface(err, "unable to search recipes")
	}
	return slices.DeleteFunc(recipes, func(r *domain.Recipe) bool {
		return !r.Matches(query) || !r.HasTags(tags)
	}), nil
}

// Tags returns the distinct tags across all recipes in first-seen order.
func (s *RecipeService) Tags(ctx context.Context) ([]string, error) {
	recipes, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, r := range recipes {
		for _, tag := range r.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

// Create stores a new recipe. The id is one more than the largest numeric id
// in the collection; isFavorite starts false.
func (s *RecipeService) Create(ctx context.Context, in domain.RecipeInput) (*domain.Recipe, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	existing, err := s.store.Recipes.All(ctx)
	if err != nil {
		return nil, fail(s.logger, err, "unable to save recipe")
	}

	recipe := in.Recipe()
	recipe.ID = nextRecipeID(existing)
	recipe.IsFavorite = false
	recipe.CreatedAt = s.now()

	if err := s.store.Recipes.Set(ctx, recipe); err != nil {
		return nil, fail(s.logger, err, "unable to save recipe", "recipe_id", recipe.ID)
	}

	s.logger.Info("recipe created", "recipe_id", recipe.ID, "name", recipe.Name)
	return recipe.Clone(), nil
}

// Update merges the set fields of u over the stored recipe.
func (s *RecipeService) Update(ctx context.Context, id string, u domain.RecipeUpdate) (*domain.Recipe, error) {
	recipe, err := s.load(ctx, id, "unable to update recipe")
	if err != nil {
		return nil, err
	}

	u.Apply(recipe)

	if err := s.store.Recipes.Set(ctx, recipe); err != nil {
		return nil, fail(s.logger, err, "unable to update recipe", "recipe_id", id)
	}
	return recipe.Clone(), nil
}

// Delete removes a recipe. Deleting a missing recipe is not an error.
// Meal slots that reference it resolve to no recipe from then on.
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if err := s.Init(ctx); err != nil {
		return err
	}

	if err := s.store.Recipes.Delete(ctx, id); err != nil {
		return fail(s.logger, err, "unable to delete recipe", "recipe_id", id)
	}

	s.logger.Info("recipe deleted", "recipe_id", id)
	return nil
}

// ToggleFavorite flips the favorite flag of a recipe.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id string) (*domain.Recipe, error) {
	recipe, err := s.load(ctx, id, "unable to update favorite status")
	if err != nil {
		return nil, err
	}

	recipe.IsFavorite = !recipe.IsFavorite

	if err := s.store.Recipes.Set(ctx, recipe); err != nil {
		return nil, fail(s.logger, err, "unable to update favorite status", "recipe_id", id)
	}
	return recipe.Clone(), nil
}

// load fetches a recipe that must exist.
func (s *RecipeService) load(ctx context.Context, id, msg string) (*domain.Recipe, error) {
	if err := s.Init(ctx); err != nil {
		return nil, err
	}

	recipe, err := s.store.Recipes.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.NotFoundf("recipe %s not found", id)
	}
	if err != nil {
		return nil, fail(s.logger, err, msg, "recipe_id", id)
	}
	return recipe, nil
}

// nextRecipeID returns one more than the largest numeric id. Ids that are
// not numbers count as zero.
func nextRecipeID(recipes []*domain.Recipe) string {
	maxID := 0
	for _, r := range recipes {
		if n, err := strconv.Atoi(r.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return strconv.Itoa(maxID + 1)
}
