package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/nutrition"
	"github.com/weeklybite/weeklybite/internal/store"
)

// MealPlanService manages week plans.
//
// Mutations are read-modify-write cycles over the whole week record with no
// locking; two concurrent mutations of the same week may lose one of them.
type MealPlanService struct {
	store   *store.Store
	recipes *RecipeService
	logger  *slog.Logger
	now     func() time.Time
}

// NewMealPlanService creates a new meal plan service.
func NewMealPlanService(store *store.Store, recipes *RecipeService, logger *slog.Logger) *MealPlanService {
	return &MealPlanService{
		store:   store,
		recipes: recipes,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *MealPlanService) init(ctx context.Context) error {
	if err := s.store.Init(ctx); err != nil {
		return fail(s.logger, err, "unable to initialize meal plans")
	}
	return nil
}

// GetWeekPlan returns the plan of the week starting at weekStart. An absent
// week yields an empty plan that is not persisted.
func (s *MealPlanService) GetWeekPlan(ctx context.Context, weekStart time.Time) (*domain.WeekPlan, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}

	key := calendar.DateKey(weekStart)
	plan, err := s.store.MealPlans.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return &domain.WeekPlan{
			WeekStart: key,
			Meals:     domain.Meals{},
			CreatedAt: s.now(),
		}, nil
	}
	if err != nil {
		return nil, fail(s.logger, err, "unable to load meal plan", "week_start", key)
	}
	if plan.Meals == nil {
		plan.Meals = domain.Meals{}
	}
	return plan, nil
}

// SaveWeekPlan replaces the meals of a week. meals may be any shape accepted
// by NormalizeMeals; unsupported shapes are logged and stored as an empty week.
func (s *MealPlanService) SaveWeekPlan(ctx context.Context, weekStart time.Time, meals any) (*domain.WeekPlan, error) {
	if err := s.init(ctx); err != nil {
		return nil, err
	}

	key := calendar.DateKey(weekStart)
	res := NormalizeMeals(meals)
	s.logNormalization(key, res)

	for slot := range res.Meals {
		day, _, _ := domain.ParseMealKey(slot)
		if !calendar.InWeek(weekStart, day) {
			s.logger.Warn("dropping meal outside of week", "week_start", key, "slot", slot)
			delete(res.Meals, slot)
		}
	}

	return s.save(ctx, weekStart, res.Meals, "unable to save meal plan")
}

// AddMeal places recipeID in the given slot, replacing whatever was there.
func (s *MealPlanService) AddMeal(ctx context.Context, weekStart time.Time, day string, mealType domain.MealType, recipeID string) (*domain.WeekPlan, error) {
	if err := s.checkSlot(weekStart, day, mealType); err != nil {
		return nil, err
	}
	if recipeID == "" {
		return nil, errors.Validation("recipe id is required")
	}

	plan, err := s.GetWeekPlan(ctx, weekStart)
	if err != nil {
		return nil, errors.Surface(err, "unable to add meal")
	}

	plan.Meals[domain.MealKey(day, mealType)] = domain.MealAssignment{
		Day:      day,
		MealType: mealType,
		RecipeID: recipeID,
		AddedAt:  s.now(),
	}

	return s.save(ctx, weekStart, plan.Meals, "unable to add meal")
}

// RemoveMeal clears a slot. Clearing an empty slot is not an error.
func (s *MealPlanService) RemoveMeal(ctx context.Context, weekStart time.Time, day string, mealType domain.MealType) (*domain.WeekPlan, error) {
	plan, err := s.GetWeekPlan(ctx, weekStart)
	if err != nil {
		return nil, errors.Surface(err, "unable to remove meal")
	}

	delete(plan.Meals, domain.MealKey(day, mealType))

	return s.save(ctx, weekStart, plan.Meals, "unable to remove meal")
}

// CopyDay makes toDay mirror fromDay. Every meal type of toDay is cleared
// first, so slots that are empty on fromDay end up empty on toDay.
func (s *MealPlanService) CopyDay(ctx context.Context, weekStart time.Time, fromDay, toDay string) (*domain.WeekPlan, error) {
	for _, day := range []string{fromDay, toDay} {
		if err := s.checkSlot(weekStart, day, domain.MealBreakfast); err != nil {
			return nil, err
		}
	}

	plan, err := s.GetWeekPlan(ctx, weekStart)
	if err != nil {
		return nil, errors.Surface(err, "unable to copy meals")
	}

	source := plan.Meals.Clone()
	for _, mt := range domain.MealTypes {
		delete(plan.Meals, domain.MealKey(toDay, mt))
	}

	now := s.now()
	for _, mt := range domain.MealTypes {
		meal, ok := source[domain.MealKey(fromDay, mt)]
		if !ok {
			continue
		}
		meal.Day = toDay
		meal.AddedAt = now
		plan.Meals[domain.MealKey(toDay, mt)] = meal
	}

	return s.save(ctx, weekStart, plan.Meals, "unable to copy meals")
}

// ResolveWeek returns the meals of each day of the week in slot order, with
// recipes looked up. A meal whose recipe no longer exists has a nil Recipe.
func (s *MealPlanService) ResolveWeek(ctx context.Context, weekStart time.Time) (nutrition.Week, error) {
	plan, err := s.GetWeekPlan(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	cache := make(map[string]*domain.Recipe)
	week := make(nutrition.Week, 0, calendar.DaysPerWeek)
	for _, day := range calendar.WeekDayKeys(weekStart) {
		d := nutrition.Day{Date: day, Meals: []nutrition.Meal{}}
		for _, mt := range domain.MealTypes {
			meal, ok := plan.Meal(day, mt)
			if !ok {
				continue
			}
			recipe, seen := cache[meal.RecipeID]
			if !seen && meal.RecipeID != "" {
				recipe, err = s.recipes.GetByID(ctx, meal.RecipeID)
				if err != nil {
					return nil, err
				}
				cache[meal.RecipeID] = recipe
			}
			d.Meals = append(d.Meals, nutrition.Meal{MealType: mt, Recipe: recipe})
		}
		week = append(week, d)
	}
	return week, nil
}

func (s *MealPlanService) save(ctx context.Context, weekStart time.Time, meals domain.Meals, msg string) (*domain.WeekPlan, error) {
	key := calendar.DateKey(weekStart)
	now := s.now()

	createdAt := now
	existing, err := s.store.MealPlans.Get(ctx, key)
	switch {
	case err == nil:
		if !existing.CreatedAt.IsZero() {
			createdAt = existing.CreatedAt
		}
	case !errors.Is(err, store.ErrNotFound):
		return nil, fail(s.logger, err, msg, "week_start", key)
	}

	plan := &domain.WeekPlan{
		WeekStart: key,
		Meals:     meals.Clone(),
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := s.store.MealPlans.Set(ctx, plan); err != nil {
		return nil, fail(s.logger, err, msg, "week_start", key)
	}

	s.logger.Debug("meal plan saved", "week_start", key, "meals", len(plan.Meals))
	return plan.Clone(), nil
}

func (s *MealPlanService) checkSlot(weekStart time.Time, day string, mealType domain.MealType) error {
	if !mealType.Valid() {
		return errors.Validationf("unknown meal type %q", mealType)
	}
	if !calendar.InWeek(weekStart, day) {
		return errors.Validationf("day %s is not in the week of %s", day, calendar.DateKey(weekStart))
	}
	return nil
}

func (s *MealPlanService) logNormalization(key string, res MealsResult) {
	switch res.Outcome {
	case MealsMalformed:
		s.logger.Warn("expected meals mapping, storing an empty week",
			"week_start", key,
			"shape", res.Shape,
		)
	case MealsMaterialized:
		s.logger.Debug("materialized meals", "week_start", key, "meals", len(res.Meals))
	}
	for _, slot := range res.Dropped {
		s.logger.Warn("dropping meal with invalid slot key", "week_start", key, "slot", slot)
	}
}
