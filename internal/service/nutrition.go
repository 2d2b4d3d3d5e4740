package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/nutrition"
)

// TopRecipes is how many recipes a week summary ranks.
const TopRecipes = 3

// DaySummary is the nutrition of one day.
type DaySummary struct {
	Date     string           `json:"date"`
	Meals    int              `json:"meals"`
	Calories int              `json:"calories"`
	Macros   nutrition.Macros `json:"macros"`
}

// WeekSummary is the nutrition overview of one week.
type WeekSummary struct {
	WeekStart     string                  `json:"weekStart"`
	DateRange     string                  `json:"dateRange"`
	Days          []DaySummary            `json:"days"`
	Totals        nutrition.Totals        `json:"totals"`
	Averages      nutrition.Totals        `json:"averages"`
	DaysPlanned   int                     `json:"daysPlanned"`
	TotalMeals    int                     `json:"totalMeals"`
	UniqueRecipes int                     `json:"uniqueRecipes"`
	MostCooked    []nutrition.RecipeCount `json:"mostCooked"`
}

// HasMeals reports whether any meal of the week resolved to a recipe.
func (w *WeekSummary) HasMeals() bool {
	return w.TotalMeals > 0
}

// NutritionService summarizes the nutrition of planned weeks.
type NutritionService struct {
	plans  *MealPlanService
	logger *slog.Logger
}

// NewNutritionService creates a new nutrition service.
func NewNutritionService(plans *MealPlanService, logger *slog.Logger) *NutritionService {
	return &NutritionService{
		plans:  plans,
		logger: logger,
	}
}

// WeekSummary resolves the week starting at weekStart and computes its
// totals, daily averages and most cooked recipes. Meals whose recipe no
// longer exists are left out.
func (s *NutritionService) WeekSummary(ctx context.Context, weekStart time.Time) (*WeekSummary, error) {
	week, err := s.plans.ResolveWeek(ctx, weekStart)
	if err != nil {
		return nil, errors.Surface(err, "unable to load nutrition data")
	}
	week = week.Resolved()

	summary := &WeekSummary{
		WeekStart:     calendar.DateKey(weekStart),
		DateRange:     calendar.DateRange(weekStart),
		Days:          make([]DaySummary, 0, len(week)),
		Totals:        nutrition.WeekTotals(week),
		Averages:      nutrition.DailyAverages(week),
		DaysPlanned:   nutrition.ActiveDays(week),
		TotalMeals:    week.MealCount(),
		UniqueRecipes: week.UniqueRecipes(),
		MostCooked:    nutrition.MostCooked(week, TopRecipes),
	}
	for _, day := range week {
		summary.Days = append(summary.Days, DaySummary{
			Date:     day.Date,
			Meals:    len(day.Meals),
			Calories: nutrition.DayCalories(day.Meals),
			Macros:   nutrition.DayMacros(day.Meals),
		})
	}

	s.logger.Debug("nutrition summary computed",
		"week_start", summary.WeekStart,
		"days_planned", summary.DaysPlanned,
	)
	return summary, nil
}
