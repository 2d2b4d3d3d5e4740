package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/nutrition"
	"github.com/weeklybite/weeklybite/internal/service"
)

func newPlanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "View and edit the meal plan of a week",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the meal plan of a week",
		Args:  cobra.NoArgs,
	}
	showWeek := a.addWeekFlag(show)
	show.RunE = func(cmd *cobra.Command, _ []string) error {
		weekStart, err := showWeek()
		if err != nil {
			return err
		}
		plans := invoke[*service.MealPlanService](a)
		plan, err := plans.GetWeekPlan(cmd.Context(), weekStart)
		if err != nil {
			return err
		}
		week, err := plans.ResolveWeek(cmd.Context(), weekStart)
		if err != nil {
			return err
		}
		return printWeek(cmd.OutOrStdout(), weekStart, plan, week)
	}

	add := &cobra.Command{
		Use:   "add <day> <mealType> <recipeId>",
		Short: "Put a recipe into a meal slot",
		Long: `Put a recipe into a meal slot, replacing what was there.
The day is a date (YYYY-MM-DD); mealType is breakfast, lunch, dinner or snacks.`,
		Example: "  weeklybite plan add 2024-01-07 breakfast 3",
		Args:    cobra.ExactArgs(3),
	}
	addWeek := a.addWeekFlag(add)
	add.RunE = func(cmd *cobra.Command, args []string) error {
		weekStart, err := weekOfDay(add, addWeek, args[0])
		if err != nil {
			return err
		}
		plan, err := invoke[*service.MealPlanService](a).
			AddMeal(cmd.Context(), weekStart, args[0], domain.MealType(args[1]), args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Planned recipe %s for %s %s (%d meals this week)\n",
			args[2], args[0], args[1], len(plan.Meals))
		return nil
	}

	remove := &cobra.Command{
		Use:   "remove <day> <mealType>",
		Short: "Clear a meal slot",
		Args:  cobra.ExactArgs(2),
	}
	removeWeek := a.addWeekFlag(remove)
	remove.RunE = func(cmd *cobra.Command, args []string) error {
		weekStart, err := weekOfDay(remove, removeWeek, args[0])
		if err != nil {
			return err
		}
		plan, err := invoke[*service.MealPlanService](a).
			RemoveMeal(cmd.Context(), weekStart, args[0], domain.MealType(args[1]))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s %s (%d meals this week)\n", args[0], args[1], len(plan.Meals))
		return nil
	}

	copyDay := &cobra.Command{
		Use:   "copy <fromDay> <toDay>",
		Short: "Copy every meal of one day onto another day of the same week",
		Long:  "The target day is overwritten: slots empty on the source day end up empty on the target day.",
		Args:  cobra.ExactArgs(2),
	}
	copyWeek := a.addWeekFlag(copyDay)
	copyDay.RunE = func(cmd *cobra.Command, args []string) error {
		weekStart, err := weekOfDay(copyDay, copyWeek, args[0])
		if err != nil {
			return err
		}
		if _, err := invoke[*service.MealPlanService](a).CopyDay(cmd.Context(), weekStart, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Copied meals of %s to %s\n", args[0], args[1])
		return nil
	}

	cmd.AddCommand(show, add, remove, copyDay)
	return cmd
}

// weekOfDay picks the week of day unless --week was given. A day that is not
// a date falls back to --week or the current week and is rejected downstream.
func weekOfDay(cmd *cobra.Command, week func() (time.Time, error), day string) (time.Time, error) {
	if !cmd.Flags().Changed("week") {
		if t, err := calendar.ParseDateKey(day); err == nil {
			return calendar.WeekStart(t), nil
		}
	}
	return week()
}

func printWeek(w io.Writer, weekStart time.Time, plan *domain.WeekPlan, week nutrition.Week) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Meal plan %s\n", calendar.DateRange(weekStart))

	for _, day := range week {
		t, err := calendar.ParseDateKey(day.Date)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "\n%s %s  %d kcal\n", calendar.DayName(t), day.Date, nutrition.DayCalories(day.Meals))
		if !day.HasMeals() {
			b.WriteString("  -\n")
			continue
		}
		for _, meal := range day.Meals {
			if meal.Recipe == nil {
				slot, _ := plan.Meal(day.Date, meal.MealType)
				fmt.Fprintf(&b, "  %-9s  (missing recipe %s)\n", meal.MealType, slot.RecipeID)
				continue
			}
			fmt.Fprintf(&b, "  %-9s  %s (#%s, %d kcal)\n", meal.MealType, meal.Recipe.Name, meal.Recipe.ID, meal.Recipe.Calories)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
