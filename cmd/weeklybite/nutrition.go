package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weeklybite/weeklybite/internal/calendar"
	"github.com/weeklybite/weeklybite/internal/service"
)

func newNutritionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nutrition",
		Short: "Summarize the nutrition of a week",
		Long: `Summarize calories and macros of a week. Daily averages count only the
days with planned meals. Meals whose recipe was deleted are left out.`,
		Args: cobra.NoArgs,
	}
	week := a.addWeekFlag(cmd)
	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		weekStart, err := week()
		if err != nil {
			return err
		}
		summary, err := invoke[*service.NutritionService](a).WeekSummary(cmd.Context(), weekStart)
		if err != nil {
			return err
		}
		return printSummary(cmd.OutOrStdout(), summary)
	}
	return cmd
}

func printSummary(w io.Writer, s *service.WeekSummary) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Nutrition %s\n", s.DateRange)

	if !s.HasMeals() {
		b.WriteString("\nNo meals planned this week.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "\nDaily average (%d planned days)\n", s.DaysPlanned)
	fmt.Fprintf(&b, "  Calories  %.0f kcal\n", s.Averages.Calories)
	fmt.Fprintf(&b, "  Protein   %.0f g\n", s.Averages.Protein)
	fmt.Fprintf(&b, "  Carbs     %.0f g\n", s.Averages.Carbs)
	fmt.Fprintf(&b, "  Fat       %.0f g\n", s.Averages.Fat)

	b.WriteString("\nDays\n")
	for _, day := range s.Days {
		name := day.Date
		if t, err := calendar.ParseDateKey(day.Date); err == nil {
			name = t.Format("Mon 2006-01-02")
		}
		fmt.Fprintf(&b, "  %s  %d meals  %d kcal\n", name, day.Meals, day.Calories)
	}

	fmt.Fprintf(&b, "\nWeek total: %.0f kcal, %d meals, %d unique recipes\n", s.Totals.Calories, s.TotalMeals, s.UniqueRecipes)

	if len(s.MostCooked) > 0 {
		b.WriteString("\nMost cooked\n")
		for i, rc := range s.MostCooked {
			fmt.Fprintf(&b, "  %d. %s (%dx)\n", i+1, rc.Recipe.Name, rc.Count)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
