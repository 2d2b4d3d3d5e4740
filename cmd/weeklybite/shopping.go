package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/service"
)

func newShoppingCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Generate and tick off the shopping list of a week",
	}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Rebuild the list from the week's meal plan",
		Long: `Rebuild the generated items from the ingredients of every recipe planned
for the week. Custom items are kept; check marks on generated items are not.`,
		Args: cobra.NoArgs,
	}
	generateWeek := a.addWeekFlag(generate)
	generate.RunE = func(cmd *cobra.Command, _ []string) error {
		weekStart, err := generateWeek()
		if err != nil {
			return err
		}
		plan, err := invoke[*service.MealPlanService](a).GetWeekPlan(cmd.Context(), weekStart)
		if err != nil {
			return err
		}
		list, err := invoke[*service.ShoppingListService](a).GenerateFromMealPlan(cmd.Context(), weekStart, plan.Meals)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d items from %d planned meals\n", len(list.Items), len(plan.Meals))
		return nil
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the list with item ids",
		Args:  cobra.NoArgs,
	}
	showWeek := a.addWeekFlag(show)
	show.RunE = func(cmd *cobra.Command, _ []string) error {
		weekStart, err := showWeek()
		if err != nil {
			return err
		}
		list, err := invoke[*service.ShoppingListService](a).GetWeekShoppingList(cmd.Context(), weekStart)
		if err != nil {
			return err
		}
		return printShoppingList(cmd.OutOrStdout(), list)
	}

	text := &cobra.Command{
		Use:   "text",
		Short: "Print the list as shareable plain text",
		Args:  cobra.NoArgs,
	}
	textWeek := a.addWeekFlag(text)
	text.RunE = func(cmd *cobra.Command, _ []string) error {
		weekStart, err := textWeek()
		if err != nil {
			return err
		}
		out, err := invoke[*service.ShoppingListService](a).GetShoppingListText(cmd.Context(), weekStart)
		if err != nil {
			return err
		}
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}

	var uncheck bool
	check := &cobra.Command{
		Use:   "check <itemId>",
		Short: "Tick off a generated item",
		Args:  cobra.ExactArgs(1),
	}
	checkWeek := a.addWeekFlag(check)
	check.Flags().BoolVar(&uncheck, "uncheck", false, "clear the check mark instead")
	check.RunE = func(cmd *cobra.Command, args []string) error {
		weekStart, err := checkWeek()
		if err != nil {
			return err
		}
		checked := !uncheck
		_, err = invoke[*service.ShoppingListService](a).
			UpdateItem(cmd.Context(), weekStart, args[0], domain.ShoppingItemUpdate{IsChecked: &checked})
		if err != nil {
			return err
		}
		verb := "Checked"
		if uncheck {
			verb = "Unchecked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s item %s\n", verb, args[0])
		return nil
	}

	var category string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a custom item that survives regeneration",
		Args:  cobra.ExactArgs(1),
	}
	addWeek := a.addWeekFlag(add)
	add.Flags().StringVar(&category, "category", string(domain.CategoryOther), "store section of the item")
	add.RunE = func(cmd *cobra.Command, args []string) error {
		weekStart, err := addWeek()
		if err != nil {
			return err
		}
		list, err := invoke[*service.ShoppingListService](a).
			AddCustomItem(cmd.Context(), weekStart, args[0], domain.Category(category))
		if err != nil {
			return err
		}
		item := list.CustomItems[len(list.CustomItems)-1]
		fmt.Fprintf(cmd.OutOrStdout(), "Added item %s: %s (%s)\n", item.ID, item.Name, item.Category)
		return nil
	}

	remove := &cobra.Command{
		Use:   "remove <itemId>",
		Short: "Remove a custom item",
		Args:  cobra.ExactArgs(1),
	}
	removeWeek := a.addWeekFlag(remove)
	remove.RunE = func(cmd *cobra.Command, args []string) error {
		weekStart, err := removeWeek()
		if err != nil {
			return err
		}
		if _, err := invoke[*service.ShoppingListService](a).RemoveCustomItem(cmd.Context(), weekStart, args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed item %s\n", args[0])
		return nil
	}

	cmd.AddCommand(generate, show, text, check, add, remove)
	return cmd
}

func printShoppingList(w io.Writer, list *domain.ShoppingList) error {
	items := list.AllItems()
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "The shopping list is empty.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\t \tITEM\tQTY\tCATEGORY\t")
	for _, item := range items {
		mark := service.GlyphUnchecked
		if item.IsChecked {
			mark = service.GlyphChecked
		}
		name := item.Name
		if item.IsCustom {
			name += " *"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", item.ID, mark, name, item.Quantity, item.Category)
	}
	return tw.Flush()
}
