package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/weeklybite/weeklybite/internal/domain"
	"github.com/weeklybite/weeklybite/internal/errors"
)

// validationDetails renders the per-field messages of a validation error.
func validationDetails(err error) string {
	var domainErr *errors.Error
	if !errors.As(err, &domainErr) {
		return ""
	}
	fields, ok := domainErr.Details.(map[string]string)
	if !ok || len(fields) == 0 {
		return ""
	}

	var b strings.Builder
	for _, field := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(&b, "  %s: %s\n", field, fields[field])
	}
	return b.String()
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func printRecipes(w io.Writer, recipes []*domain.Recipe) error {
	if len(recipes) == 0 {
		_, err := fmt.Fprintln(w, "No recipes found.")
		return err
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPREP\tKCAL\tTAGS\t")
	for _, r := range recipes {
		name := r.Name
		if r.IsFavorite {
			name += " ★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%dm\t%d\t%s\t\n", r.ID, name, r.PrepTime, r.Calories, strings.Join(r.Tags, ", "))
	}
	return tw.Flush()
}

func printRecipe(w io.Writer, r *domain.Recipe) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (#%s)", r.Name, r.ID)
	if r.IsFavorite {
		b.WriteString(" ★")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Prep %d min · %d servings · %d kcal\n", r.PrepTime, r.Servings, r.Calories)
	fmt.Fprintf(&b, "Protein %gg · Carbs %gg · Fat %gg\n", r.Protein, r.Carbs, r.Fat)
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	if r.Image != "" {
		fmt.Fprintf(&b, "Image: %s\n", r.Image)
	}

	b.WriteString("\nIngredients:\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "  - %s\n", ing)
	}
	b.WriteString("\nInstructions:\n")
	for i, step := range r.Instructions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
