package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weeklybite/weeklybite/internal/errors"
	"github.com/weeklybite/weeklybite/internal/seed"
	"github.com/weeklybite/weeklybite/internal/service"
	"github.com/weeklybite/weeklybite/internal/validation"
)

func newRecipesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Browse and edit the recipe collection",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all recipes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipes, err := invoke[*service.RecipeService](a).GetAll(cmd.Context())
			if err != nil {
				return err
			}
			return printRecipes(cmd.OutOrStdout(), recipes)
		},
	}

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, err := invoke[*service.RecipeService](a).GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if recipe == nil {
				return errors.NotFoundf("recipe %s not found", args[0])
			}
			return printRecipe(cmd.OutOrStdout(), recipe)
		},
	}

	var tags []string
	search := &cobra.Command{
		Use:   "search [query]",
		Short: "Find recipes by name or ingredient and tags",
		Long: `Find recipes whose name or any ingredient contains the query (case
insensitive) and that carry every given tag.`,
		Example: `  weeklybite recipes search chicken --tag dinner --tag quick`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			recipes, err := invoke[*service.RecipeService](a).Search(cmd.Context(), query, tags)
			if err != nil {
				return err
			}
			return printRecipes(cmd.OutOrStdout(), recipes)
		},
	}
	search.Flags().StringArrayVar(&tags, "tag", nil, "required tag (repeatable)")

	favorites := &cobra.Command{
		Use:   "favorites",
		Short: "List favorite recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			recipes, err := invoke[*service.RecipeService](a).GetFavorites(cmd.Context())
			if err != nil {
				return err
			}
			return printRecipes(cmd.OutOrStdout(), recipes)
		},
	}

	tagsCmd := &cobra.Command{
		Use:   "tags",
		Short: "List the tags in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			inUse, err := invoke[*service.RecipeService](a).Tags(cmd.Context())
			if err != nil {
				return err
			}
			for _, tag := range inUse {
				fmt.Fprintln(cmd.OutOrStdout(), tag)
			}
			return nil
		},
	}

	var addFile string
	add := &cobra.Command{
		Use:   "add --file recipe.yaml",
		Short: "Create a recipe from a YAML file",
		Long: fmt.Sprintf(`Create a recipe from a YAML file with the fields name, image, prepTime,
calories, protein, carbs, fat, servings, ingredients, instructions and tags.

Available tags: %v`, validation.Tags),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := seed.LoadRecipeInput(addFile)
			if err != nil {
				return errors.Wrap(err, errors.CodeValidation, "unable to read recipe file")
			}
			in, err = invoke[*validation.Validator](a).Recipe(in)
			if err != nil {
				return err
			}
			recipe, err := invoke[*service.RecipeService](a).Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			a.log().Info("recipe created", "id", recipe.ID, "name", recipe.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Created recipe %s: %s\n", recipe.ID, recipe.Name)
			return nil
		},
	}
	add.Flags().StringVarP(&addFile, "file", "f", "", "recipe YAML file")
	_ = add.MarkFlagRequired("file")

	var updateFile string
	update := &cobra.Command{
		Use:   "update <id> --file changes.yaml",
		Short: "Change fields of a recipe from a YAML file",
		Long:  "Fields absent from the file keep their current value. The id and creation time cannot change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := seed.LoadRecipeUpdate(updateFile)
			if err != nil {
				return errors.Wrap(err, errors.CodeValidation, "unable to read recipe file")
			}
			recipes := invoke[*service.RecipeService](a)
			current, err := recipes.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if current == nil {
				return errors.NotFoundf("recipe %s not found", args[0])
			}
			if err := invoke[*validation.Validator](a).RecipeUpdate(current, u); err != nil {
				return err
			}
			recipe, err := recipes.Update(cmd.Context(), args[0], u)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated recipe %s: %s\n", recipe.ID, recipe.Name)
			return nil
		},
	}
	update.Flags().StringVarP(&updateFile, "file", "f", "", "YAML file with the changed fields")
	_ = update.MarkFlagRequired("file")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe",
		Long:  "Delete a recipe. Meal plan slots that use it are kept and show up as missing.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := invoke[*service.RecipeService](a).Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted recipe %s\n", args[0])
			return nil
		},
	}

	favorite := &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite flag of a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recipe, err := invoke[*service.RecipeService](a).ToggleFavorite(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			state := "no longer a favorite"
			if recipe.IsFavorite {
				state = "now a favorite"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is %s\n", recipe.Name, state)
			return nil
		},
	}

	cmd.AddCommand(list, show, search, favorites, tagsCmd, add, update, del, favorite)
	return cmd
}
