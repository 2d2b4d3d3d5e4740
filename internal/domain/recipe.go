package domain

import (
	"slices"
	"strings"
	"time"
)

// Recipe is a stored recipe. ID, CreatedAt and the initial IsFavorite value
// are assigned by the recipe repository.
type Recipe struct {
	ID           string    `json:"id" yaml:"id"`
	Name         string    `json:"name" yaml:"name"`
	Image        string    `json:"image" yaml:"image"`
	PrepTime     int       `json:"prepTime" yaml:"prepTime"` // minutes
	Calories     int       `json:"calories" yaml:"calories"`
	Protein      float64   `json:"protein" yaml:"protein"` // grams
	Carbs        float64   `json:"carbs" yaml:"carbs"`
	Fat          float64   `json:"fat" yaml:"fat"`
	Servings     int       `json:"servings" yaml:"servings"`
	Ingredients  []string  `json:"ingredients" yaml:"ingredients"`
	Instructions []string  `json:"instructions" yaml:"instructions"`
	Tags         []string  `json:"tags" yaml:"tags"`
	IsFavorite   bool      `json:"isFavorite" yaml:"isFavorite"`
	CreatedAt    time.Time `json:"createdAt" yaml:"createdAt"`
}

// Clone returns a deep copy of r.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = slices.Clone(r.Ingredients)
	c.Instructions = slices.Clone(r.Instructions)
	c.Tags = slices.Clone(r.Tags)
	return &c
}

// HasTags reports whether r carries every tag in tags.
func (r *Recipe) HasTags(tags []string) bool {
	for _, tag := range tags {
		if !slices.Contains(r.Tags, tag) {
			return false
		}
	}
	return true
}

// Matches reports whether query is a case-insensitive substring of the
// recipe name or of any ingredient. An empty query matches everything.
func (r *Recipe) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(r.Name), q) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), q) {
			return true
		}
	}
	return false
}

// RecipeInput carries the caller-supplied fields of a new recipe.
// The repository stores it as given; the validate tags are applied by the
// front end through the validation package before calling Create.
type RecipeInput struct {
	Name         string   `json:"name" yaml:"name" validate:"required"`
	Image        string   `json:"image" yaml:"image"`
	PrepTime     int      `json:"prepTime" yaml:"prepTime" validate:"gt=0"`
	Calories     int      `json:"calories" yaml:"calories" validate:"gt=0"`
	Protein      float64  `json:"protein" yaml:"protein" validate:"gte=0"`
	Carbs        float64  `json:"carbs" yaml:"carbs" validate:"gte=0"`
	Fat          float64  `json:"fat" yaml:"fat" validate:"gte=0"`
	Servings     int      `json:"servings" yaml:"servings" validate:"gt=0"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients" validate:"min=1,dive,required"`
	Instructions []string `json:"instructions" yaml:"instructions" validate:"min=1,dive,required"`
	Tags         []string `json:"tags" yaml:"tags"`
}

// Clean trims the name and drops blank ingredient and instruction lines.
func (in RecipeInput) Clean() RecipeInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Ingredients = nonBlank(in.Ingredients)
	in.Instructions = nonBlank(in.Instructions)
	return in
}

// Recipe builds an unsaved recipe from the input.
func (in RecipeInput) Recipe() *Recipe {
	return &Recipe{
		Name:         in.Name,
		Image:        in.Image,
		PrepTime:     in.PrepTime,
		Calories:     in.Calories,
		Protein:      in.Protein,
		Carbs:        in.Carbs,
		Fat:          in.Fat,
		Servings:     in.Servings,
		Ingredients:  slices.Clone(in.Ingredients),
		Instructions: slices.Clone(in.Instructions),
		Tags:         slices.Clone(in.Tags),
	}
}

// RecipeUpdate is a partial recipe. Nil fields are left untouched.
type RecipeUpdate struct {
	Name         *string   `json:"name,omitempty" yaml:"name,omitempty"`
	Image        *string   `json:"image,omitempty" yaml:"image,omitempty"`
	PrepTime     *int      `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
	Calories     *int      `json:"calories,omitempty" yaml:"calories,omitempty"`
	Protein      *float64  `json:"protein,omitempty" yaml:"protein,omitempty"`
	Carbs        *float64  `json:"carbs,omitempty" yaml:"carbs,omitempty"`
	Fat          *float64  `json:"fat,omitempty" yaml:"fat,omitempty"`
	Servings     *int      `json:"servings,omitempty" yaml:"servings,omitempty"`
	Ingredients  *[]string `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	Instructions *[]string `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Tags         *[]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	IsFavorite   *bool     `json:"isFavorite,omitempty" yaml:"isFavorite,omitempty"`
}

// Apply shallow-merges the set fields of u over r.
func (u RecipeUpdate) Apply(r *Recipe) {
	if u.Name != nil {
		r.Name = *u.Name
	}
	if u.Image != nil {
		r.Image = *u.Image
	}
	if u.PrepTime != nil {
		r.PrepTime = *u.PrepTime
	}
	if u.Calories != nil {
		r.Calories = *u.Calories
	}
	if u.Protein != nil {
		r.Protein = *u.Protein
	}
	if u.Carbs != nil {
		r.Carbs = *u.Carbs
	}
	if u.Fat != nil {
		r.Fat = *u.Fat
	}
	if u.Servings != nil {
		r.Servings = *u.Servings
	}
	if u.Ingredients != nil {
		r.Ingredients = slices.Clone(*u.Ingredients)
	}
	if u.Instructions != nil {
		r.Instructions = slices.Clone(*u.Instructions)
	}
	if u.Tags != nil {
		r.Tags = slices.Clone(*u.Tags)
	}
	if u.IsFavorite != nil {
		r.IsFavorite = *u.IsFavorite
	}
}

func nonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}
