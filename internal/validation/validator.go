// Package validation checks recipe input before it reaches the recipe repository.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/weeklybite/weeklybite/internal/domain"
	domainerrors "github.com/weeklybite/weeklybite/internal/errors"
)

// Available diet and meal tags offered when editing a recipe.
var Tags = []string{
	"vegetarian", "vegan", "gluten-free", "dairy-free", "keto", "high-protein",
	"low-calorie", "quick", "mediterranean", "asian", "spicy", "breakfast",
	"lunch", "dinner", "snacks", "pescatarian",
}

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator that reports fields by their JSON names.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// Recipe trims the input, drops blank ingredient and instruction lines, and
// validates what is left. The cleaned input is returned either way.
func (v *Validator) Recipe(in domain.RecipeInput) (domain.RecipeInput, error) {
	in = in.Clean()
	return in, v.Validate(in)
}

// RecipeUpdate validates the fields set in a partial recipe by applying them
// to base and validating the result.
func (v *Validator) RecipeUpdate(base *domain.Recipe, u domain.RecipeUpdate) error {
	merged := base.Clone()
	u.Apply(merged)
	_, err := v.Recipe(domain.RecipeInput{
		Name:         merged.Name,
		Image:        merged.Image,
		PrepTime:     merged.PrepTime,
		Calories:     merged.Calories,
		Protein:      merged.Protein,
		Carbs:        merged.Carbs,
		Fat:          merged.Fat,
		Servings:     merged.Servings,
		Ingredients:  merged.Ingredients,
		Instructions: merged.Instructions,
		Tags:         merged.Tags,
	})
	return err
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = v.friendlyMessage(e)
	}

	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "min":
		if e.Kind() == reflect.Slice {
			return fmt.Sprintf("must have at least %s non-blank entries", e.Param())
		}
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "oneof":
		return "must be one of: " + e.Param()
	default:
		return "is invalid"
	}
}
