// Package seed provides the default recipe dataset loaded on first run.
package seed

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/weeklybite/weeklybite/internal/domain"
)

//go:embed recipes.yaml
var defaultRecipes []byte

// DefaultRecipes decodes the embedded recipe dataset.
// Each call returns fresh values.
func DefaultRecipes() ([]*domain.Recipe, error) {
	return Decode(bytes.NewReader(defaultRecipes))
}

// Decode reads a YAML list of recipes.
func Decode(r io.Reader) ([]*domain.Recipe, error) {
	var recipes []*domain.Recipe
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&recipes); err != nil {
		if errors.Is(err, io.EOF) {
			return []*domain.Recipe{}, nil
		}
		return nil, fmt.Errorf("decode recipes: %w", err)
	}
	for i, r := range recipes {
		if r == nil || r.ID == "" {
			return nil, fmt.Errorf("recipe %d has no id", i)
		}
	}
	return recipes, nil
}

// LoadRecipeInput reads a single recipe input document from a YAML file.
func LoadRecipeInput(path string) (domain.RecipeInput, error) {
	var in domain.RecipeInput
	data, err := os.ReadFile(path) //#nosec G304 -- path is supplied by the CLI user
	if err != nil {
		return in, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

// LoadRecipeUpdate reads a partial recipe from a YAML file. Keys absent from
// the file stay nil.
func LoadRecipeUpdate(path string) (domain.RecipeUpdate, error) {
	var u domain.RecipeUpdate
	data, err := os.ReadFile(path) //#nosec G304 -- path is supplied by the CLI user
	if err != nil {
		return u, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &u); err != nil {
		return u, fmt.Errorf("parse %s: %w", path, err)
	}
	return u, nil
}
