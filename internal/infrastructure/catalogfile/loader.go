package catalogfile

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// requirementSpec is the file representation of a material requirement
type requirementSpec struct {
	Category       string `mapstructure:"category"`
	MinimumQuality string `mapstructure:"minimum_quality"`
	Quantity       int    `mapstructure:"quantity"`
	MaterialID     string `mapstructure:"material_id"`
}

// resultSpec is the file representation of a recipe output
type resultSpec struct {
	ItemID     string `mapstructure:"item_id"`
	Name       string `mapstructure:"name"`
	QualityCap string `mapstructure:"quality_cap"`
}

// recipeSpec is the file representation of a recipe definition
type recipeSpec struct {
	ID              string            `mapstructure:"id"`
	Name            string            `mapstructure:"name"`
	Description     string            `mapstructure:"description"`
	Category        string            `mapstructure:"category"`
	CraftingSeconds float64           `mapstructure:"crafting_seconds"`
	Unlocked        bool              `mapstructure:"unlocked"`
	Result          resultSpec        `mapstructure:"result"`
	Requirements    []requirementSpec `mapstructure:"requirements"`
}

// Load reads a YAML recipe catalog file and returns the recipe definitions
// with their initial unlock flags. The file has a top-level "recipes" list.
func Load(path string) ([]recipe.StoredRecipe, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	var specs []recipeSpec
	if err := v.UnmarshalKey("recipes", &specs); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file %s: %w", path, err)
	}

	loaded := make([]recipe.StoredRecipe, 0, len(specs))
	for i, spec := range specs {
		rcp, err := buildRecipe(spec)
		if err != nil {
			return nil, fmt.Errorf("recipe %d (%s): %w", i, spec.ID, err)
		}
		loaded = append(loaded, recipe.StoredRecipe{Recipe: rcp, Unlocked: spec.Unlocked})
	}

	return loaded, nil
}

func buildRecipe(spec recipeSpec) (*recipe.Recipe, error) {
	category, err := recipe.ParseCategory(spec.Category)
	if err != nil {
		return nil, err
	}

	qualityCap := material.QualityLegendary
	if spec.Result.QualityCap != "" {
		qualityCap, err = material.ParseQuality(spec.Result.QualityCap)
		if err != nil {
			return nil, fmt.Errorf("result quality cap: %w", err)
		}
	}

	requirements := make([]material.Requirement, 0, len(spec.Requirements))
	for j, reqSpec := range spec.Requirements {
		req, err := buildRequirement(reqSpec)
		if err != nil {
			return nil, fmt.Errorf("requirement %d: %w", j, err)
		}
		requirements = append(requirements, req)
	}

	resultName := spec.Result.Name
	if resultName == "" {
		resultName = spec.Name
	}

	return recipe.NewRecipe(
		spec.ID,
		spec.Name,
		spec.Description,
		category,
		requirements,
		recipe.Result{
			ItemID:     spec.Result.ItemID,
			Name:       resultName,
			QualityCap: qualityCap,
		},
		time.Duration(spec.CraftingSeconds*float64(time.Second)),
	)
}

func buildRequirement(spec requirementSpec) (material.Requirement, error) {
	category, err := material.ParseCategory(spec.Category)
	if err != nil {
		return material.Requirement{}, err
	}

	minQuality := material.QualityCommon
	if spec.MinimumQuality != "" {
		minQuality, err = material.ParseQuality(spec.MinimumQuality)
		if err != nil {
			return material.Requirement{}, err
		}
	}

	if spec.MaterialID != "" {
		return material.NewSpecificRequirement(category, minQuality, spec.Quantity, spec.MaterialID)
	}
	return material.NewRequirement(category, minQuality, spec.Quantity)
}
