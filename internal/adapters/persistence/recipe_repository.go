package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// GormRecipeRepository implements recipe.Repository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// Compile-time interface check
var _ recipe.Repository = (*GormRecipeRepository)(nil)

// NewGormRecipeRepository creates a new GORM recipe repository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// Save persists a recipe definition and its unlock flag (upsert)
func (r *GormRecipeRepository) Save(ctx context.Context, rcp *recipe.Recipe, unlocked bool) error {
	model, err := r.entityToModel(rcp, unlocked)
	if err != nil {
		return fmt.Errorf("failed to convert recipe to model: %w", err)
	}

	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save recipe: %w", result.Error)
	}
	return nil
}

// SetUnlocked persists an unlock state change for an existing recipe
func (r *GormRecipeRepository) SetUnlocked(ctx context.Context, recipeID string, unlocked bool) error {
	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ?", recipeID).
		Update("unlocked", unlocked)

	if result.Error != nil {
		return fmt.Errorf("failed to update unlock state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("recipe not found: %s", recipeID)
	}
	return nil
}

// Delete removes a recipe definition
func (r *GormRecipeRepository) Delete(ctx context.Context, recipeID string) error {
	result := r.db.WithContext(ctx).Where("id = ?", recipeID).Delete(&RecipeModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete recipe: %w", result.Error)
	}
	return nil
}

// FindAll retrieves every stored recipe with its unlock flag
func (r *GormRecipeRepository) FindAll(ctx context.Context) ([]recipe.StoredRecipe, error) {
	var models []RecipeModel
	if result := r.db.WithContext(ctx).Order("id").Find(&models); result.Error != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", result.Error)
	}

	stored := make([]recipe.StoredRecipe, 0, len(models))
	for _, model := range models {
		entity, err := r.modelToEntity(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert recipe %s: %w", model.ID, err)
		}
		stored = append(stored, recipe.StoredRecipe{Recipe: entity, Unlocked: model.Unlocked})
	}
	return stored, nil
}

func (r *GormRecipeRepository) entityToModel(rcp *recipe.Recipe, unlocked bool) (*RecipeModel, error) {
	reqs := rcp.Requirements()
	records := make([]requirementRecord, 0, len(reqs))
	for _, req := range reqs {
		records = append(records, requirementRecord{
			Category:           string(req.Category()),
			MinimumQuality:     int(req.MinimumQuality()),
			Quantity:           req.Quantity(),
			SpecificMaterialID: req.SpecificMaterialID(),
		})
	}

	reqJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal requirements: %w", err)
	}

	return &RecipeModel{
		ID:               rcp.ID(),
		Name:             rcp.Name(),
		Description:      rcp.Description(),
		Category:         string(rcp.Category()),
		RequirementsJSON: string(reqJSON),
		ResultItemID:     rcp.Result().ItemID,
		ResultName:       rcp.Result().Name,
		ResultQualityCap: int(rcp.Result().QualityCap),
		CraftingSeconds:  rcp.CraftingTime().Seconds(),
		Unlocked:         unlocked,
	}, nil
}

func (r *GormRecipeRepository) modelToEntity(model *RecipeModel) (*recipe.Recipe, error) {
	var records []requirementRecord
	if err := json.Unmarshal([]byte(model.RequirementsJSON), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requirements: %w", err)
	}

	reqs := make([]material.Requirement, 0, len(records))
	for _, rec := range records {
		req, err := material.NewSpecificRequirement(
			material.Category(rec.Category),
			material.Quality(rec.MinimumQuality),
			rec.Quantity,
			rec.SpecificMaterialID,
		)
		if err != nil {
			return nil, fmt.Errorf("invalid stored requirement: %w", err)
		}
		reqs = append(reqs, req)
	}

	return recipe.NewRecipe(
		model.ID,
		model.Name,
		model.Description,
		recipe.Category(model.Category),
		reqs,
		recipe.Result{
			ItemID:     model.ResultItemID,
			Name:       model.ResultName,
			QualityCap: material.Quality(model.ResultQualityCap),
		},
		time.Duration(model.CraftingSeconds*float64(time.Second)),
	)
}
