package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// RecipeResolver resolves recipe IDs to definitions when reconstructing
// orders. The recipe catalog satisfies this.
type RecipeResolver interface {
	GetRecipe(recipeID string) (*recipe.Recipe, bool)
}

// GormOrderRepository implements crafting.OrderRepository using GORM
type GormOrderRepository struct {
	db      *gorm.DB
	recipes RecipeResolver
	clock   shared.Clock
}

// Compile-time interface check
var _ crafting.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GORM order repository. The clock is
// used to recompute progress for resumed in-progress orders.
func NewGormOrderRepository(db *gorm.DB, recipes RecipeResolver, clock shared.Clock) *GormOrderRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormOrderRepository{db: db, recipes: recipes, clock: clock}
}

// Save persists an order snapshot (upsert)
func (r *GormOrderRepository) Save(ctx context.Context, order *crafting.Order) error {
	model, err := r.entityToModel(order)
	if err != nil {
		return fmt.Errorf("failed to convert order to model: %w", err)
	}

	if result := r.db.WithContext(ctx).Save(model); result.Error != nil {
		return fmt.Errorf("failed to save order: %w", result.Error)
	}
	return nil
}

// FindByID retrieves an order by ID
func (r *GormOrderRepository) FindByID(ctx context.Context, orderID string) (*crafting.Order, error) {
	var model OrderModel
	result := r.db.WithContext(ctx).Where("id = ?", orderID).First(&model)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, crafting.NewOrderNotFoundError(orderID)
		}
		return nil, fmt.Errorf("failed to find order: %w", result.Error)
	}

	return r.modelToEntity(&model)
}

// FindOpen retrieves all non-terminal orders in creation order, for resuming
// station state after a restart
func (r *GormOrderRepository) FindOpen(ctx context.Context) ([]*crafting.Order, error) {
	var models []OrderModel
	result := r.db.WithContext(ctx).
		Where("status IN ?", []string{string(crafting.StatusQueued), string(crafting.StatusInProgress)}).
		Order("created_at").
		Find(&models)

	if result.Error != nil {
		return nil, fmt.Errorf("failed to load open orders: %w", result.Error)
	}

	orders := make([]*crafting.Order, 0, len(models))
	for _, model := range models {
		entity, err := r.modelToEntity(&model)
		if err != nil {
			return nil, fmt.Errorf("failed to convert order %s: %w", model.ID, err)
		}
		orders = append(orders, entity)
	}
	return orders, nil
}

func (r *GormOrderRepository) entityToModel(order *crafting.Order) (*OrderModel, error) {
	data := order.ToData()

	records := make([]materialRecord, 0, len(data.Materials))
	for _, inst := range data.Materials {
		records = append(records, materialRecord{
			ID:       inst.ID,
			Category: string(inst.Category),
			Quality:  int(inst.Quality),
		})
	}

	matJSON, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal materials: %w", err)
	}

	return &OrderModel{
		ID:            data.ID,
		RecipeID:      data.RecipeID,
		MaterialsJSON: string(matJSON),
		Status:        data.Status,
		Progress:      data.Progress,
		CreatedAt:     data.CreatedAt,
		StartedAt:     data.StartedAt,
		CompletedAt:   data.CompletedAt,
		FailureReason: data.FailureReason,
		FinalQuality:  data.FinalQuality,
	}, nil
}

func (r *GormOrderRepository) modelToEntity(model *OrderModel) (*crafting.Order, error) {
	rcp, ok := r.recipes.GetRecipe(model.RecipeID)
	if !ok {
		return nil, recipe.NewNotFoundError(model.RecipeID)
	}

	var records []materialRecord
	if err := json.Unmarshal([]byte(model.MaterialsJSON), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal materials: %w", err)
	}

	materials := make([]material.Instance, 0, len(records))
	for _, rec := range records {
		materials = append(materials, material.Instance{
			ID:       rec.ID,
			Category: material.Category(rec.Category),
			Quality:  material.Quality(rec.Quality),
		})
	}

	return crafting.OrderFromData(&crafting.OrderData{
		ID:            model.ID,
		RecipeID:      model.RecipeID,
		Materials:     materials,
		Status:        model.Status,
		Progress:      model.Progress,
		CreatedAt:     model.CreatedAt,
		StartedAt:     model.StartedAt,
		CompletedAt:   model.CompletedAt,
		FailureReason: model.FailureReason,
		FinalQuality:  model.FinalQuality,
	}, rcp, r.clock)
}
