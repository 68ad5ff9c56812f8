package recipe

import "context"

// EventPublisher broadcasts catalog lifecycle events. The catalog has no
// knowledge of subscriber identity or count.
type EventPublisher interface {
	PublishRecipeUnlocked(event UnlockedEvent)
	PublishRecipeLocked(event LockedEvent)
}

// StoredRecipe pairs a recipe definition with its unlock flag for persistence
type StoredRecipe struct {
	Recipe   *Recipe
	Unlocked bool
}

// Repository defines the persistence interface for the recipe catalog
type Repository interface {
	// Save persists a recipe definition and its unlock flag (upsert)
	Save(ctx context.Context, rcp *Recipe, unlocked bool) error

	// SetUnlocked persists an unlock state change for an existing recipe
	SetUnlocked(ctx context.Context, recipeID string, unlocked bool) error

	// Delete removes a recipe definition
	Delete(ctx context.Context, recipeID string) error

	// FindAll retrieves every stored recipe with its unlock flag
	FindAll(ctx context.Context) ([]StoredRecipe, error)
}

// noopPublisher is the fallback when no event publisher is wired
type noopPublisher struct{}

func (noopPublisher) PublishRecipeUnlocked(UnlockedEvent) {}
func (noopPublisher) PublishRecipeLocked(LockedEvent)     {}
