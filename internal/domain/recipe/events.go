package recipe

// UnlockedEvent is published when a recipe becomes available to craft
type UnlockedEvent struct {
	RecipeID string
	Name     string
	Category Category
	// Discovered is true when the unlock came from material-driven discovery
	// rather than an explicit unlock call
	Discovered bool
}

// LockedEvent is published when a recipe is locked again
type LockedEvent struct {
	RecipeID string
	Name     string
	Category Category
}
