package recipe

import (
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// Maximum edit distance for the fuzzy name fallback in Search
const fuzzyDistanceLimit = 2

// Catalog owns the full set of recipes, tracks which are unlocked, and
// maintains a category index updated transactionally with every mutation.
//
// Invariants:
// - categoryIndex[c] holds exactly the IDs of recipes whose category is c
// - unlocked is always a subset of the known recipe IDs
//
// All mutations are serialized through a reader-writer lock; read-only
// queries may run concurrently.
type Catalog struct {
	mu            sync.RWMutex
	recipes       map[string]*Recipe
	unlocked      map[string]struct{}
	categoryIndex map[Category]map[string]struct{}
	events        EventPublisher
}

// NewCatalog creates an empty catalog. A nil publisher disables event
// broadcasting.
func NewCatalog(events EventPublisher) *Catalog {
	if events == nil {
		events = noopPublisher{}
	}
	return &Catalog{
		recipes:       make(map[string]*Recipe),
		unlocked:      make(map[string]struct{}),
		categoryIndex: make(map[Category]map[string]struct{}),
		events:        events,
	}
}

// AddRecipe registers a recipe definition. An existing recipe with the same
// ID is overwritten (last-write-wins) and the category index is updated,
// removing the stale entry if the category changed.
func (c *Catalog) AddRecipe(rcp *Recipe, startUnlocked bool) error {
	if rcp == nil {
		return shared.NewValidationError("recipe", "must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.recipes[rcp.ID()]; ok && existing.Category() != rcp.Category() {
		c.removeFromIndex(existing)
	}

	c.recipes[rcp.ID()] = rcp
	c.addToIndex(rcp)

	if startUnlocked {
		c.unlocked[rcp.ID()] = struct{}{}
	}
	return nil
}

// RemoveRecipe deletes a recipe from the catalog, its unlock state, and the
// category index. Returns false for a blank or unknown ID.
func (c *Catalog) RemoveRecipe(recipeID string) bool {
	if strings.TrimSpace(recipeID) == "" {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rcp, ok := c.recipes[recipeID]
	if !ok {
		return false
	}

	delete(c.recipes, recipeID)
	delete(c.unlocked, recipeID)
	c.removeFromIndex(rcp)
	return true
}

// UnlockRecipe marks a recipe as craftable. Returns false for a blank or
// unknown ID, or when the recipe is already unlocked (idempotent no-op).
// A successful unlock publishes a RecipeUnlocked event.
func (c *Catalog) UnlockRecipe(recipeID string) bool {
	rcp, changed := c.setUnlocked(recipeID, true)
	if changed {
		c.events.PublishRecipeUnlocked(UnlockedEvent{
			RecipeID: rcp.ID(),
			Name:     rcp.Name(),
			Category: rcp.Category(),
		})
	}
	return changed
}

// LockRecipe marks a recipe as locked again. Returns false for a blank or
// unknown ID, or when the recipe is already locked. A successful lock
// publishes a RecipeLocked event.
func (c *Catalog) LockRecipe(recipeID string) bool {
	rcp, changed := c.setUnlocked(recipeID, false)
	if changed {
		c.events.PublishRecipeLocked(LockedEvent{
			RecipeID: rcp.ID(),
			Name:     rcp.Name(),
			Category: rcp.Category(),
		})
	}
	return changed
}

func (c *Catalog) setUnlocked(recipeID string, unlocked bool) (*Recipe, bool) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rcp, ok := c.recipes[recipeID]
	if !ok {
		return nil, false
	}

	_, isUnlocked := c.unlocked[recipeID]
	if isUnlocked == unlocked {
		return rcp, false
	}

	if unlocked {
		c.unlocked[recipeID] = struct{}{}
	} else {
		delete(c.unlocked, recipeID)
	}
	return rcp, true
}

// GetRecipe looks up a recipe by ID. Blank or unknown IDs yield (nil, false).
func (c *Catalog) GetRecipe(recipeID string) (*Recipe, bool) {
	if strings.TrimSpace(recipeID) == "" {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	rcp, ok := c.recipes[recipeID]
	return rcp, ok
}

// IsRecipeUnlocked reports whether the recipe exists and is unlocked
func (c *Catalog) IsRecipeUnlocked(recipeID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, ok := c.unlocked[recipeID]
	return ok
}

// UnlockedByCategory returns all unlocked recipes in a category, sorted by
// name for stable output.
func (c *Catalog) UnlockedByCategory(category Category) []*Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []*Recipe
	for id := range c.categoryIndex[category] {
		if _, ok := c.unlocked[id]; ok {
			result = append(result, c.recipes[id])
		}
	}
	sortByName(result)
	return result
}

// Search finds recipes whose name or description contains the term
// (case-insensitive). Near-miss terms within a small edit distance of a
// recipe name also match. An empty term matches all. Results are restricted
// to unlocked recipes unless includeLocked is true, then optionally filtered
// by category (empty category means no filter). Sorted by name.
func (c *Catalog) Search(term string, includeLocked bool, category Category) []*Recipe {
	term = strings.TrimSpace(term)

	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []*Recipe
	for id, rcp := range c.recipes {
		if !includeLocked {
			if _, ok := c.unlocked[id]; !ok {
				continue
			}
		}
		if category != "" && rcp.Category() != category {
			continue
		}
		if rcp.MatchesSearch(term) || fuzzyNameMatch(term, rcp.Name()) {
			result = append(result, rcp)
		}
	}
	sortByName(result)
	return result
}

// DiscoverRecipes unlocks every locked recipe whose requirements are fully
// satisfiable by the given bag of materials and returns the newly unlocked
// recipes. A nil bag yields an empty result. Each discovery publishes a
// RecipeUnlocked event.
func (c *Catalog) DiscoverRecipes(available []material.Instance) []*Recipe {
	if len(available) == 0 {
		return nil
	}

	c.mu.Lock()
	var discovered []*Recipe
	for id, rcp := range c.recipes {
		if _, ok := c.unlocked[id]; ok {
			continue
		}
		if rcp.CanBeSatisfiedBy(available) {
			c.unlocked[id] = struct{}{}
			discovered = append(discovered, rcp)
		}
	}
	c.mu.Unlock()

	sortByName(discovered)
	for _, rcp := range discovered {
		c.events.PublishRecipeUnlocked(UnlockedEvent{
			RecipeID:   rcp.ID(),
			Name:       rcp.Name(),
			Category:   rcp.Category(),
			Discovered: true,
		})
	}
	return discovered
}

// Recipes returns a snapshot of every recipe in the catalog, sorted by name
func (c *Catalog) Recipes() []*Recipe {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*Recipe, 0, len(c.recipes))
	for _, rcp := range c.recipes {
		result = append(result, rcp)
	}
	sortByName(result)
	return result
}

// UnlockedRecipeIDs returns the IDs of all unlocked recipes, sorted
func (c *Catalog) UnlockedRecipeIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	ids := make([]string, 0, len(c.unlocked))
	for id := range c.unlocked {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of known recipes
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}

// Index maintenance. Callers must hold the write lock.

func (c *Catalog) addToIndex(rcp *Recipe) {
	bucket, ok := c.categoryIndex[rcp.Category()]
	if !ok {
		bucket = make(map[string]struct{})
		c.categoryIndex[rcp.Category()] = bucket
	}
	bucket[rcp.ID()] = struct{}{}
}

func (c *Catalog) removeFromIndex(rcp *Recipe) {
	bucket, ok := c.categoryIndex[rcp.Category()]
	if !ok {
		return
	}
	delete(bucket, rcp.ID())
	if len(bucket) == 0 {
		delete(c.categoryIndex, rcp.Category())
	}
}

func fuzzyNameMatch(term, name string) bool {
	if term == "" {
		return false
	}
	dist := levenshtein.ComputeDistance(strings.ToLower(term), strings.ToLower(name))
	return dist <= fuzzyDistanceLimit
}

func sortByName(recipes []*Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		if recipes[i].Name() == recipes[j].Name() {
			return recipes[i].ID() < recipes[j].ID()
		}
		return recipes[i].Name() < recipes[j].Name()
	})
}
