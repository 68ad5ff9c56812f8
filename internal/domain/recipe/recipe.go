package recipe

import (
	"fmt"
	"strings"
	"time"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// Category classifies what a recipe produces
type Category string

const (
	CategoryWeapon     Category = "WEAPON"
	CategoryArmor      Category = "ARMOR"
	CategoryTool       Category = "TOOL"
	CategoryConsumable Category = "CONSUMABLE"
	CategoryTrinket    Category = "TRINKET"
)

// ParseCategory converts a category name to a Category. Case-insensitive.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryWeapon, CategoryArmor, CategoryTool, CategoryConsumable, CategoryTrinket:
		return c, nil
	}
	return "", fmt.Errorf("unknown recipe category: %q", s)
}

// Result describes the item a recipe produces. QualityCap is the highest tier
// the recipe can yield regardless of roll margin.
type Result struct {
	ItemID     string
	Name       string
	QualityCap material.Quality
}

// Recipe is an immutable crafting definition: identity, required materials,
// the produced item, and the nominal crafting duration. Recipes are created
// at catalog-load time and never mutated.
type Recipe struct {
	id           string
	name         string
	description  string
	category     Category
	requirements []material.Requirement
	result       Result
	craftingTime time.Duration
}

// NewRecipe creates a recipe definition
func NewRecipe(
	id string,
	name string,
	description string,
	category Category,
	requirements []material.Requirement,
	result Result,
	craftingTime time.Duration,
) (*Recipe, error) {
	if strings.TrimSpace(id) == "" {
		return nil, shared.NewValidationError("recipeId", "must not be blank")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("name", "must not be blank")
	}
	if category == "" {
		return nil, shared.NewValidationError("category", "must not be empty")
	}
	if craftingTime <= 0 {
		return nil, shared.NewValidationError("craftingTime", fmt.Sprintf("must be positive, got %s", craftingTime))
	}
	if result.ItemID == "" {
		return nil, shared.NewValidationError("result.itemId", "must not be blank")
	}

	// Copy to protect against external mutation
	reqs := make([]material.Requirement, len(requirements))
	copy(reqs, requirements)

	return &Recipe{
		id:           id,
		name:         name,
		description:  description,
		category:     category,
		requirements: reqs,
		result:       result,
		craftingTime: craftingTime,
	}, nil
}

// Getters

func (r *Recipe) ID() string          { return r.id }
func (r *Recipe) Name() string        { return r.name }
func (r *Recipe) Description() string { return r.description }
func (r *Recipe) Category() Category  { return r.category }
func (r *Recipe) Result() Result      { return r.result }

// CraftingTime returns the nominal duration of one crafting attempt
func (r *Recipe) CraftingTime() time.Duration { return r.craftingTime }

// Requirements returns a copy of the material requirements
func (r *Recipe) Requirements() []material.Requirement {
	reqs := make([]material.Requirement, len(r.requirements))
	copy(reqs, r.requirements)
	return reqs
}

// Base success rate tuning. The curve only needs to be monotonically
// non-increasing in difficulty and bounded to [0,99]; the coefficients are a
// balancing decision.
const (
	baseRateCeiling       = 95.0
	perRequirementPenalty = 5.0
	timePenaltyPerHalfMin = 1.0
	timePenaltyCap        = 20.0
	baseRateFloor         = 5.0
)

// BaseSuccessRate returns the starting success percentage for this recipe
// before material quality bonuses. Harder recipes (more requirements, longer
// crafting time) start lower.
func (r *Recipe) BaseSuccessRate() float64 {
	rate := baseRateCeiling

	if n := len(r.requirements); n > 1 {
		rate -= perRequirementPenalty * float64(n-1)
	}

	timePenalty := timePenaltyPerHalfMin * (r.craftingTime.Seconds() / 30.0)
	if timePenalty > timePenaltyCap {
		timePenalty = timePenaltyCap
	}
	rate -= timePenalty

	if rate < baseRateFloor {
		rate = baseRateFloor
	}
	if rate > 99 {
		rate = 99
	}
	return rate
}

// CanBeSatisfiedBy reports whether every requirement is fully satisfiable by
// the given bag of candidate materials, with each requirement counted
// independently. Used by both order validation and recipe discovery.
func (r *Recipe) CanBeSatisfiedBy(available []material.Instance) bool {
	for _, req := range r.requirements {
		if req.CountSatisfiedBy(available) < req.Quantity() {
			return false
		}
	}
	return true
}

// MatchesSearch reports whether the case-insensitive term occurs in the
// recipe's name or description. An empty term matches everything.
func (r *Recipe) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(r.name), term) ||
		strings.Contains(strings.ToLower(r.description), term)
}

// String provides human-readable representation
func (r *Recipe) String() string {
	return fmt.Sprintf("Recipe[%s, category=%s, requirements=%d, time=%s]",
		r.id, r.category, len(r.requirements), r.craftingTime)
}
