package material

import (
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// Requirement is an immutable predicate describing "quantity units of a
// category at or above a minimum quality", optionally pinned to one specific
// material instance.
type Requirement struct {
	category           Category
	minimumQuality     Quality
	quantity           int
	specificMaterialID string
}

// NewRequirement creates a requirement. Quantity must be positive.
func NewRequirement(category Category, minimumQuality Quality, quantity int) (Requirement, error) {
	return NewSpecificRequirement(category, minimumQuality, quantity, "")
}

// NewSpecificRequirement creates a requirement pinned to a specific material
// instance ID. An empty ID means any instance of the category may satisfy it.
func NewSpecificRequirement(category Category, minimumQuality Quality, quantity int, specificMaterialID string) (Requirement, error) {
	if category == "" {
		return Requirement{}, shared.NewValidationError("category", "must not be empty")
	}
	if !minimumQuality.IsValid() {
		return Requirement{}, shared.NewValidationError("minimumQuality", fmt.Sprintf("unknown tier %d", int(minimumQuality)))
	}
	if quantity <= 0 {
		return Requirement{}, shared.NewValidationError("quantity", fmt.Sprintf("must be > 0, got %d", quantity))
	}

	return Requirement{
		category:           category,
		minimumQuality:     minimumQuality,
		quantity:           quantity,
		specificMaterialID: specificMaterialID,
	}, nil
}

// MustRequirement creates a requirement and panics on invalid input.
// Intended for recipe literals in tests and seed data.
func MustRequirement(category Category, minimumQuality Quality, quantity int) Requirement {
	req, err := NewRequirement(category, minimumQuality, quantity)
	if err != nil {
		panic(err)
	}
	return req
}

// Getters

func (r Requirement) Category() Category         { return r.category }
func (r Requirement) MinimumQuality() Quality    { return r.minimumQuality }
func (r Requirement) Quantity() int              { return r.quantity }
func (r Requirement) SpecificMaterialID() string { return r.specificMaterialID }

// IsSatisfiedBy reports whether a single material instance counts toward this
// requirement: category matches, quality is at or above the minimum, and the
// instance ID matches when the requirement pins a specific material.
func (r Requirement) IsSatisfiedBy(inst Instance) bool {
	if r.specificMaterialID != "" && inst.ID != r.specificMaterialID {
		return false
	}
	return inst.Category == r.category && inst.Quality >= r.minimumQuality
}

// CountSatisfiedBy returns how many of the given instances satisfy this
// requirement. Each instance is counted independently.
func (r Requirement) CountSatisfiedBy(instances []Instance) int {
	count := 0
	for _, inst := range instances {
		if r.IsSatisfiedBy(inst) {
			count++
		}
	}
	return count
}

// String provides human-readable representation
func (r Requirement) String() string {
	if r.specificMaterialID != "" {
		return fmt.Sprintf("%dx %s (id=%s, quality>=%s)", r.quantity, r.category, r.specificMaterialID, r.minimumQuality)
	}
	return fmt.Sprintf("%dx %s (quality>=%s)", r.quantity, r.category, r.minimumQuality)
}
