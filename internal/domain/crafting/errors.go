package crafting

import (
	"fmt"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// InsufficientMaterialsError indicates an allocation that does not cover a
// recipe requirement. Reported synchronously at order construction; no order
// is created.
type InsufficientMaterialsError struct {
	*shared.DomainError
	RecipeID    string
	Requirement material.Requirement
	Required    int
	Satisfied   int
}

func NewInsufficientMaterialsError(recipeID string, req material.Requirement, satisfied int) *InsufficientMaterialsError {
	return &InsufficientMaterialsError{
		DomainError: shared.NewDomainError(fmt.Sprintf(
			"insufficient materials for recipe %s: requirement %s needs %d, allocation satisfies %d",
			recipeID, req, req.Quantity(), satisfied)),
		RecipeID:    recipeID,
		Requirement: req,
		Required:    req.Quantity(),
		Satisfied:   satisfied,
	}
}

// InvalidTransitionError indicates an illegal order-lifecycle call. This is a
// programming error in the caller, not a recoverable crafting outcome, and
// must be surfaced rather than swallowed.
type InvalidTransitionError struct {
	*shared.DomainError
	OrderID   string
	Current   Status
	Attempted string
}

func NewInvalidTransitionError(orderID string, current Status, attempted string) *InvalidTransitionError {
	return &InvalidTransitionError{
		DomainError: shared.NewDomainError(fmt.Sprintf(
			"order %s: cannot %s from %s state", orderID, attempted, current)),
		OrderID:   orderID,
		Current:   current,
		Attempted: attempted,
	}
}

// OrderNotFoundError indicates an unknown order ID
type OrderNotFoundError struct {
	*shared.DomainError
	OrderID string
}

func NewOrderNotFoundError(orderID string) *OrderNotFoundError {
	return &OrderNotFoundError{
		DomainError: shared.NewDomainError(fmt.Sprintf("order not found: %s", orderID)),
		OrderID:     orderID,
	}
}
