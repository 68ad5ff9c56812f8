package crafting

import (
	"fmt"
	"time"

	"github.com/KungRaseri/forgecraft/internal/domain/material"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
	"github.com/KungRaseri/forgecraft/internal/domain/shared"
)

// Status represents the lifecycle state of a crafting order
type Status string

const (
	StatusQueued     Status = "QUEUED"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusCancelled  Status = "CANCELLED"
)

// IsTerminal returns true for the immutable end states
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// Percentage points of success-rate bonus per quality tier above a
// requirement's minimum
const qualityBonusPerTier = 2.0

const defaultFailureReason = "crafting attempt failed"

// neverCompletes is the sentinel estimated-completion time for orders that
// have not started
var neverCompletes = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Order is one stateful attempt to execute a recipe against a committed
// allocation of materials. It owns its own status/progress state machine and
// success-rate computation, and is owned exclusively by the station that
// created it.
//
// Lifecycle: QUEUED → IN_PROGRESS → COMPLETED/FAILED/CANCELLED, with
// CANCELLED also reachable directly from QUEUED. Terminal states are
// immutable.
type Order struct {
	id            string
	recipe        *recipe.Recipe
	materials     []material.Instance
	status        Status
	progress      float64
	createdAt     time.Time
	startedAt     *time.Time
	completedAt   *time.Time
	failureReason string
	finalQuality  *material.Quality
	clock         shared.Clock
}

// NewOrder creates a queued order after validating that the allocation
// covers every recipe requirement. Each requirement is checked independently
// against the full allocation; a shortfall fails with
// *InsufficientMaterialsError and no order is returned.
func NewOrder(id string, rcp *recipe.Recipe, allocated []material.Instance, clock shared.Clock) (*Order, error) {
	if id == "" {
		return nil, shared.NewValidationError("orderId", "must not be blank")
	}
	if rcp == nil {
		return nil, shared.NewValidationError("recipe", "must not be nil")
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	for _, req := range rcp.Requirements() {
		if satisfied := req.CountSatisfiedBy(allocated); satisfied < req.Quantity() {
			return nil, NewInsufficientMaterialsError(rcp.ID(), req, satisfied)
		}
	}

	materials := make([]material.Instance, len(allocated))
	copy(materials, allocated)

	return &Order{
		id:        id,
		recipe:    rcp,
		materials: materials,
		status:    StatusQueued,
		createdAt: clock.Now(),
		clock:     clock,
	}, nil
}

// Getters

func (o *Order) ID() string              { return o.id }
func (o *Order) Recipe() *recipe.Recipe  { return o.recipe }
func (o *Order) Status() Status          { return o.status }
func (o *Order) Progress() float64       { return o.progress }
func (o *Order) CreatedAt() time.Time    { return o.createdAt }
func (o *Order) StartedAt() *time.Time   { return o.startedAt }
func (o *Order) CompletedAt() *time.Time { return o.completedAt }
func (o *Order) FailureReason() string   { return o.failureReason }

// FinalQuality returns the produced item's quality tier, nil unless the
// order completed successfully
func (o *Order) FinalQuality() *material.Quality { return o.finalQuality }

// Materials returns a copy of the allocated material instances
func (o *Order) Materials() []material.Instance {
	result := make([]material.Instance, len(o.materials))
	copy(result, o.materials)
	return result
}

// State transitions

// Start transitions the order from QUEUED to IN_PROGRESS and records the
// start time. Legal exactly once.
func (o *Order) Start() error {
	if o.status != StatusQueued {
		return NewInvalidTransitionError(o.id, o.status, "start")
	}

	now := o.clock.Now()
	o.status = StatusInProgress
	o.startedAt = &now
	return nil
}

// UpdateProgress stores a new progress value clamped to [0,1]. Progress never
// decreases; a lower value clamps to the current one. Only legal while
// IN_PROGRESS.
func (o *Order) UpdateProgress(p float64) error {
	if o.status != StatusInProgress {
		return NewInvalidTransitionError(o.id, o.status, "update progress")
	}

	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if p > o.progress {
		o.progress = p
	}
	return nil
}

// Complete transitions the order from IN_PROGRESS to COMPLETED, pinning
// progress to 1.0 and recording the produced quality tier.
func (o *Order) Complete(finalQuality material.Quality) error {
	if o.status != StatusInProgress {
		return NewInvalidTransitionError(o.id, o.status, "complete")
	}

	now := o.clock.Now()
	o.status = StatusCompleted
	o.progress = 1.0
	o.completedAt = &now
	q := material.ClampQuality(finalQuality)
	o.finalQuality = &q
	return nil
}

// Fail transitions the order from IN_PROGRESS to FAILED. An empty reason is
// replaced with a generic message.
func (o *Order) Fail(reason string) error {
	if o.status != StatusInProgress {
		return NewInvalidTransitionError(o.id, o.status, "fail")
	}

	if reason == "" {
		reason = defaultFailureReason
	}

	now := o.clock.Now()
	o.status = StatusFailed
	o.completedAt = &now
	o.failureReason = reason
	return nil
}

// Cancel transitions the order from any non-terminal state to CANCELLED.
// Cancelling a terminal order is rejected.
func (o *Order) Cancel() error {
	if o.status.IsTerminal() {
		return NewInvalidTransitionError(o.id, o.status, "cancel")
	}

	now := o.clock.Now()
	o.status = StatusCancelled
	o.completedAt = &now
	return nil
}

// Derived values

// SuccessRate returns the current success percentage: the recipe's base rate
// plus the average quality bonus across requirements that have at least one
// matching allocated material. Requirements with no match contribute to
// neither numerator nor denominator. Capped at 99.
func (o *Order) SuccessRate() float64 {
	rate := o.recipe.BaseSuccessRate() + o.qualityBonus()
	if rate > 99 {
		rate = 99
	}
	if rate < 0 {
		rate = 0
	}
	return rate
}

// qualityBonus averages, over requirements with a matching allocation, the
// mean quality surplus of the matching materials times the per-tier bonus.
func (o *Order) qualityBonus() float64 {
	allocated := o.Materials()

	var total float64
	matched := 0
	for _, req := range o.recipe.Requirements() {
		surplus, count := 0, 0
		for _, inst := range allocated {
			if req.IsSatisfiedBy(inst) {
				surplus += int(inst.Quality) - int(req.MinimumQuality())
				count++
			}
		}
		if count == 0 {
			continue
		}
		total += float64(surplus) / float64(count) * qualityBonusPerTier
		matched++
	}

	if matched == 0 {
		return 0
	}
	return total / float64(matched)
}

// RemainingTime returns the time left at the nominal crafting speed, or nil
// unless the order is IN_PROGRESS.
func (o *Order) RemainingTime() *time.Duration {
	if o.status != StatusInProgress {
		return nil
	}
	remaining := time.Duration((1 - o.progress) * float64(o.recipe.CraftingTime()))
	return &remaining
}

// EstimatedCompletion returns when the order would finish at nominal speed,
// or a far-future sentinel if it has not started.
func (o *Order) EstimatedCompletion() time.Time {
	if o.startedAt == nil {
		return neverCompletes
	}
	return o.startedAt.Add(o.recipe.CraftingTime())
}

// String provides human-readable representation
func (o *Order) String() string {
	return fmt.Sprintf("Order[%s, recipe=%s, status=%s, progress=%.2f]",
		o.id, o.recipe.ID(), o.status, o.progress)
}

// OrderData is the DTO for persisting crafting orders
type OrderData struct {
	ID            string
	RecipeID      string
	Materials     []material.Instance
	Status        string
	Progress      float64
	CreatedAt     time.Time
	StartedAt     *time.Time
	CompletedAt   *time.Time
	FailureReason string
	FinalQuality  *int
}

// ToData converts the order to a DTO for persistence
func (o *Order) ToData() *OrderData {
	var finalQuality *int
	if o.finalQuality != nil {
		q := int(*o.finalQuality)
		finalQuality = &q
	}

	return &OrderData{
		ID:            o.id,
		RecipeID:      o.recipe.ID(),
		Materials:     o.Materials(),
		Status:        string(o.status),
		Progress:      o.progress,
		CreatedAt:     o.createdAt,
		StartedAt:     o.startedAt,
		CompletedAt:   o.completedAt,
		FailureReason: o.failureReason,
		FinalQuality:  finalQuality,
	}
}

// OrderFromData reconstructs an order from persisted state. An IN_PROGRESS
// order has its progress recomputed from elapsed wall time since startedAt,
// clamped to [0,1) so the next station tick resolves it.
func OrderFromData(data *OrderData, rcp *recipe.Recipe, clock shared.Clock) (*Order, error) {
	if data == nil {
		return nil, shared.NewValidationError("data", "must not be nil")
	}
	if rcp == nil {
		return nil, shared.NewValidationError("recipe", "must not be nil")
	}
	if rcp.ID() != data.RecipeID {
		return nil, shared.NewValidationError("recipe",
			fmt.Sprintf("mismatch: order references %s, got %s", data.RecipeID, rcp.ID()))
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	materials := make([]material.Instance, len(data.Materials))
	copy(materials, data.Materials)

	var finalQuality *material.Quality
	if data.FinalQuality != nil {
		q := material.Quality(*data.FinalQuality)
		finalQuality = &q
	}

	o := &Order{
		id:            data.ID,
		recipe:        rcp,
		materials:     materials,
		status:        Status(data.Status),
		progress:      data.Progress,
		createdAt:     data.CreatedAt,
		startedAt:     data.StartedAt,
		completedAt:   data.CompletedAt,
		failureReason: data.FailureReason,
		finalQuality:  finalQuality,
		clock:         clock,
	}

	if o.status == StatusInProgress && o.startedAt != nil {
		elapsed := clock.Now().Sub(*o.startedAt)
		p := elapsed.Seconds() / rcp.CraftingTime().Seconds()
		if p < 0 {
			p = 0
		}
		if p >= 1 {
			p = 0.999
		}
		if p > o.progress {
			o.progress = p
		}
	}

	return o, nil
}
