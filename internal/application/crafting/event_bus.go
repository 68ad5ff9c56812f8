package crafting

import (
	"sync"

	"github.com/KungRaseri/forgecraft/internal/domain/crafting"
	"github.com/KungRaseri/forgecraft/internal/domain/recipe"
)

// EventBus provides pub/sub for catalog and crafting order events.
// Implements both recipe.EventPublisher and crafting.EventPublisher.
// Thread-safe, supports multiple subscribers per event type. Uses buffered
// channels with non-blocking sends so a slow subscriber never stalls the
// station's tick.
type EventBus struct {
	mu sync.RWMutex

	startedSubscribers   []chan crafting.CraftingStartedEvent
	progressSubscribers  []chan crafting.CraftingProgressEvent
	completedSubscribers []chan crafting.CraftingCompletedEvent
	failedSubscribers    []chan crafting.CraftingFailedEvent
	cancelledSubscribers []chan crafting.CraftingCancelledEvent
	unlockedSubscribers  []chan recipe.UnlockedEvent
	lockedSubscribers    []chan recipe.LockedEvent
}

// Compile-time interface checks
var (
	_ crafting.EventPublisher = (*EventBus)(nil)
	_ recipe.EventPublisher   = (*EventBus)(nil)
)

// NewEventBus creates a new event bus for catalog and order events
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Progress events fire once per tick; a deeper buffer absorbs bursts while a
// subscriber catches up
const (
	eventBufferSize    = 10
	progressBufferSize = 32
)

// Publishers

func (b *EventBus) PublishCraftingStarted(event crafting.CraftingStartedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.startedSubscribers {
		select {
		case ch <- event:
		default:
			// Channel full, subscriber is slow - skip to prevent blocking
		}
	}
}

func (b *EventBus) PublishCraftingProgress(event crafting.CraftingProgressEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.progressSubscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *EventBus) PublishCraftingCompleted(event crafting.CraftingCompletedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.completedSubscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *EventBus) PublishCraftingFailed(event crafting.CraftingFailedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.failedSubscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *EventBus) PublishCraftingCancelled(event crafting.CraftingCancelledEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.cancelledSubscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *EventBus) PublishRecipeUnlocked(event recipe.UnlockedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.unlockedSubscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *EventBus) PublishRecipeLocked(event recipe.LockedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.lockedSubscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscriptions. Each returns a receive channel; callers must unsubscribe
// when done.

func (b *EventBus) SubscribeCraftingStarted() <-chan crafting.CraftingStartedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan crafting.CraftingStartedEvent, eventBufferSize)
	b.startedSubscribers = append(b.startedSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeCraftingStarted(ch <-chan crafting.CraftingStartedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.startedSubscribers {
		if c == ch {
			close(c)
			b.startedSubscribers[i] = b.startedSubscribers[len(b.startedSubscribers)-1]
			b.startedSubscribers = b.startedSubscribers[:len(b.startedSubscribers)-1]
			return
		}
	}
}

func (b *EventBus) SubscribeCraftingProgress() <-chan crafting.CraftingProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan crafting.CraftingProgressEvent, progressBufferSize)
	b.progressSubscribers = append(b.progressSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeCraftingProgress(ch <-chan crafting.CraftingProgressEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.progressSubscribers {
		if c == ch {
			close(c)
			b.progressSubscribers[i] = b.progressSubscribers[len(b.progressSubscribers)-1]
			b.progressSubscribers = b.progressSubscribers[:len(b.progressSubscribers)-1]
			return
		}
	}
}

func (b *EventBus) SubscribeCraftingCompleted() <-chan crafting.CraftingCompletedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan crafting.CraftingCompletedEvent, eventBufferSize)
	b.completedSubscribers = append(b.completedSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeCraftingCompleted(ch <-chan crafting.CraftingCompletedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.completedSubscribers {
		if c == ch {
			close(c)
			b.completedSubscribers[i] = b.completedSubscribers[len(b.completedSubscribers)-1]
			b.completedSubscribers = b.completedSubscribers[:len(b.completedSubscribers)-1]
			return
		}
	}
}

func (b *EventBus) SubscribeCraftingFailed() <-chan crafting.CraftingFailedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan crafting.CraftingFailedEvent, eventBufferSize)
	b.failedSubscribers = append(b.failedSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeCraftingFailed(ch <-chan crafting.CraftingFailedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.failedSubscribers {
		if c == ch {
			close(c)
			b.failedSubscribers[i] = b.failedSubscribers[len(b.failedSubscribers)-1]
			b.failedSubscribers = b.failedSubscribers[:len(b.failedSubscribers)-1]
			return
		}
	}
}

func (b *EventBus) SubscribeCraftingCancelled() <-chan crafting.CraftingCancelledEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan crafting.CraftingCancelledEvent, eventBufferSize)
	b.cancelledSubscribers = append(b.cancelledSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeCraftingCancelled(ch <-chan crafting.CraftingCancelledEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.cancelledSubscribers {
		if c == ch {
			close(c)
			b.cancelledSubscribers[i] = b.cancelledSubscribers[len(b.cancelledSubscribers)-1]
			b.cancelledSubscribers = b.cancelledSubscribers[:len(b.cancelledSubscribers)-1]
			return
		}
	}
}

func (b *EventBus) SubscribeRecipeUnlocked() <-chan recipe.UnlockedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan recipe.UnlockedEvent, eventBufferSize)
	b.unlockedSubscribers = append(b.unlockedSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeRecipeUnlocked(ch <-chan recipe.UnlockedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.unlockedSubscribers {
		if c == ch {
			close(c)
			b.unlockedSubscribers[i] = b.unlockedSubscribers[len(b.unlockedSubscribers)-1]
			b.unlockedSubscribers = b.unlockedSubscribers[:len(b.unlockedSubscribers)-1]
			return
		}
	}
}

func (b *EventBus) SubscribeRecipeLocked() <-chan recipe.LockedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan recipe.LockedEvent, eventBufferSize)
	b.lockedSubscribers = append(b.lockedSubscribers, ch)
	return ch
}

func (b *EventBus) UnsubscribeRecipeLocked(ch <-chan recipe.LockedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.lockedSubscribers {
		if c == ch {
			close(c)
			b.lockedSubscribers[i] = b.lockedSubscribers[len(b.lockedSubscribers)-1]
			b.lockedSubscribers = b.lockedSubscribers[:len(b.lockedSubscribers)-1]
			return
		}
	}
}

// SubscriberCount returns the total number of active subscriptions.
// Useful for testing and monitoring.
func (b *EventBus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.startedSubscribers) +
		len(b.progressSubscribers) +
		len(b.completedSubscribers) +
		len(b.failedSubscribers) +
		len(b.cancelledSubscribers) +
		len(b.unlockedSubscribers) +
		len(b.lockedSubscribers)
}
