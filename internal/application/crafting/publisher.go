package crafting

import "github.com/KungRaseri/forgecraft/internal/domain/crafting"

// multiPublisher fans every order event out to several publishers, e.g. the
// event bus plus a metrics collector
type multiPublisher struct {
	targets []crafting.EventPublisher
}

// CombinePublishers builds a publisher that forwards each event to all
// targets in order. Nil targets are skipped.
func CombinePublishers(targets ...crafting.EventPublisher) crafting.EventPublisher {
	var kept []crafting.EventPublisher
	for _, t := range targets {
		if t != nil {
			kept = append(kept, t)
		}
	}
	return &multiPublisher{targets: kept}
}

func (m *multiPublisher) PublishCraftingStarted(event crafting.CraftingStartedEvent) {
	for _, t := range m.targets {
		t.PublishCraftingStarted(event)
	}
}

func (m *multiPublisher) PublishCraftingProgress(event crafting.CraftingProgressEvent) {
	for _, t := range m.targets {
		t.PublishCraftingProgress(event)
	}
}

func (m *multiPublisher) PublishCraftingCompleted(event crafting.CraftingCompletedEvent) {
	for _, t := range m.targets {
		t.PublishCraftingCompleted(event)
	}
}

func (m *multiPublisher) PublishCraftingFailed(event crafting.CraftingFailedEvent) {
	for _, t := range m.targets {
		t.PublishCraftingFailed(event)
	}
}

func (m *multiPublisher) PublishCraftingCancelled(event crafting.CraftingCancelledEvent) {
	for _, t := range m.targets {
		t.PublishCraftingCancelled(event)
	}
}
