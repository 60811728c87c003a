package foodmap

import (
	"sync"

	"github.com/foodmap/foodmap/pkg/places"
)

// Hook function types for place and gauge events
type (
	// PlaceAddedHook is called when a place is created
	PlaceAddedHook func(place places.Place)

	// PlaceUpdatedHook is called when a place is updated or relocated
	PlaceUpdatedHook func(place places.Place)

	// PlaceRemovedHook is called when a place is deleted
	PlaceRemovedHook func(id string)

	// BusyChangedHook is called when the busy gauge changes
	BusyChangedHook func(busy int)
)

// hooks manages event callbacks for directory changes
type hooks struct {
	mu             sync.RWMutex
	onPlaceAdded   []PlaceAddedHook
	onPlaceUpdated []PlaceUpdatedHook
	onPlaceRemoved []PlaceRemovedHook
	onBusyChanged  []BusyChangedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnPlaceAdded registers a callback for place creation
func (h *hooks) OnPlaceAdded(fn PlaceAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPlaceAdded = append(h.onPlaceAdded, fn)
}

// OnPlaceUpdated registers a callback for place updates
func (h *hooks) OnPlaceUpdated(fn PlaceUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPlaceUpdated = append(h.onPlaceUpdated, fn)
}

// OnPlaceRemoved registers a callback for place deletion
func (h *hooks) OnPlaceRemoved(fn PlaceRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onPlaceRemoved = append(h.onPlaceRemoved, fn)
}

// OnBusyChanged registers a callback for busy gauge changes
func (h *hooks) OnBusyChanged(fn BusyChangedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onBusyChanged = append(h.onBusyChanged, fn)
}

func (h *hooks) notifyAdded(p places.Place) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onPlaceAdded {
		fn(p)
	}
}

func (h *hooks) notifyUpdated(p places.Place) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onPlaceUpdated {
		fn(p)
	}
}

func (h *hooks) notifyRemoved(id string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onPlaceRemoved {
		fn(id)
	}
}

func (h *hooks) notifyBusy(busy int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, fn := range h.onBusyChanged {
		fn(busy)
	}
}
