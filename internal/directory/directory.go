// Package directory owns the in-memory place list and reconciles it across
// the three data sources: the local snapshot, the remote table, and the
// embedded fallback bundle. After every load or mutation the in-memory list
// and the persisted snapshot hold the same items.
package directory

import (
	"context"
	"sync"

	"github.com/foodmap/foodmap/internal/embedded"
	"github.com/foodmap/foodmap/internal/localstore"
	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

// Lister is the remote read path. A nil result means the remote source is
// unavailable or unconfigured; the reconciler falls back without error.
type Lister interface {
	List(ctx context.Context) []places.Place
}

// Directory reconciles and serves the place list. All accessors return
// copies; callers never observe internal slices.
type Directory struct {
	mu         sync.RWMutex
	items      []places.Place
	provenance string

	local    *localstore.Store
	remote   Lister
	fallback func() []places.Place

	busyMu sync.Mutex
	busy   int
	onBusy func(int)
}

// Option configures a Directory.
type Option func(*Directory)

// WithFallback overrides the static fallback source (tests).
func WithFallback(fn func() []places.Place) Option {
	return func(d *Directory) {
		if fn != nil {
			d.fallback = fn
		}
	}
}

// WithBusyCallback registers an observer for busy gauge changes.
func WithBusyCallback(fn func(int)) Option {
	return func(d *Directory) {
		d.onBusy = fn
	}
}

// New creates a Directory over the given local snapshot store and remote
// lister. The embedded bundle serves as the fallback source.
func New(local *localstore.Store, remote Lister, opts ...Option) *Directory {
	d := &Directory{
		local:    local,
		remote:   remote,
		fallback: embedded.Places,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// LoadOptions controls one reconciliation pass.
type LoadOptions struct {
	// PreferLocal adopts a non-empty local snapshot without a remote call.
	PreferLocal bool
	// ForceRemote skips the local snapshot even when PreferLocal is set.
	ForceRemote bool
}

// Load runs one reconciliation pass and returns the adopted items together
// with their provenance. The read path never fails: when the remote source
// yields nothing the embedded fallback is adopted instead.
func (d *Directory) Load(ctx context.Context, opts LoadOptions) ([]places.Place, string) {
	if opts.PreferLocal && !opts.ForceRemote {
		if snap := d.local.Load(); snap != nil && len(snap.Items) > 0 {
			logging.Debug().
				Int("count", len(snap.Items)).
				Str("provenance", snap.Mode).
				Msg("adopted local snapshot")
			return d.adopt(snap.Items, snap.Mode, false), snap.Mode
		}
		logging.Warn().Msg("local snapshot empty or unreadable, falling through to remote")
	}

	if items := d.remote.List(ctx); items != nil {
		return d.adopt(items, localstore.ProvenanceSupabase, true), localstore.ProvenanceSupabase
	}

	items := d.fallback()
	logging.Warn().
		Int("count", len(items)).
		Msg("remote list unavailable, adopting embedded fallback")
	return d.adopt(items, localstore.ProvenanceFallback, true), localstore.ProvenanceFallback
}

// adopt installs items as the current list and optionally re-persists the
// snapshot so memory and disk stay identical.
func (d *Directory) adopt(items []places.Place, provenance string, persist bool) []places.Place {
	for i := range items {
		items[i] = places.Normalize(items[i])
	}

	d.mu.Lock()
	d.items = items
	d.provenance = provenance
	d.mu.Unlock()

	if persist {
		if err := d.local.Save(items, provenance); err != nil {
			logging.Err(err).Str("provenance", provenance).Msg("snapshot save failed")
		}
	}
	return places.Clone(items)
}

// persistEdited re-saves the current list with edited provenance. Called
// with d.mu held for writing.
func (d *Directory) persistEdited() error {
	d.provenance = localstore.ProvenanceEdited
	return d.local.Save(d.items, localstore.ProvenanceEdited)
}

// ApplyCreate prepends the place and re-persists the list.
func (d *Directory) ApplyCreate(p places.Place) error {
	p = places.Normalize(p)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.items = append([]places.Place{p}, d.items...)
	return d.persistEdited()
}

// ApplyUpdate replaces the place with the same ID and re-persists the list.
// Unknown IDs are ignored; the snapshot is still rewritten.
func (d *Directory) ApplyUpdate(p places.Place) error {
	p = places.Normalize(p)

	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.items {
		if d.items[i].ID == p.ID {
			d.items[i] = p
			break
		}
	}
	return d.persistEdited()
}

// ApplyRemove deletes the place with the given ID and re-persists the list.
func (d *Directory) ApplyRemove(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	kept := d.items[:0]
	for _, item := range d.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	d.items = kept
	return d.persistEdited()
}

// Find returns a copy of the place with the given ID.
func (d *Directory) Find(id string) (places.Place, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, item := range d.items {
		if item.ID == id {
			return item, true
		}
	}
	return places.Place{}, false
}

// Places returns a copy of the current list.
func (d *Directory) Places() []places.Place {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return places.Clone(d.items)
}

// Filter returns the places matching the selection, as copies.
func (d *Directory) Filter(sel places.Selection) []places.Place {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return places.Filter(d.items, sel)
}

// Provenance reports where the current list came from.
func (d *Directory) Provenance() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.provenance
}

// IncBusy increments the busy gauge and notifies the observer.
func (d *Directory) IncBusy() {
	d.busyMu.Lock()
	d.busy++
	busy, fn := d.busy, d.onBusy
	d.busyMu.Unlock()
	if fn != nil {
		fn(busy)
	}
}

// DecBusy decrements the busy gauge, floored at zero, and notifies the
// observer.
func (d *Directory) DecBusy() {
	d.busyMu.Lock()
	if d.busy > 0 {
		d.busy--
	}
	busy, fn := d.busy, d.onBusy
	d.busyMu.Unlock()
	if fn != nil {
		fn(busy)
	}
}

// Busy reports the current gauge value.
func (d *Directory) Busy() int {
	d.busyMu.Lock()
	defer d.busyMu.Unlock()
	return d.busy
}
