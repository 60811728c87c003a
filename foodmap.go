// Package foodmap is the public client for the place directory: it
// reconciles places across the local snapshot, the remote table, and the
// embedded fallback, applies mutations remote-first with a local mirror, and
// dispatches navigation requests to a planned route or a native map hand-off.
package foodmap

import (
	"context"
	"fmt"
	"time"

	"github.com/foodmap/foodmap/internal/amap"
	appconfig "github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/directory"
	"github.com/foodmap/foodmap/internal/localstore"
	"github.com/foodmap/foodmap/internal/remotestore"
	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

// Config is the resolved application configuration.
type Config = appconfig.Config

// ConfigPatch is a partial configuration override.
type ConfigPatch = appconfig.Patch

// Mode is the transport mode for route planning and hand-off.
type Mode = amap.Mode

// Supported transport modes.
const (
	ModeDriving = amap.ModeDriving
	ModeWalking = amap.ModeWalking
)

// UpdatePatch is a partial place update. Text fields left nil are kept;
// coordinates are applied verbatim, so callers keeping a place's position
// must carry it in the patch.
type UpdatePatch = remotestore.Patch

// Route is a planned route.
type Route = amap.Result

// ActionKind discriminates navigation dispatch outcomes.
type ActionKind string

// Dispatch outcomes.
const (
	// ActionHandoff carries a deep link for the native map application.
	ActionHandoff ActionKind = "handoff"
	// ActionRoute carries an in-app planned route.
	ActionRoute ActionKind = "route"
)

// Action is the outcome of a navigation dispatch.
type Action struct {
	Kind     ActionKind
	URI      string
	Platform amap.Platform
	Route    *Route
	Path     []places.Coordinates
}

// LoadOption configures one reconciliation pass.
type LoadOption func(*loadOptions)

type loadOptions struct {
	preferLocal bool
	forceRemote bool
}

// ForceRemote makes Load skip the local snapshot and query the remote table.
func ForceRemote() LoadOption {
	return func(o *loadOptions) { o.forceRemote = true }
}

// SkipLocalSnapshot makes Load ignore the local snapshot without forcing a
// fresh remote round trip on later passes.
func SkipLocalSnapshot() LoadOption {
	return func(o *loadOptions) { o.preferLocal = false }
}

// Foodmap manages the place directory and navigation dispatch
type Foodmap interface {
	// Load runs one reconciliation pass and returns the adopted places.
	// The read path never fails; an empty result means even the fallback
	// bundle was empty.
	Load(ctx context.Context, opts ...LoadOption) []places.Place

	// Places returns a copy of the current list
	Places() []places.Place

	// Filter returns the places matching the selection
	Filter(sel places.Selection) []places.Place

	// Find returns a copy of the place with the given ID
	Find(id string) (places.Place, bool)

	// Provenance reports which source produced the current list
	Provenance() string

	// Create inserts a place remote-first and mirrors it locally
	Create(ctx context.Context, p places.Place) (places.Place, error)

	// Update patches a place remote-first and mirrors it locally
	Update(ctx context.Context, id string, patch UpdatePatch) (places.Place, error)

	// Delete removes a place remote-first and mirrors the removal locally
	Delete(ctx context.Context, id string) error

	// Relocate re-geocodes a place's city and address and patches its
	// coordinates
	Relocate(ctx context.Context, id string) (places.Place, error)

	// Geocode resolves an address to coordinates
	Geocode(ctx context.Context, address, city string) (places.Coordinates, error)

	// PlanRoute plans a route from the current position to the place
	PlanRoute(ctx context.Context, id string, mode Mode) (*Route, error)

	// Dispatch resolves a navigation request to a hand-off URI on mobile
	// devices or a planned route elsewhere. Unknown IDs dispatch to nothing.
	Dispatch(ctx context.Context, id string, mode Mode) (*Action, error)

	// Config returns the effective configuration
	Config() Config

	// SaveConfig persists a configuration patch and returns the result
	SaveConfig(patch ConfigPatch) (Config, error)

	// OnPlaceAdded registers a callback for place creation
	OnPlaceAdded(PlaceAddedHook)

	// OnPlaceUpdated registers a callback for place updates
	OnPlaceUpdated(PlaceUpdatedHook)

	// OnPlaceRemoved registers a callback for place deletion
	OnPlaceRemoved(PlaceRemovedHook)

	// OnBusyChanged registers a callback for busy gauge changes
	OnBusyChanged(BusyChangedHook)
}

// foodmap is the internal implementation of the Foodmap interface
type foodmap struct {
	resolver  *appconfig.Resolver
	dir       *directory.Directory
	remote    *remotestore.Store
	geocoder  *amap.Geocoder
	planner   *amap.Planner
	userAgent string

	// Event hooks
	hooks *hooks
}

// New creates a new Foodmap instance with the given options
func New(opts ...Option) (Foodmap, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	fm := &foodmap{
		resolver:  appconfig.NewResolver(c.stateDir),
		userAgent: c.userAgent,
		hooks:     newHooks(),
	}

	cfgFn := fm.resolver.Effective

	var remoteOpts []remotestore.Option
	var geoOpts []amap.GeocoderOption
	var planOpts []amap.PlannerOption
	if c.httpClient != nil {
		remoteOpts = append(remoteOpts, remotestore.WithHTTPClient(c.httpClient))
		geoOpts = append(geoOpts, amap.WithGeocoderHTTPClient(c.httpClient))
		planOpts = append(planOpts, amap.WithPlannerHTTPClient(c.httpClient))
	}
	if c.locator != nil {
		planOpts = append(planOpts, amap.WithLocator(c.locator))
	}

	fm.remote = remotestore.New(cfgFn, remoteOpts...)
	fm.geocoder = amap.NewGeocoder(cfgFn, geoOpts...)
	fm.planner = amap.NewPlanner(cfgFn, planOpts...)

	busyCallback := c.onBusy
	dirOpts := []directory.Option{
		directory.WithBusyCallback(func(busy int) {
			if busyCallback != nil {
				busyCallback(busy)
			}
			fm.hooks.notifyBusy(busy)
		}),
	}
	if c.fallback != nil {
		dirOpts = append(dirOpts, directory.WithFallback(c.fallback))
	}
	fm.dir = directory.New(localstore.New(fm.resolver.Dir()), fm.remote, dirOpts...)

	return fm, nil
}

// Load runs one reconciliation pass
func (f *foodmap) Load(ctx context.Context, opts ...LoadOption) []places.Place {
	f.dir.IncBusy()
	defer f.dir.DecBusy()

	lo := loadOptions{preferLocal: true}
	for _, opt := range opts {
		opt(&lo)
	}
	items, _ := f.dir.Load(ctx, directory.LoadOptions{
		PreferLocal: lo.preferLocal,
		ForceRemote: lo.forceRemote,
	})
	return items
}

// Places returns a copy of the current list
func (f *foodmap) Places() []places.Place {
	return f.dir.Places()
}

// Filter returns the places matching the selection
func (f *foodmap) Filter(sel places.Selection) []places.Place {
	return f.dir.Filter(sel)
}

// Find returns a copy of the place with the given ID
func (f *foodmap) Find(id string) (places.Place, bool) {
	return f.dir.Find(id)
}

// Provenance reports which source produced the current list
func (f *foodmap) Provenance() string {
	return f.dir.Provenance()
}

// Create inserts a place remote-first and mirrors it locally. Without a
// configured remote store the place is created in the local mirror only.
func (f *foodmap) Create(ctx context.Context, p places.Place) (places.Place, error) {
	f.dir.IncBusy()
	defer f.dir.DecBusy()

	canonical := places.Normalize(p)
	if f.remote.Configured() {
		created, err := f.remote.Create(ctx, canonical)
		if err != nil {
			return places.Place{}, err
		}
		canonical = created
	} else if canonical.UpdatedAt == "" {
		canonical.UpdatedAt = nowRFC3339()
	}

	if err := f.dir.ApplyCreate(canonical); err != nil {
		return places.Place{}, err
	}
	f.hooks.notifyAdded(canonical)
	return canonical, nil
}

// Update patches a place remote-first and mirrors it locally.
func (f *foodmap) Update(ctx context.Context, id string, patch UpdatePatch) (places.Place, error) {
	f.dir.IncBusy()
	defer f.dir.DecBusy()
	return f.update(ctx, id, patch)
}

func (f *foodmap) update(ctx context.Context, id string, patch UpdatePatch) (places.Place, error) {
	current, ok := f.dir.Find(id)
	if !ok {
		return places.Place{}, errors.NewNotFoundError("place", id)
	}
	if patch.UpdatedAt == "" {
		patch.UpdatedAt = nowRFC3339()
	}

	merged := applyPatch(current, patch)
	if f.remote.Configured() {
		updated, err := f.remote.Update(ctx, id, patch)
		if err != nil {
			return places.Place{}, err
		}
		if updated != nil {
			merged = *updated
		}
	}

	if err := f.dir.ApplyUpdate(merged); err != nil {
		return places.Place{}, err
	}
	f.hooks.notifyUpdated(merged)
	return merged, nil
}

// Delete removes a place remote-first and mirrors the removal locally.
func (f *foodmap) Delete(ctx context.Context, id string) error {
	f.dir.IncBusy()
	defer f.dir.DecBusy()

	if f.remote.Configured() {
		if err := f.remote.Delete(ctx, id); err != nil {
			return err
		}
	}
	if err := f.dir.ApplyRemove(id); err != nil {
		return err
	}
	f.hooks.notifyRemoved(id)
	return nil
}

// Relocate re-geocodes the place's city and address and patches its
// coordinates, remote-first.
func (f *foodmap) Relocate(ctx context.Context, id string) (places.Place, error) {
	f.dir.IncBusy()
	defer f.dir.DecBusy()

	current, ok := f.dir.Find(id)
	if !ok {
		return places.Place{}, errors.NewNotFoundError("place", id)
	}

	coords, err := f.geocoder.Resolve(ctx, current.Address, current.City)
	if err != nil {
		return places.Place{}, err
	}

	patch := UpdatePatch{
		Lng: places.Float64(coords.Lng),
		Lat: places.Float64(coords.Lat),
	}
	return f.update(ctx, id, patch)
}

// Geocode resolves an address to coordinates
func (f *foodmap) Geocode(ctx context.Context, address, city string) (places.Coordinates, error) {
	f.dir.IncBusy()
	defer f.dir.DecBusy()
	return f.geocoder.Resolve(ctx, address, city)
}

// PlanRoute plans a route from the current position to the place
func (f *foodmap) PlanRoute(ctx context.Context, id string, mode Mode) (*Route, error) {
	f.dir.IncBusy()
	defer f.dir.DecBusy()

	place, ok := f.dir.Find(id)
	if !ok {
		return nil, errors.NewNotFoundError("place", id)
	}
	return f.planner.PlanRoute(ctx, place, mode, nil)
}

// Dispatch resolves a navigation request. Unknown IDs log a warning and
// dispatch to nothing; errors carry a localized message for the caller to
// surface.
func (f *foodmap) Dispatch(ctx context.Context, id string, mode Mode) (*Action, error) {
	f.dir.IncBusy()
	defer f.dir.DecBusy()

	place, ok := f.dir.Find(id)
	if !ok {
		logging.Warn().Str("id", id).Msg("dispatch target not found")
		return nil, nil
	}

	if amap.IsMobile(f.userAgent) {
		platform := amap.DetectPlatform(f.userAgent)
		uri, err := amap.HandoffURI(place, mode, platform)
		if err != nil {
			return nil, localize(err)
		}
		return &Action{Kind: ActionHandoff, URI: uri, Platform: platform}, nil
	}

	result, err := f.planner.PlanRoute(ctx, place, mode, nil)
	if err != nil {
		return nil, localize(err)
	}
	return &Action{Kind: ActionRoute, Route: result, Path: result.Path()}, nil
}

// Config returns the effective configuration
func (f *foodmap) Config() Config {
	return f.resolver.Effective()
}

// SaveConfig persists a configuration patch and returns the result
func (f *foodmap) SaveConfig(patch ConfigPatch) (Config, error) {
	return f.resolver.Save(patch)
}

// OnPlaceAdded registers a callback for place creation
func (f *foodmap) OnPlaceAdded(fn PlaceAddedHook) { f.hooks.OnPlaceAdded(fn) }

// OnPlaceUpdated registers a callback for place updates
func (f *foodmap) OnPlaceUpdated(fn PlaceUpdatedHook) { f.hooks.OnPlaceUpdated(fn) }

// OnPlaceRemoved registers a callback for place deletion
func (f *foodmap) OnPlaceRemoved(fn PlaceRemovedHook) { f.hooks.OnPlaceRemoved(fn) }

// OnBusyChanged registers a callback for busy gauge changes
func (f *foodmap) OnBusyChanged(fn BusyChangedHook) { f.hooks.OnBusyChanged(fn) }

// applyPatch merges an update patch into a place.
func applyPatch(p places.Place, patch UpdatePatch) places.Place {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	p.Lng = patch.Lng
	p.Lat = patch.Lat
	if patch.UpdatedAt != "" {
		p.UpdatedAt = patch.UpdatedAt
	}
	return places.Normalize(p)
}

// localize wraps an error with its user-facing message.
func localize(err error) error {
	return fmt.Errorf("%s: %w", errors.Localize(err), err)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
