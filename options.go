package foodmap

import (
	"net/http"

	"github.com/foodmap/foodmap/internal/amap"
	"github.com/foodmap/foodmap/pkg/places"
)

// Option is a function that configures a Foodmap instance
type Option func(*config) error

// config holds the assembled options for New.
type config struct {
	stateDir   string
	httpClient *http.Client
	locator    amap.Locator
	userAgent  string
	fallback   func() []places.Place
	onBusy     func(int)
}

// WithStateDir sets the directory holding config.json and the place
// snapshot. Defaults to ~/.foodmap.
func WithStateDir(dir string) Option {
	return func(c *config) error {
		c.stateDir = dir
		return nil
	}
}

// WithHTTPClient sets the HTTP client shared by the remote store, the
// geocoder, and the route planner.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) error {
		c.httpClient = hc
		return nil
	}
}

// WithLocator sets the position source used when route planning has no
// explicit origin. The default resolves coarsely via IP location.
func WithLocator(l amap.Locator) Option {
	return func(c *config) error {
		c.locator = l
		return nil
	}
}

// WithUserAgent sets the device identification string used for platform
// classification in Dispatch.
func WithUserAgent(ua string) Option {
	return func(c *config) error {
		c.userAgent = ua
		return nil
	}
}

// WithFallback overrides the embedded fallback dataset.
func WithFallback(fn func() []places.Place) Option {
	return func(c *config) error {
		c.fallback = fn
		return nil
	}
}

// WithBusyCallback registers an observer for the busy gauge, in addition to
// any OnBusyChanged hooks registered later.
func WithBusyCallback(fn func(int)) Option {
	return func(c *config) error {
		c.onBusy = fn
		return nil
	}
}
