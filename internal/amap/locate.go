package amap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/transport"
	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/places"
)

// DefaultLocateTimeout matches the original product's geolocation timeout.
const DefaultLocateTimeout = 10 * time.Second

// LocateOptions carries the caller's timeout and accuracy preference for a
// single-shot position request.
type LocateOptions struct {
	Timeout      time.Duration
	HighAccuracy bool
}

// Locator resolves the device's current position. The view layer may inject
// a device-backed implementation; the default resolves coarsely via the
// provider's IP location endpoint.
type Locator interface {
	CurrentPosition(ctx context.Context, opts LocateOptions) (places.Coordinates, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context, opts LocateOptions) (places.Coordinates, error)

// CurrentPosition implements the Locator interface.
func (f LocatorFunc) CurrentPosition(ctx context.Context, opts LocateOptions) (places.Coordinates, error) {
	return f(ctx, opts)
}

// IPLocator wraps the provider's IP location endpoint as a single-shot
// position source.
type IPLocator struct {
	cfg     func() config.Config
	http    *http.Client
	baseURL string
}

// IPLocatorOption configures an IPLocator.
type IPLocatorOption func(*IPLocator)

// WithLocatorHTTPClient sets the underlying HTTP client.
func WithLocatorHTTPClient(hc *http.Client) IPLocatorOption {
	return func(l *IPLocator) {
		if hc != nil {
			l.http = hc
		}
	}
}

// WithLocatorBaseURL overrides the provider root (tests).
func WithLocatorBaseURL(base string) IPLocatorOption {
	return func(l *IPLocator) {
		l.baseURL = strings.TrimRight(base, "/")
	}
}

// NewIPLocator creates an IP-based locator.
func NewIPLocator(cfg func() config.Config, opts ...IPLocatorOption) *IPLocator {
	l := &IPLocator{
		cfg:     cfg,
		http:    &http.Client{Timeout: transport.DefaultHTTPTimeout},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type ipResponse struct {
	Status    json.RawMessage `json:"status"`
	Info      string          `json:"info"`
	Infocode  string          `json:"infocode"`
	Rectangle string          `json:"rectangle"`
}

// CurrentPosition performs one position fix. Any non-complete outcome fails
// with a LocationError whose reason preserves the provider's message
// verbatim for downstream classification.
func (l *IPLocator) CurrentPosition(ctx context.Context, opts LocateOptions) (places.Coordinates, error) {
	restKey := strings.TrimSpace(l.cfg().AmapRestKey)
	if restKey == "" {
		return places.Coordinates{}, &errors.LocationError{Reason: "amap not ready"}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params := url.Values{}
	params.Set("key", restKey)

	endpoint := l.baseURL + "/v3/ip?" + params.Encode()
	resp, err := transport.New(nil).WithHTTPClient(l.http).Get(ctx, endpoint)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return places.Coordinates{}, &errors.LocationError{Reason: "timeout", Err: err}
		}
		return places.Coordinates{}, &errors.LocationError{Err: err}
	}

	var data ipResponse
	if err := transport.DecodeResponse(resp, "locate", &data); err != nil {
		return places.Coordinates{}, &errors.LocationError{Err: err}
	}

	if statusString(data.Status) != "1" || data.Rectangle == "" {
		reason := data.Info
		if reason == "" {
			reason = data.Infocode
		}
		if reason == "" {
			reason = "geolocation failed"
		}
		return places.Coordinates{}, &errors.LocationError{Reason: reason}
	}

	coords, ok := rectangleCenter(data.Rectangle)
	if !ok {
		return places.Coordinates{}, &errors.LocationError{Reason: "malformed rectangle in response"}
	}
	return coords, nil
}

// rectangleCenter reduces the provider's "lng1,lat1;lng2,lat2" bounding box
// to its midpoint.
func rectangleCenter(rect string) (places.Coordinates, bool) {
	corners := strings.Split(rect, ";")
	if len(corners) != 2 {
		return places.Coordinates{}, false
	}
	a, okA := parseLocation(corners[0])
	b, okB := parseLocation(corners[1])
	if !okA || !okB {
		return places.Coordinates{}, false
	}
	return places.Coordinates{
		Lng: (a.Lng + b.Lng) / 2,
		Lat: (a.Lat + b.Lat) / 2,
	}, true
}
