package amap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/transport"
	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

// Planner resolves routes between an origin and a destination place via the
// provider's direction endpoints.
type Planner struct {
	cfg     func() config.Config
	http    *http.Client
	locator Locator
	baseURL string
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithPlannerHTTPClient sets the underlying HTTP client.
func WithPlannerHTTPClient(hc *http.Client) PlannerOption {
	return func(p *Planner) {
		if hc != nil {
			p.http = hc
		}
	}
}

// WithPlannerBaseURL overrides the provider root (tests).
func WithPlannerBaseURL(base string) PlannerOption {
	return func(p *Planner) {
		p.baseURL = strings.TrimRight(base, "/")
	}
}

// WithLocator sets the position source used when no origin is supplied.
func WithLocator(l Locator) PlannerOption {
	return func(p *Planner) {
		if l != nil {
			p.locator = l
		}
	}
}

// NewPlanner creates a route planner. Without an explicit locator it
// resolves origins through the IP locator.
func NewPlanner(cfg func() config.Config, opts ...PlannerOption) *Planner {
	p := &Planner{
		cfg:     cfg,
		http:    &http.Client{Timeout: transport.DefaultHTTPTimeout},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.locator == nil {
		p.locator = NewIPLocator(cfg, WithLocatorHTTPClient(p.http), WithLocatorBaseURL(p.baseURL))
	}
	return p
}

// RoutePayload is the provider's direction response, parsed far enough for
// status handling and polyline extraction.
type RoutePayload struct {
	Status   json.RawMessage `json:"status"`
	Info     string          `json:"info"`
	Infocode string          `json:"infocode"`
	Route    struct {
		Paths []struct {
			Steps []struct {
				Polyline string `json:"polyline"`
			} `json:"steps"`
		} `json:"paths"`
	} `json:"route"`
}

// Result is a planned route: normalized endpoints, transport mode, and the
// raw provider payload for downstream polyline extraction.
type Result struct {
	From    places.Coordinates
	To      places.Coordinates
	Mode    Mode
	Payload *RoutePayload
}

// PlanRoute resolves a route to the destination place. The destination must
// have coordinates; this is checked before any network call. When origin is
// nil the current position is resolved through the locator.
func (p *Planner) PlanRoute(ctx context.Context, dest places.Place, mode Mode, origin *places.Coordinates) (*Result, error) {
	to, ok := dest.Coordinates()
	if !ok {
		return nil, &errors.PlanningError{Mode: string(mode), Message: "missing destination coordinates"}
	}

	if mode != ModeWalking {
		mode = ModeDriving
	}

	from := places.Coordinates{}
	if origin != nil {
		from = *origin
	} else {
		pos, err := p.locator.CurrentPosition(ctx, LocateOptions{Timeout: DefaultLocateTimeout, HighAccuracy: true})
		if err != nil {
			return nil, err
		}
		from = pos
	}

	restKey := strings.TrimSpace(p.cfg().AmapRestKey)
	if restKey == "" {
		return nil, &errors.PlanningError{Mode: string(mode), Message: "missing rest key"}
	}

	path := "/v3/direction/driving"
	if mode == ModeWalking {
		path = "/v3/direction/walking"
	}

	params := url.Values{}
	params.Set("key", restKey)
	params.Set("origin", formatCoordinates(from))
	params.Set("destination", formatCoordinates(to))
	if mode != ModeWalking {
		params.Set("strategy", "0")
		params.Set("extensions", "base")
	}

	endpoint := p.baseURL + path + "?" + params.Encode()
	resp, err := transport.New(nil).WithHTTPClient(p.http).Get(ctx, endpoint)
	if err != nil {
		return nil, &errors.PlanningError{Mode: string(mode), Message: "request failed", Err: err}
	}

	var payload RoutePayload
	if err := transport.DecodeResponse(resp, "route", &payload); err != nil {
		return nil, &errors.PlanningError{Mode: string(mode), Message: "malformed response", Err: err}
	}

	if statusString(payload.Status) != "1" {
		info := payload.Info
		if info == "" {
			info = payload.Infocode
		}
		if info == "" {
			info = "route planning failed"
		}
		logging.Error().
			Str("mode", string(mode)).
			Str("origin", formatCoordinates(from)).
			Str("destination", formatCoordinates(to)).
			Str("info", info).
			Msg("route planning failed")
		return nil, &errors.PlanningError{Mode: string(mode), Message: info}
	}

	return &Result{From: from, To: to, Mode: mode, Payload: &payload}, nil
}

// Path concatenates all steps' polylines of the first returned path, in
// order. Possibly empty when the provider returns no polyline.
func (r *Result) Path() []places.Coordinates {
	if r == nil || r.Payload == nil || len(r.Payload.Route.Paths) == 0 {
		return nil
	}
	var points []places.Coordinates
	for _, step := range r.Payload.Route.Paths[0].Steps {
		points = append(points, DecodePolyline(step.Polyline)...)
	}
	return points
}

// formatCoordinates renders a coordinate pair as the provider's "lng,lat".
func formatCoordinates(c places.Coordinates) string {
	return formatFloat(c.Lng) + "," + formatFloat(c.Lat)
}
