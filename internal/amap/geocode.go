package amap

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/foodmap/foodmap/internal/config"
	"github.com/foodmap/foodmap/internal/transport"
	"github.com/foodmap/foodmap/pkg/errors"
	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

// defaultGeocodeCity widens the search to the whole country when the caller
// supplies no city.
const defaultGeocodeCity = "Nationwide"

// Geocoder resolves free-text addresses to coordinates via the provider's
// geocoding endpoint. Always takes the first candidate; no disambiguation.
type Geocoder struct {
	cfg     func() config.Config
	http    *http.Client
	baseURL string
}

// GeocoderOption configures a Geocoder.
type GeocoderOption func(*Geocoder)

// WithGeocoderHTTPClient sets the underlying HTTP client.
func WithGeocoderHTTPClient(hc *http.Client) GeocoderOption {
	return func(g *Geocoder) {
		if hc != nil {
			g.http = hc
		}
	}
}

// WithGeocoderBaseURL overrides the provider root (tests).
func WithGeocoderBaseURL(base string) GeocoderOption {
	return func(g *Geocoder) {
		g.baseURL = strings.TrimRight(base, "/")
	}
}

// NewGeocoder creates a geocoder resolving configuration through cfg on
// every call.
func NewGeocoder(cfg func() config.Config, opts ...GeocoderOption) *Geocoder {
	g := &Geocoder{
		cfg:     cfg,
		http:    &http.Client{Timeout: transport.DefaultHTTPTimeout},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type geocodeResponse struct {
	Status   json.RawMessage `json:"status"`
	Info     string          `json:"info"`
	Infocode string          `json:"infocode"`
	Geocodes []struct {
		Location string `json:"location"`
	} `json:"geocodes"`
}

// Resolve geocodes a free-text address. It fails with a GeocodeError when
// the REST key is absent, the provider reports a non-success status, or the
// provider returns zero candidates or a non-finite coordinate pair.
func (g *Geocoder) Resolve(ctx context.Context, address, city string) (places.Coordinates, error) {
	restKey := strings.TrimSpace(g.cfg().AmapRestKey)
	if restKey == "" {
		return places.Coordinates{}, &errors.GeocodeError{Address: address, Info: "missing rest key"}
	}
	if city == "" {
		city = defaultGeocodeCity
	}

	params := url.Values{}
	params.Set("key", restKey)
	params.Set("address", address)
	params.Set("city", city)

	endpoint := g.baseURL + "/v3/geocode/geo?" + params.Encode()
	resp, err := transport.New(nil).WithHTTPClient(g.http).Get(ctx, endpoint)
	if err != nil {
		return places.Coordinates{}, &errors.GeocodeError{Address: address, Err: err}
	}

	var data geocodeResponse
	if err := transport.DecodeResponse(resp, "geocode", &data); err != nil {
		return places.Coordinates{}, &errors.GeocodeError{Address: address, Err: err}
	}

	if statusString(data.Status) != "1" || len(data.Geocodes) == 0 {
		info := data.Info
		if info == "" {
			info = data.Infocode
		}
		if info == "" {
			info = "unknown"
		}
		logging.Error().
			Str("address", address).
			Str("info", info).
			Msg("geocode failed")
		return places.Coordinates{}, &errors.GeocodeError{Address: address, Info: info}
	}

	coords, ok := parseLocation(data.Geocodes[0].Location)
	if !ok {
		return places.Coordinates{}, &errors.GeocodeError{Address: address, Info: "malformed location in response"}
	}
	return coords, nil
}

// parseLocation parses the provider's "lng,lat" location string.
func parseLocation(s string) (places.Coordinates, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return places.Coordinates{}, false
	}
	lng, errLng := strconv.ParseFloat(parts[0], 64)
	lat, errLat := strconv.ParseFloat(parts[1], 64)
	if errLng != nil || errLat != nil ||
		math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return places.Coordinates{}, false
	}
	return places.Coordinates{Lng: lng, Lat: lat}, true
}
