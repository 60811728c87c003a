// Package amap implements clients for the map provider's REST endpoints:
// geocoding, route planning, and single-shot IP positioning, plus the pure
// helpers for polyline decoding, platform classification, and native-app
// hand-off URIs.
package amap

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DefaultBaseURL is the provider's REST API root.
const DefaultBaseURL = "https://restapi.amap.com"

// Mode is the transport mode for route planning.
type Mode string

// Supported transport modes.
const (
	ModeDriving Mode = "driving"
	ModeWalking Mode = "walking"
)

// statusString coerces the provider's status field, which arrives as either
// a JSON string or a number, to its string form.
func statusString(raw json.RawMessage) string {
	return strings.Trim(string(raw), `"`)
}

// formatFloat renders a coordinate component without trailing zeros.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
