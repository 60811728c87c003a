package amap

import (
	"strings"

	"github.com/foodmap/foodmap/pkg/places"
)

// DecodePolyline parses the provider's step polyline: a semicolon-separated
// list of comma-separated coordinate pairs. Pairs where either component is
// not a finite number are discarded, so partial or garbled step data
// degrades to a shorter path rather than aborting the draw.
func DecodePolyline(polyline string) []places.Coordinates {
	if polyline == "" {
		return nil
	}
	segments := strings.Split(polyline, ";")
	points := make([]places.Coordinates, 0, len(segments))
	for _, segment := range segments {
		if c, ok := parseLocation(segment); ok {
			points = append(points, c)
		}
	}
	return points
}
