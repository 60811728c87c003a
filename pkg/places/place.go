// Package places defines the point-of-interest data model shared by the
// reconciliation and navigation layers, together with row normalization and
// the read-side filter projection.
package places

import (
	"math"
	"strconv"

	"github.com/google/uuid"
)

// Place is one point-of-interest record. Lng and Lat are nullable; a place
// with only one of the two set is treated as having no coordinates.
type Place struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Address   string   `json:"address"`
	Category  string   `json:"category"`
	Lng       *float64 `json:"lng"`
	Lat       *float64 `json:"lat"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// Coordinates is a finite lng/lat pair in degrees.
type Coordinates struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// HasCoordinates reports whether the place has a complete, finite
// coordinate pair. Exactly one of Lng/Lat set counts as no coordinates.
func (p Place) HasCoordinates() bool {
	if p.Lng == nil || p.Lat == nil {
		return false
	}
	return isFinite(*p.Lng) && isFinite(*p.Lat)
}

// Coordinates returns the place's coordinate pair. The second return value
// is false when the place has no complete pair.
func (p Place) Coordinates() (Coordinates, bool) {
	if !p.HasCoordinates() {
		return Coordinates{}, false
	}
	return Coordinates{Lng: *p.Lng, Lat: *p.Lat}, true
}

// Row is a loosely typed place row as returned by the remote store or read
// from a snapshot. ID, Lng and Lat arrive as numbers, strings, or null
// depending on the source.
type Row struct {
	ID        any    `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Address   string `json:"address"`
	Category  string `json:"category"`
	Lng       any    `json:"lng"`
	Lat       any    `json:"lat"`
	UpdatedAt string `json:"updated_at"`
	// Some sources use camelCase for the timestamp.
	UpdatedAtAlt string `json:"updatedAt"`
}

// NormalizeRow converts a raw row into a Place. Missing or empty-string
// numeric fields normalize to nil; a missing id is replaced with a freshly
// generated one. The remote store is expected to always supply ids, so the
// generated-id path is defensive.
func NormalizeRow(r Row) Place {
	updatedAt := r.UpdatedAt
	if updatedAt == "" {
		updatedAt = r.UpdatedAtAlt
	}
	return Place{
		ID:        normalizeID(r.ID),
		Name:      r.Name,
		City:      r.City,
		Address:   r.Address,
		Category:  r.Category,
		Lng:       normalizeCoord(r.Lng),
		Lat:       normalizeCoord(r.Lat),
		UpdatedAt: updatedAt,
	}
}

// Normalize cleans a Place in the same way NormalizeRow cleans a raw row:
// an empty id is replaced, non-finite coordinates are dropped. Idempotent.
func Normalize(p Place) Place {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Lng != nil && !isFinite(*p.Lng) {
		p.Lng = nil
	}
	if p.Lat != nil && !isFinite(*p.Lat) {
		p.Lat = nil
	}
	return p
}

// normalizeID coerces a wire id to its string form, issuing a fresh id when
// the source supplied none.
func normalizeID(v any) string {
	switch id := v.(type) {
	case nil:
		return uuid.NewString()
	case string:
		if id == "" {
			return uuid.NewString()
		}
		return id
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	case int:
		return strconv.Itoa(id)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return uuid.NewString()
	}
}

// normalizeCoord coerces a wire coordinate to *float64. Null, empty string,
// unparsable, and non-finite values all normalize to nil.
func normalizeCoord(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		if !isFinite(n) {
			return nil
		}
		return &n
	case string:
		if n == "" {
			return nil
		}
		f, err := strconv.ParseFloat(n, 64)
		if err != nil || !isFinite(f) {
			return nil
		}
		return &f
	case int:
		f := float64(n)
		return &f
	default:
		return nil
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float64 returns a pointer to f. Convenience for building Place literals.
func Float64(f float64) *float64 {
	return &f
}

// StringPtr returns a pointer to s. Convenience for building patches.
func StringPtr(s string) *string {
	return &s
}

// Clone returns a deep copy of the given places.
func Clone(items []Place) []Place {
	if items == nil {
		return nil
	}
	out := make([]Place, len(items))
	for i, p := range items {
		if p.Lng != nil {
			lng := *p.Lng
			p.Lng = &lng
		}
		if p.Lat != nil {
			lat := *p.Lat
			p.Lat = &lat
		}
		out[i] = p
	}
	return out
}
