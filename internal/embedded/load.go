package embedded

import (
	"encoding/json"
	"sync"

	"github.com/foodmap/foodmap/pkg/logging"
	"github.com/foodmap/foodmap/pkg/places"
)

// kbItem is the static snapshot's row shape; coordinates live in a nested
// location object that may be null.
type kbItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Category string `json:"category"`
	Location *struct {
		Lng float64 `json:"lng"`
		Lat float64 `json:"lat"`
	} `json:"location"`
	UpdatedAt string `json:"updatedAt"`
}

var (
	loadOnce sync.Once
	loaded   []places.Place
)

// Places returns the bundled static snapshot, parsed once per process.
// A damaged bundle yields an empty list rather than an error: the fallback
// is best-effort by definition.
func Places() []places.Place {
	loadOnce.Do(func() {
		raw, err := FS.ReadFile("kb.json")
		if err != nil {
			logging.Error().Err(err).Msg("embedded snapshot unreadable")
			return
		}
		var doc struct {
			Items []kbItem `json:"items"`
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			logging.Error().Err(err).Msg("embedded snapshot malformed")
			return
		}
		loaded = make([]places.Place, 0, len(doc.Items))
		for _, it := range doc.Items {
			p := places.Place{
				ID:        it.ID,
				Name:      it.Name,
				City:      it.City,
				Address:   it.Address,
				Category:  it.Category,
				UpdatedAt: it.UpdatedAt,
			}
			if it.Location != nil {
				p.Lng = places.Float64(it.Location.Lng)
				p.Lat = places.Float64(it.Location.Lat)
			}
			loaded = append(loaded, places.Normalize(p))
		}
	})
	return places.Clone(loaded)
}
