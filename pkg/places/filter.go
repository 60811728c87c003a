package places

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Selection is the read-side filter over the in-memory list: city and
// category are exact matches, Query is a case-insensitive substring match
// over name/city/address/category. A pure projection; never mutates.
type Selection struct {
	City     string
	Category string
	Query    string
}

// Filter returns the places matching the selection, preserving order.
func Filter(items []Place, sel Selection) []Place {
	query := strings.ToLower(strings.TrimSpace(sel.Query))
	out := make([]Place, 0, len(items))
	for _, it := range items {
		if sel.City != "" && it.City != sel.City {
			continue
		}
		if sel.Category != "" && it.Category != sel.Category {
			continue
		}
		if query != "" {
			hay := strings.ToLower(it.Name + " " + it.City + " " + it.Address + " " + it.Category)
			if !strings.Contains(hay, query) {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Facet is a label with its occurrence count, for the city/category pickers.
type Facet struct {
	Label string
	Count int
}

// collator orders facet labels; the product surface is Chinese.
var collator = collate.New(language.Chinese)

// CityFacets returns city labels with counts, ordered by count descending
// then label collation. Empty cities are skipped.
func CityFacets(items []Place) []Facet {
	return facets(items, func(p Place) string { return strings.TrimSpace(p.City) })
}

// CategoryFacets returns category labels with counts for the given city
// (all items when city is empty), ordered like CityFacets.
func CategoryFacets(items []Place, city string) []Facet {
	scoped := items
	if city != "" {
		scoped = Filter(items, Selection{City: city})
	}
	return facets(scoped, func(p Place) string { return strings.TrimSpace(p.Category) })
}

func facets(items []Place, key func(Place) string) []Facet {
	counts := make(map[string]int)
	for _, it := range items {
		k := key(it)
		if k == "" {
			continue
		}
		counts[k]++
	}
	out := make([]Facet, 0, len(counts))
	for label, n := range counts {
		out = append(out, Facet{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return collator.CompareString(out[i].Label, out[j].Label) < 0
	})
	return out
}
