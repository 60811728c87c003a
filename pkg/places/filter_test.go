package places_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/pkg/places"
)

func testItems() []places.Place {
	return []places.Place{
		{ID: "1", Name: "A", City: "X", Category: "c1"},
		{ID: "2", Name: "B", City: "Y", Category: "c2"},
	}
}

func TestFilterByCity(t *testing.T) {
	got := places.Filter(testItems(), places.Selection{City: "X"})
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFilterByQueryCaseInsensitive(t *testing.T) {
	got := places.Filter(testItems(), places.Selection{Query: "b"})
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
}

func TestFilterByCategory(t *testing.T) {
	got := places.Filter(testItems(), places.Selection{Category: "c2"})
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Name)
}

func TestFilterQueryOverAllFields(t *testing.T) {
	items := []places.Place{
		{ID: "1", Name: "Noodles", City: "Chengdu", Address: "Jinli Street", Category: "snack"},
	}
	for _, q := range []string{"noodles", "chengdu", "jinli", "SNACK"} {
		got := places.Filter(items, places.Selection{Query: q})
		assert.Len(t, got, 1, "query %q", q)
	}
	assert.Empty(t, places.Filter(items, places.Selection{Query: "hotpot"}))
}

func TestFilterIsPure(t *testing.T) {
	items := testItems()
	_ = places.Filter(items, places.Selection{City: "X", Query: "a"})
	assert.Equal(t, testItems(), items)
}

func TestCityFacets(t *testing.T) {
	items := []places.Place{
		{ID: "1", City: "成都"},
		{ID: "2", City: "成都"},
		{ID: "3", City: "北京"},
		{ID: "4", City: "  "},
	}
	got := places.CityFacets(items)
	require.Len(t, got, 2)
	assert.Equal(t, places.Facet{Label: "成都", Count: 2}, got[0])
	assert.Equal(t, places.Facet{Label: "北京", Count: 1}, got[1])
}

func TestCategoryFacetsScopedToCity(t *testing.T) {
	items := []places.Place{
		{ID: "1", City: "X", Category: "noodles"},
		{ID: "2", City: "X", Category: "noodles"},
		{ID: "3", City: "Y", Category: "hotpot"},
	}
	got := places.CategoryFacets(items, "X")
	require.Len(t, got, 1)
	assert.Equal(t, "noodles", got[0].Label)
	assert.Equal(t, 2, got[0].Count)

	all := places.CategoryFacets(items, "")
	assert.Len(t, all, 2)
}

func TestDebouncerTrailingEdge(t *testing.T) {
	d := places.NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	ch := make(chan int, 8)
	for i := 0; i < 5; i++ {
		n := i
		d.Trigger(func() { ch <- n })
	}

	select {
	case n := <-ch:
		assert.Equal(t, 4, n)
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	select {
	case <-ch:
		t.Fatal("expected only the trailing trigger to fire")
	case <-time.After(60 * time.Millisecond):
	}
}
