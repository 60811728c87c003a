package places_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/pkg/places"
)

func TestNormalizeRow(t *testing.T) {
	t.Run("full row", func(t *testing.T) {
		var row places.Row
		require.NoError(t, json.Unmarshal([]byte(
			`{"id":"p1","name":"Noodle Stand","city":"Chengdu","address":"Main St 1","category":"noodles","lng":104.06,"lat":30.67,"updated_at":"2024-05-01T00:00:00Z"}`,
		), &row))

		p := places.NormalizeRow(row)
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, "Noodle Stand", p.Name)
		require.NotNil(t, p.Lng)
		assert.Equal(t, 104.06, *p.Lng)
		assert.Equal(t, "2024-05-01T00:00:00Z", p.UpdatedAt)
		assert.True(t, p.HasCoordinates())
	})

	t.Run("numeric id", func(t *testing.T) {
		var row places.Row
		require.NoError(t, json.Unmarshal([]byte(`{"id":42,"name":"x"}`), &row))
		p := places.NormalizeRow(row)
		assert.Equal(t, "42", p.ID)
	})

	t.Run("missing id generates one", func(t *testing.T) {
		p := places.NormalizeRow(places.Row{Name: "no id"})
		assert.NotEmpty(t, p.ID)
		other := places.NormalizeRow(places.Row{Name: "no id"})
		assert.NotEqual(t, p.ID, other.ID)
	})

	t.Run("empty string coordinates become nil", func(t *testing.T) {
		var row places.Row
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p2","lng":"","lat":""}`), &row))
		p := places.NormalizeRow(row)
		assert.Nil(t, p.Lng)
		assert.Nil(t, p.Lat)
		assert.False(t, p.HasCoordinates())
	})

	t.Run("string coordinates parse", func(t *testing.T) {
		var row places.Row
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p3","lng":"104.1","lat":"30.5"}`), &row))
		p := places.NormalizeRow(row)
		require.NotNil(t, p.Lng)
		assert.Equal(t, 104.1, *p.Lng)
		assert.True(t, p.HasCoordinates())
	})

	t.Run("camelCase updatedAt accepted", func(t *testing.T) {
		var row places.Row
		require.NoError(t, json.Unmarshal([]byte(`{"id":"p4","updatedAt":"2024-01-01T00:00:00Z"}`), &row))
		p := places.NormalizeRow(row)
		assert.Equal(t, "2024-01-01T00:00:00Z", p.UpdatedAt)
	})
}

func TestNormalizeIdempotent(t *testing.T) {
	p := places.Place{
		ID:   "p1",
		Name: "A",
		Lng:  places.Float64(104.06),
		Lat:  places.Float64(30.67),
	}
	once := places.Normalize(p)
	twice := places.Normalize(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeDropsNonFinite(t *testing.T) {
	p := places.Normalize(places.Place{
		ID:  "p1",
		Lng: places.Float64(math.NaN()),
		Lat: places.Float64(30.0),
	})
	assert.Nil(t, p.Lng)
	assert.False(t, p.HasCoordinates())
}

func TestHasCoordinatesHalfPair(t *testing.T) {
	onlyLng := places.Place{ID: "a", Lng: places.Float64(104.0)}
	onlyLat := places.Place{ID: "b", Lat: places.Float64(30.0)}
	assert.False(t, onlyLng.HasCoordinates())
	assert.False(t, onlyLat.HasCoordinates())

	_, ok := onlyLng.Coordinates()
	assert.False(t, ok)
}

func TestClone(t *testing.T) {
	orig := []places.Place{{ID: "a", Lng: places.Float64(1), Lat: places.Float64(2)}}
	cp := places.Clone(orig)
	*cp[0].Lng = 99
	assert.Equal(t, 1.0, *orig[0].Lng)
}
