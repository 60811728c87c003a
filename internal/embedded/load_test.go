package embedded_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodmap/foodmap/internal/embedded"
)

func TestPlaces(t *testing.T) {
	items := embedded.Places()
	require.NotEmpty(t, items)

	for _, p := range items {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
	}
}

func TestPlacesNullLocation(t *testing.T) {
	items := embedded.Places()

	var withCoords, withoutCoords int
	for _, p := range items {
		if p.HasCoordinates() {
			withCoords++
		} else {
			withoutCoords++
		}
	}
	assert.NotZero(t, withCoords)
	assert.NotZero(t, withoutCoords, "snapshot should carry a null-location row")
}

func TestPlacesReturnsCopies(t *testing.T) {
	first := embedded.Places()
	require.NotEmpty(t, first)
	first[0].Name = "mutated"

	second := embedded.Places()
	assert.NotEqual(t, "mutated", second[0].Name)
}
