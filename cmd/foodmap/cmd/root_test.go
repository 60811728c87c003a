package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "(unset)", mask(""))
	assert.Equal(t, "******", mask("short"))
	assert.Equal(t, "eyJabc…", mask("eyJabcdefghij"))
}

func TestParseCoordFlag(t *testing.T) {
	got, err := parseCoordFlag("lng", "")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = parseCoordFlag("lng", "104.06")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 104.06, *got)

	_, err = parseCoordFlag("lat", "garbage")
	require.Error(t, err)
}

func TestCoordCell(t *testing.T) {
	assert.Equal(t, "", coordCell(nil))
	v := 30.65
	assert.Equal(t, 30.65, coordCell(&v))
}
