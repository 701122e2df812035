package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_KnownCity(t *testing.T) {
	coord, ok := Resolve("Jakarta")
	require.True(t, ok)
	assert.InDelta(t, -6.2, coord.Latitude, 0.01)
	assert.InDelta(t, 106.82, coord.Longitude, 0.01)
}

func TestResolve_CaseAndWhitespaceInsensitive(t *testing.T) {
	lower, ok := Resolve("bandung")
	require.True(t, ok)

	padded, ok := Resolve("  BANDUNG  ")
	require.True(t, ok)

	assert.Equal(t, lower, padded)
}

func TestResolve_UnknownCity(t *testing.T) {
	_, ok := Resolve("Atlantis")
	assert.False(t, ok)
}

func TestCellOf_IsStable(t *testing.T) {
	coord, ok := Resolve("jakarta")
	require.True(t, ok)

	assert.Equal(t, CellOf(coord), CellOf(coord))
	assert.Len(t, CellOf(coord), cellPrecision)
}

func TestCellOfPoint_MatchesCellOf(t *testing.T) {
	coord, ok := Resolve("surabaya")
	require.True(t, ok)

	assert.Equal(t, CellOf(coord), CellOfPoint(coord.Latitude, coord.Longitude))
}

func TestCellWithNeighbors_CoversCenter(t *testing.T) {
	coord, ok := Resolve("semarang")
	require.True(t, ok)

	cells := CellWithNeighbors(coord)
	assert.Len(t, cells, 9)
	assert.Contains(t, cells, CellOf(coord))
}

func TestCellWithNeighbors_CoversNearbyPoints(t *testing.T) {
	jakarta, ok := Resolve("jakarta")
	require.True(t, ok)

	cells := CellWithNeighbors(jakarta)

	// Depok and Bekasi sit well inside the proximity radius; whatever cell
	// they land in must be covered by Jakarta's cell or a neighbor
	for _, name := range []string{"depok", "bekasi", "tangerang"} {
		coord, ok := Resolve(name)
		require.True(t, ok)
		assert.Contains(t, cells, CellOf(coord), "city %s", name)
	}
}
