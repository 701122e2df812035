package geo

import (
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/numpang/numpang/internal/utils"
)

// cellPrecision is the geohash precision used for the search prefilter.
// At precision 3 a cell spans roughly 156 km, so a cell plus its neighbors
// always covers the configured proximity radius and the prefilter can never
// exclude a ride the haversine check would accept.
const cellPrecision = 3

// Coordinate is a resolved city center
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// cities maps normalized city names to their center coordinates.
// Lookup is a static table; unknown names resolve to "not found",
// never to an error, and the caller falls back to string matching.
var cities = map[string]Coordinate{
	"jakarta":     {-6.200000, 106.816666},
	"bandung":     {-6.914744, 107.609810},
	"semarang":    {-6.966667, 110.416664},
	"yogyakarta":  {-7.797068, 110.370529},
	"surabaya":    {-7.257472, 112.752090},
	"malang":      {-7.966620, 112.632629},
	"bogor":       {-6.597147, 106.806038},
	"bekasi":      {-6.238270, 106.975571},
	"tangerang":   {-6.178306, 106.631889},
	"depok":       {-6.400550, 106.818924},
	"cirebon":     {-6.732023, 108.552315},
	"solo":        {-7.575489, 110.824326},
	"purwokerto":  {-7.424460, 109.239639},
	"tegal":       {-6.869732, 109.140350},
	"pekalongan":  {-6.888600, 109.675200},
	"tasikmalaya": {-7.327412, 108.220985},
	"sukabumi":    {-6.927228, 106.929985},
	"serang":      {-6.120000, 106.150276},
	"cilegon":     {-6.002739, 106.011086},
	"garut":       {-7.227906, 107.908699},
	"denpasar":    {-8.650000, 115.216667},
	"medan":       {3.597031, 98.678513},
	"palembang":   {-2.990934, 104.756554},
	"lampung":     {-5.450000, 105.266670},
	"makassar":    {-5.147665, 119.432732},
}

// Resolve looks up a free-text city name, case-insensitive and trimmed.
// The second return value reports whether the city is known.
func Resolve(name string) (Coordinate, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	coord, ok := cities[normalized]
	return coord, ok
}

// CellOf returns the geohash cell of a coordinate at the prefilter precision
func CellOf(coord Coordinate) string {
	return geohash.EncodeWithPrecision(coord.Latitude, coord.Longitude, cellPrecision)
}

// CellOfPoint returns the geohash cell of a raw lat/lng pair
func CellOfPoint(latitude, longitude float64) string {
	return geohash.EncodeWithPrecision(latitude, longitude, cellPrecision)
}

// CellWithNeighbors returns the cell of a coordinate plus its eight neighbors
func CellWithNeighbors(coord Coordinate) map[string]struct{} {
	center := CellOf(coord)
	cells := make(map[string]struct{}, 9)
	cells[center] = struct{}{}
	for _, n := range utils.GetNeighbors(center) {
		cells[n] = struct{}{}
	}
	return cells
}
