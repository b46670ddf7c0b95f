// Package board holds the battlefield map: a fixed set of hex coordinates,
// each carrying a terrain type and an elevation.
package board

import (
	"strconv"

	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

// Tile is the content of one map hex. Elevation is carried for future
// line-of-sight rules and does not affect movement.
type Tile struct {
	Terrain   types.TerrainType `json:"terrain"`
	Elevation int               `json:"elevation"`
}

// Map is a finite set of tiles keyed by coordinate. The coordinate set is
// fixed at construction; tile contents may be edited.
type Map struct {
	width  int
	height int
	tiles  map[hex.Coord]Tile
	coords []hex.Coord
}

// New builds a width x height map of Clear tiles at elevation 0. Row r
// spans columns -floor(r/2) through width-1-floor(r/2).
func New(width, height int) *Map {
	coords := hex.RectCoords(width, height)
	tiles := make(map[hex.Coord]Tile, len(coords))
	for _, c := range coords {
		tiles[c] = Tile{Terrain: types.Clear}
	}
	return &Map{
		width:  width,
		height: height,
		tiles:  tiles,
		coords: coords,
	}
}

// Size returns the width and height the map was built with.
func (m *Map) Size() (width, height int) {
	return m.width, m.height
}

// Len returns the number of valid coordinates.
func (m *Map) Len() int {
	return len(m.coords)
}

// IsValid reports whether c belongs to the map.
func (m *Map) IsValid(c hex.Coord) bool {
	_, ok := m.tiles[c]
	return ok
}

// Tile returns the tile at c.
func (m *Map) Tile(c hex.Coord) (Tile, bool) {
	t, ok := m.tiles[c]
	return t, ok
}

// TerrainAt returns the terrain at c, or Impassable when c is off the map.
func (m *Map) TerrainAt(c hex.Coord) types.TerrainType {
	t, ok := m.tiles[c]
	if !ok {
		return types.Impassable
	}
	return t.Terrain
}

// MoveCost returns the cost to enter c. ok is false when c is off the map
// or impassable.
func (m *Map) MoveCost(c hex.Coord) (cost int, ok bool) {
	return m.TerrainAt(c).MoveCost()
}

// SetTerrain changes the terrain of an existing tile.
func (m *Map) SetTerrain(c hex.Coord, terrain types.TerrainType) error {
	t, ok := m.tiles[c]
	if !ok {
		return coordNotFound(c)
	}
	t.Terrain = terrain
	m.tiles[c] = t
	return nil
}

// SetElevation changes the elevation of an existing tile.
func (m *Map) SetElevation(c hex.Coord, elevation int) error {
	t, ok := m.tiles[c]
	if !ok {
		return coordNotFound(c)
	}
	t.Elevation = elevation
	m.tiles[c] = t
	return nil
}

// Coords returns every valid coordinate, row by row, in ascending q within
// each row. The slice is a copy.
func (m *Map) Coords() []hex.Coord {
	out := make([]hex.Coord, len(m.coords))
	copy(out, m.coords)
	return out
}

// CountTerrain returns how many tiles carry each terrain type.
func (m *Map) CountTerrain() map[types.TerrainType]int {
	counts := make(map[types.TerrainType]int)
	for _, c := range m.coords {
		counts[m.tiles[c].Terrain]++
	}
	return counts
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	tiles := make(map[hex.Coord]Tile, len(m.tiles))
	for c, t := range m.tiles {
		tiles[c] = t
	}
	coords := make([]hex.Coord, len(m.coords))
	copy(coords, m.coords)
	return &Map{width: m.width, height: m.height, tiles: tiles, coords: coords}
}

func coordNotFound(c hex.Coord) error {
	return apperrors.WithMetadata(apperrors.CodeCoordNotFound, "coordinate is not on the map", map[string]string{
		"q": strconv.Itoa(c.Q),
		"r": strconv.Itoa(c.R),
	})
}
