// Package hex implements the axial hex grid: coordinates, directions,
// distance, lines, rounding and pixel conversion.
//
// Coordinates are axial (q, r). The redundant cube form (x, y, z) with
// x+y+z = 0 is used only for distance and rounding arithmetic.
package hex

import (
	"fmt"
	"math"
)

// Coord is an axial hex coordinate. Coordinates are unbounded; whether a
// coordinate is playable is decided by the map, not by the coordinate.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Cube is the cube form of a Coord. X+Y+Z is always 0.
type Cube struct {
	X int
	Y int
	Z int
}

// New returns the coordinate (q, r).
func New(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// Origin is the hex at (0, 0).
var Origin = Coord{}

// Directions holds the six axial neighbor offsets, indexed by Facing:
// E, NE, NW, W, SW, SE.
var Directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// S returns the implicit third axial coordinate, -q-r.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Cube converts to cube coordinates (x = q, y = -q-r, z = r).
func (c Coord) Cube() Cube {
	return Cube{X: c.Q, Y: -c.Q - c.R, Z: c.R}
}

// Axial converts back to axial coordinates.
func (c Cube) Axial() Coord {
	return Coord{Q: c.X, R: c.Z}
}

// Add returns c + o.
func (c Coord) Add(o Coord) Coord {
	return Coord{Q: c.Q + o.Q, R: c.R + o.R}
}

// Sub returns c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{Q: c.Q - o.Q, R: c.R - o.R}
}

// String formats the coordinate as "(q,r)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// Neighbors returns the six adjacent coordinates in E, NE, NW, W, SW, SE order.
func (c Coord) Neighbors() [6]Coord {
	var result [6]Coord
	for i, dir := range Directions {
		result[i] = c.Add(dir)
	}
	return result
}

// Neighbor returns the adjacent coordinate in the given direction.
func (c Coord) Neighbor(f Facing) Coord {
	return c.Add(Directions[f.Index()])
}

// Distance returns the hex distance between two coordinates:
// (|dx| + |dy| + |dz|) / 2 in cube space.
func Distance(a, b Coord) int {
	ac, bc := a.Cube(), b.Cube()
	return (abs(ac.X-bc.X) + abs(ac.Y-bc.Y) + abs(ac.Z-bc.Z)) / 2
}

// DistanceTo returns the hex distance from c to o.
func (c Coord) DistanceTo(o Coord) int {
	return Distance(c, o)
}

// IsAdjacent reports whether o is one of c's six neighbors.
func (c Coord) IsAdjacent(o Coord) bool {
	return Distance(c, o) == 1
}

// DirectionTo returns the facing that best points from c towards target.
// The angle is taken in the pixel projection (screen y grows downwards),
// split into six 60° sectors centred on the primitive directions.
// ok is false when target == c.
func (c Coord) DirectionTo(target Coord) (f Facing, ok bool) {
	if c == target {
		return East, false
	}
	x, y := target.Sub(c).ToPixel(1)
	angle := math.Atan2(-y, x)
	normalized := math.Mod(angle+2*math.Pi, 2*math.Pi)
	index := int(math.Floor(normalized/(math.Pi/3)+0.5)) % 6
	return Facing(index), true
}

// LineTo returns every hex on the straight line from c to target, both
// endpoints included. The line has Distance(c, target)+1 entries.
func (c Coord) LineTo(target Coord) []Coord {
	n := Distance(c, target)
	if n == 0 {
		return []Coord{c}
	}

	results := make([]Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		q := float64(c.Q) + float64(target.Q-c.Q)*t
		r := float64(c.R) + float64(target.R-c.R)*t
		results = append(results, Round(q, r))
	}
	return results
}

// Round snaps fractional axial coordinates to the nearest hex. Each cube
// component is rounded independently and the one with the largest rounding
// error is recomputed from the other two.
func Round(q, r float64) Coord {
	s := -q - r

	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	qDiff := math.Abs(rq - q)
	rDiff := math.Abs(rr - r)
	sDiff := math.Abs(rs - s)

	if qDiff > rDiff && qDiff > sDiff {
		rq = -rr - rs
	} else if rDiff > sDiff {
		rr = -rq - rs
	}

	return Coord{Q: int(rq), R: int(rr)}
}

// ToPixel returns the centre of the hex in pixel space for the given hex
// size (centre-to-corner distance):
//
//	x = size * (√3·q + √3/2·r)
//	y = size * (3/2·r)
func (c Coord) ToPixel(size float64) (x, y float64) {
	x = size * (math.Sqrt(3)*float64(c.Q) + math.Sqrt(3)/2*float64(c.R))
	y = size * (3.0 / 2.0 * float64(c.R))
	return x, y
}

// FromPixel returns the hex containing the pixel (x, y). It is the inverse
// of ToPixel for the same size.
func FromPixel(x, y, size float64) Coord {
	q := (math.Sqrt(3)/3*x - 1.0/3.0*y) / size
	r := (2.0 / 3.0 * y) / size
	return Round(q, r)
}

// Corners returns the six corner points of a hex centred at (cx, cy),
// starting 30 degrees below the East edge midpoint to match ToPixel's
// pointy-top layout.
func Corners(cx, cy, size float64) [6][2]float64 {
	var corners [6][2]float64
	for i := range corners {
		angle := math.Pi/6 + math.Pi/3*float64(i)
		corners[i] = [2]float64{cx + size*math.Cos(angle), cy + size*math.Sin(angle)}
	}
	return corners
}

// RectCoords generates the playable coordinate set of a width x height
// board: row r spans q from -floor(r/2) to width-1-floor(r/2).
func RectCoords(width, height int) []Coord {
	if width <= 0 || height <= 0 {
		return nil
	}
	coords := make([]Coord, 0, width*height)
	for r := 0; r < height; r++ {
		offset := r / 2
		for q := -offset; q < width-offset; q++ {
			coords = append(coords, Coord{Q: q, R: r})
		}
	}
	return coords
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
