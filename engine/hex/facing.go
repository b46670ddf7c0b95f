package hex

import "math"

// Facing is one of the six hex directions, stored as an index 0-5 in
// counter-clockwise order starting at East.
type Facing uint8

const (
	East Facing = iota
	Northeast
	Northwest
	West
	Southwest
	Southeast
)

var facingNames = [6]string{"East", "Northeast", "Northwest", "West", "Southwest", "Southeast"}

// sprite atlas direction suffixes.
var spriteDirections = [6]string{"E", "NE", "NW", "W", "SW", "SE"}

// FacingFromIndex returns the facing for an index in [0, 5].
func FacingFromIndex(index int) (Facing, bool) {
	if index < 0 || index > 5 {
		return East, false
	}
	return Facing(index), true
}

// Index returns the facing's index in [0, 5].
func (f Facing) Index() int {
	return int(f) % 6
}

// Valid reports whether f is one of the six directions.
func (f Facing) Valid() bool {
	return f <= Southeast
}

// Opposite returns the facing pointing the other way.
func (f Facing) Opposite() Facing {
	return f.Rotate(3)
}

// Rotate turns the facing by steps sixths of a turn. Positive steps are
// counter-clockwise, negative steps clockwise.
func (f Facing) Rotate(steps int) Facing {
	return Facing(((f.Index()+steps)%6 + 6) % 6)
}

// RotateCW turns clockwise by steps.
func (f Facing) RotateCW(steps int) Facing {
	return f.Rotate(-steps)
}

// RotateCCW turns counter-clockwise by steps.
func (f Facing) RotateCCW(steps int) Facing {
	return f.Rotate(steps)
}

// Radians returns the facing angle, 0 at East, counter-clockwise.
func (f Facing) Radians() float64 {
	return math.Pi / 3 * float64(f.Index())
}

// SpriteDirection returns the direction suffix used by sprite atlases.
func (f Facing) SpriteDirection() string {
	return spriteDirections[f.Index()]
}

// String returns the facing name.
func (f Facing) String() string {
	if !f.Valid() {
		return "Facing(?)"
	}
	return facingNames[f]
}

// InFrontArc reports whether target lies in the three-hexside cone in front
// of an observer at from with this facing. The observer's own hex counts as
// in front.
func (f Facing) InFrontArc(from, target Coord) bool {
	dir, ok := from.DirectionTo(target)
	if !ok {
		return true
	}
	diff := ((dir.Index()-f.Index())%6 + 6) % 6
	return diff <= 1 || diff >= 5
}
