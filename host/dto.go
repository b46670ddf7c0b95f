package host

import (
	"github.com/nathoo/titanhunt/engine/events"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// HexJSON is a bare coordinate.
type HexJSON struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// Coord converts back to a hex coordinate.
func (h HexJSON) Coord() hex.Coord {
	return hex.New(h.Q, h.R)
}

func toHexJSON(c hex.Coord) HexJSON {
	return HexJSON{Q: c.Q, R: c.R}
}

// ReachableHex is one entry of a move-range overlay.
type ReachableHex struct {
	Q         int `json:"q"`
	R         int `json:"r"`
	Remaining int `json:"remaining"`
}

// PathResult is the answer to a path query. Valid is false when no path
// exists; Path is then empty.
type PathResult struct {
	Path  []HexJSON `json:"path"`
	Cost  int       `json:"cost"`
	Valid bool      `json:"valid"`
}

// MapSize carries the map dimensions.
type MapSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Pixel is a screen position.
type Pixel struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnitView is a unit with its live and maximum values.
type UnitView struct {
	ID                int     `json:"id"`
	UnitType          string  `json:"unit_type"`
	DisplayName       string  `json:"display_name"`
	Owner             int     `json:"owner"`
	Q                 int     `json:"q"`
	R                 int     `json:"r"`
	Facing            int     `json:"facing"`
	FacingRadians     float64 `json:"facing_radians"`
	SpriteFrame       string  `json:"sprite_frame"`
	Armor             int     `json:"armor"`
	MaxArmor          int     `json:"max_armor"`
	Structure         int     `json:"structure"`
	MaxStructure      int     `json:"max_structure"`
	VoidShields       int     `json:"void_shields"`
	MaxVoidShields    int     `json:"max_void_shields"`
	MovementRemaining int     `json:"movement_remaining"`
	MaxMovement       int     `json:"max_movement"`
	HasMoved          bool    `json:"has_moved"`
	HasAttacked       bool    `json:"has_attacked"`
	IsDestroyed       bool    `json:"is_destroyed"`
	IsTitan           bool    `json:"is_titan"`
}

// NewUnitView flattens u for a host.
func NewUnitView(u *state.Unit) UnitView {
	stats := u.Type.Stats()
	return UnitView{
		ID:                u.ID,
		UnitType:          stats.SpriteKey,
		DisplayName:       stats.DisplayName,
		Owner:             PlayerCode(u.Owner),
		Q:                 u.Position.Q,
		R:                 u.Position.R,
		Facing:            u.Facing.Index(),
		FacingRadians:     u.Facing.Radians(),
		SpriteFrame:       u.SpriteFrame(),
		Armor:             u.Armor,
		MaxArmor:          stats.Armor,
		Structure:         u.Structure,
		MaxStructure:      stats.Structure,
		VoidShields:       u.VoidShields,
		MaxVoidShields:    stats.VoidShields,
		MovementRemaining: u.MovementRemaining,
		MaxMovement:       stats.Movement,
		HasMoved:          u.HasMoved,
		HasAttacked:       u.HasAttacked,
		IsDestroyed:       u.IsDestroyed(),
		IsTitan:           stats.Titan,
	}
}

// EventView is a committed event tagged with its type and narration.
type EventView struct {
	Type string      `json:"type"`
	Data types.Event `json:"data"`
	Text string      `json:"text"`
}

func newEventViews(evts []types.Event) []EventView {
	out := make([]EventView, len(evts))
	for i, e := range evts {
		out[i] = EventView{Type: string(e.Type()), Data: e, Text: events.Describe(e)}
	}
	return out
}
