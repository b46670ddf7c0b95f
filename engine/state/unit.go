package state

import (
	"fmt"

	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

// Unit is a battlefield entity. Armor, structure and shields start at the
// class base values and only decrease through combat.
type Unit struct {
	ID                int
	Type              types.UnitType
	Owner             types.Player
	Position          hex.Coord
	Facing            hex.Facing
	Armor             int
	Structure         int
	VoidShields       int
	MovementRemaining int
	HasMoved          bool
	HasAttacked       bool
}

// NewUnit creates a unit at full strength with a full movement budget.
func NewUnit(id int, typ types.UnitType, owner types.Player, pos hex.Coord, facing hex.Facing) *Unit {
	stats := typ.Stats()
	return &Unit{
		ID:                id,
		Type:              typ,
		Owner:             owner,
		Position:          pos,
		Facing:            facing,
		Armor:             stats.Armor,
		Structure:         stats.Structure,
		VoidShields:       stats.VoidShields,
		MovementRemaining: stats.Movement,
	}
}

// IsDestroyed reports whether the unit's structure is exhausted.
func (u *Unit) IsDestroyed() bool {
	return u.Structure <= 0
}

// ResetForTurn refills movement and clears the per-turn flags.
func (u *Unit) ResetForTurn() {
	u.MovementRemaining = u.Type.BaseMovement()
	u.HasMoved = false
	u.HasAttacked = false
}

// SpriteFrame returns the atlas frame name for the unit's current facing.
func (u *Unit) SpriteFrame() string {
	return fmt.Sprintf("%s_%s_0000", u.Type.SpriteKey(), u.Facing.SpriteDirection())
}

// Clone returns a copy of the unit.
func (u *Unit) Clone() *Unit {
	c := *u
	return &c
}

// EffectiveMovement returns the movement budget available for this turn.
func (u *Unit) EffectiveMovement() int {
	return u.MovementRemaining
}
