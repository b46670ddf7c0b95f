package types

import "fmt"

// UnitType is a unit class. Base stats are static lookups.
type UnitType uint8

const (
	ReaverTitan UnitType = iota
	WarlordTitan
	Shadowsword
	Shadowsword2
	Shadowsword3
)

// UnitTypes lists every unit class.
var UnitTypes = [...]UnitType{ReaverTitan, WarlordTitan, Shadowsword, Shadowsword2, Shadowsword3}

// UnitStats are the base values of a unit class.
type UnitStats struct {
	Movement    int
	Armor       int
	Structure   int
	VoidShields int
	Titan       bool
	SpriteKey   string
	DisplayName string
}

var unitStats = map[UnitType]UnitStats{
	ReaverTitan: {
		Movement: 6, Armor: 12, Structure: 10, VoidShields: 2, Titan: true,
		SpriteKey: "Reaver_Titan", DisplayName: "Reaver Titan",
	},
	WarlordTitan: {
		Movement: 4, Armor: 16, Structure: 14, VoidShields: 4, Titan: true,
		SpriteKey: "Warlord_Titan", DisplayName: "Warlord Titan",
	},
	Shadowsword: {
		Movement: 5, Armor: 8, Structure: 6,
		SpriteKey: "shadowsword", DisplayName: "Shadowsword",
	},
	Shadowsword2: {
		Movement: 5, Armor: 8, Structure: 6,
		SpriteKey: "shadowsword2", DisplayName: "Shadowsword Mk II",
	},
	Shadowsword3: {
		Movement: 5, Armor: 8, Structure: 6,
		SpriteKey: "shadowsword3", DisplayName: "Shadowsword Mk III",
	},
}

// Stats returns the base stats of the class. Unknown classes yield zero stats.
func (t UnitType) Stats() UnitStats {
	return unitStats[t]
}

// Valid reports whether t is a defined class.
func (t UnitType) Valid() bool {
	_, ok := unitStats[t]
	return ok
}

func (t UnitType) BaseMovement() int  { return t.Stats().Movement }
func (t UnitType) BaseArmor() int     { return t.Stats().Armor }
func (t UnitType) BaseStructure() int { return t.Stats().Structure }
func (t UnitType) VoidShields() int   { return t.Stats().VoidShields }
func (t UnitType) IsTitan() bool      { return t.Stats().Titan }

// SpriteKey returns the sprite atlas key.
func (t UnitType) SpriteKey() string { return t.Stats().SpriteKey }

// DisplayName returns the human-readable class name.
func (t UnitType) DisplayName() string { return t.Stats().DisplayName }

func (t UnitType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("UnitType(%d)", uint8(t))
	}
	return t.DisplayName()
}

// TerrainType classifies a map tile. The zero value is Clear.
type TerrainType uint8

const (
	Clear TerrainType = iota
	Rough
	Woods
	Water
	Ruins
	Impassable
)

// TerrainTypes lists every terrain class.
var TerrainTypes = [...]TerrainType{Clear, Rough, Woods, Water, Ruins, Impassable}

// MoveCost returns the movement points needed to enter a hex of this
// terrain. ok is false for Impassable.
func (t TerrainType) MoveCost() (cost int, ok bool) {
	switch t {
	case Clear:
		return 1, true
	case Rough, Woods, Ruins:
		return 2, true
	case Water:
		return 3, true
	default:
		return 0, false
	}
}

func (t TerrainType) String() string {
	switch t {
	case Clear:
		return "Clear"
	case Rough:
		return "Rough"
	case Woods:
		return "Woods"
	case Water:
		return "Water"
	case Ruins:
		return "Ruins"
	case Impassable:
		return "Impassable"
	default:
		return fmt.Sprintf("TerrainType(%d)", uint8(t))
	}
}
