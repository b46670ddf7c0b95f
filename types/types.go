// Package types defines the closed enumerations and value types shared by
// the engine and its hosts: players, phases, unit classes, terrain,
// commands and events. The case sets are fixed; every switch over them is
// exhaustive.
package types

import "fmt"

// Player identifies one of the two sides.
type Player uint8

const (
	Player1 Player = 1
	Player2 Player = 2
)

// Players lists both sides in turn order.
var Players = [2]Player{Player1, Player2}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return p
	}
}

// Valid reports whether p is Player1 or Player2.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "Player 1"
	case Player2:
		return "Player 2"
	default:
		return fmt.Sprintf("Player(%d)", uint8(p))
	}
}

// Phase is a step of the turn cycle.
type Phase uint8

const (
	Deployment Phase = iota
	Movement
	Combat
	End
)

// Next returns the successor phase. End wraps to Movement; Deployment is
// only ever visited once.
func (p Phase) Next() Phase {
	switch p {
	case Deployment:
		return Movement
	case Movement:
		return Combat
	case Combat:
		return End
	default:
		return Movement
	}
}

func (p Phase) String() string {
	switch p {
	case Deployment:
		return "Deployment"
	case Movement:
		return "Movement"
	case Combat:
		return "Combat"
	case End:
		return "End"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}
