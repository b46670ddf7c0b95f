package types

import (
	"fmt"

	"github.com/nathoo/titanhunt/engine/hex"
)

// Command is a request to change game state. The set of commands is
// closed: Move, EndPhase and EndTurn.
type Command interface {
	command()
	// Name is a short label used in logs.
	Name() string
}

// Move relocates a unit along Path, ending with the given facing. Path
// includes the unit's starting hex.
type Move struct {
	UnitID int         `json:"unit_id"`
	Path   []hex.Coord `json:"path"`
	Facing hex.Facing  `json:"final_facing"`
}

// EndPhase advances to the next phase.
type EndPhase struct{}

// EndTurn ends the current turn regardless of phase.
type EndTurn struct{}

func (Move) command()     {}
func (EndPhase) command() {}
func (EndTurn) command()  {}

func (Move) Name() string     { return "move" }
func (EndPhase) Name() string { return "end_phase" }
func (EndTurn) Name() string  { return "end_turn" }

// Destination returns the last hex of the path.
func (m Move) Destination() (hex.Coord, bool) {
	if len(m.Path) == 0 {
		return hex.Coord{}, false
	}
	return m.Path[len(m.Path)-1], true
}

// EventType names an event variant.
type EventType string

const (
	EventUnitMoved     EventType = "unit_moved"
	EventPhaseChanged  EventType = "phase_changed"
	EventTurnChanged   EventType = "turn_changed"
	EventUnitDestroyed EventType = "unit_destroyed"
)

// Event is the output of a committed command. The set of events is
// closed: UnitMoved, PhaseChanged, TurnChanged and UnitDestroyed.
type Event interface {
	Type() EventType
}

// UnitMoved records a completed move.
type UnitMoved struct {
	UnitID int        `json:"unit_id"`
	From   hex.Coord  `json:"from"`
	To     hex.Coord  `json:"to"`
	Facing hex.Facing `json:"facing"`
}

// PhaseChanged records a phase transition.
type PhaseChanged struct {
	From Phase `json:"from"`
	To   Phase `json:"to"`
}

// TurnChanged carries the new turn number.
type TurnChanged struct {
	Turn int `json:"turn"`
}

// UnitDestroyed records a unit whose structure reached zero.
type UnitDestroyed struct {
	UnitID int `json:"unit_id"`
}

func (UnitMoved) Type() EventType     { return EventUnitMoved }
func (PhaseChanged) Type() EventType  { return EventPhaseChanged }
func (TurnChanged) Type() EventType   { return EventTurnChanged }
func (UnitDestroyed) Type() EventType { return EventUnitDestroyed }

func (e UnitMoved) String() string {
	return fmt.Sprintf("unit %d moved %v -> %v facing %v", e.UnitID, e.From, e.To, e.Facing)
}

func (e PhaseChanged) String() string {
	return fmt.Sprintf("phase %v -> %v", e.From, e.To)
}

func (e TurnChanged) String() string {
	return fmt.Sprintf("turn %d", e.Turn)
}

func (e UnitDestroyed) String() string {
	return fmt.Sprintf("unit %d destroyed", e.UnitID)
}
