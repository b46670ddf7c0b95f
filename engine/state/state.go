// Package state holds the authoritative game aggregate: the map, the units
// and the turn bookkeeping. It exposes queries only; every change to a
// GameState goes through the engine's command pipeline.
package state

import (
	"strconv"

	"github.com/nathoo/titanhunt/engine/board"
	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

// GameState is the aggregate root of one game. It exclusively owns its map
// and units.
type GameState struct {
	Map          *board.Map
	Units        []*Unit
	Turn         int
	Phase        types.Phase
	ActivePlayer types.Player
	Selected     *int
	Events       []types.Event
	GameOver     bool
	Winner       types.Player // zero when no winner
}

// New creates a fresh game on m: turn 1, Deployment phase, Player 1 to act.
func New(m *board.Map) *GameState {
	return &GameState{
		Map:          m,
		Units:        []*Unit{},
		Turn:         1,
		Phase:        types.Deployment,
		ActivePlayer: types.Player1,
		Events:       []types.Event{},
	}
}

// AddUnit appends u. Ids are unique within a game.
func (s *GameState) AddUnit(u *Unit) error {
	if _, ok := s.Unit(u.ID); ok {
		return apperrors.WithMetadata(apperrors.CodeDuplicateUnit, "unit id already in use", map[string]string{
			"unit_id": strconv.Itoa(u.ID),
		})
	}
	s.Units = append(s.Units, u)
	return nil
}

// Unit returns the unit with the given id, destroyed or not.
func (s *GameState) Unit(id int) (*Unit, bool) {
	for _, u := range s.Units {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// UnitAt returns the first living unit standing on c.
func (s *GameState) UnitAt(c hex.Coord) (*Unit, bool) {
	for _, u := range s.Units {
		if u.Position == c && !u.IsDestroyed() {
			return u, true
		}
	}
	return nil, false
}

// PlayerUnits returns the living units owned by p, in insertion order.
func (s *GameState) PlayerUnits(p types.Player) []*Unit {
	var out []*Unit
	for _, u := range s.Units {
		if u.Owner == p && !u.IsDestroyed() {
			out = append(out, u)
		}
	}
	return out
}

// Alive returns the number of living units owned by p.
func (s *GameState) Alive(p types.Player) int {
	n := 0
	for _, u := range s.Units {
		if u.Owner == p && !u.IsDestroyed() {
			n++
		}
	}
	return n
}

// SelectedUnit returns the selected unit, if any. Selection is a UI
// convenience and has no effect on the rules.
func (s *GameState) SelectedUnit() (*Unit, bool) {
	if s.Selected == nil {
		return nil, false
	}
	return s.Unit(*s.Selected)
}

// HasWinner reports whether a victory check declared a winner.
func (s *GameState) HasWinner() bool {
	return s.Winner.Valid()
}

// ResetUnits restores every unit's per-turn state.
func (s *GameState) ResetUnits() {
	for _, u := range s.Units {
		u.ResetForTurn()
	}
}
