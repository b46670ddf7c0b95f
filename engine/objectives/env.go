package objectives

import (
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// Env is the environment objective expressions are evaluated against.
// Players are addressed by their numeric codes 1 and 2.
type Env struct {
	Turn   int
	Phase  string
	Active int

	s *state.GameState
}

// NewEnv snapshots the scalar fields of s and keeps s for the queries.
func NewEnv(s *state.GameState) Env {
	return Env{
		Turn:   s.Turn,
		Phase:  s.Phase.String(),
		Active: int(s.ActivePlayer),
		s:      s,
	}
}

// Alive returns how many living units player p has.
func (e Env) Alive(p int) int {
	if e.s == nil {
		return 0
	}
	return e.s.Alive(types.Player(p))
}

// Occupies reports whether a living unit of player p stands on (q, r).
func (e Env) Occupies(p, q, r int) bool {
	if e.s == nil {
		return false
	}
	u, ok := e.s.UnitAt(hex.New(q, r))
	return ok && u.Owner == types.Player(p)
}

// UnitAlive reports whether the unit with the given id exists and is not
// destroyed.
func (e Env) UnitAlive(id int) bool {
	if e.s == nil {
		return false
	}
	u, ok := e.s.Unit(id)
	return ok && !u.IsDestroyed()
}

// Titans returns how many living titans player p has.
func (e Env) Titans(p int) int {
	if e.s == nil {
		return 0
	}
	n := 0
	for _, u := range e.s.PlayerUnits(types.Player(p)) {
		if u.Type.IsTitan() {
			n++
		}
	}
	return n
}
