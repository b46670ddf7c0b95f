// Package objectives evaluates scenario victory conditions. Each objective
// is a boolean expr expression over Env; the first objective that holds
// decides the winner.
package objectives

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// Objective awards the game to Winner when When evaluates true.
type Objective struct {
	Name   string
	Winner types.Player
	When   string

	program *vm.Program
}

// Set is an ordered list of compiled objectives.
type Set struct {
	objectives []*Objective
}

// Compile type-checks every expression against Env.
func Compile(objs []Objective) (*Set, error) {
	set := &Set{}
	for i := range objs {
		o := objs[i]
		if !o.Winner.Valid() {
			return nil, fmt.Errorf("objective %q: winner must be player 1 or 2", o.Name)
		}
		prog, err := expr.Compile(o.When, expr.Env(Env{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile objective %q: %w", o.Name, err)
		}
		o.program = prog
		set.objectives = append(set.objectives, &o)
	}
	return set, nil
}

// Len returns the number of objectives.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.objectives)
}

// Objectives returns the objectives in evaluation order.
func (s *Set) Objectives() []Objective {
	if s == nil {
		return nil
	}
	out := make([]Objective, len(s.objectives))
	for i, o := range s.objectives {
		out[i] = *o
	}
	return out
}

// Evaluate returns the first objective that holds for gs.
func (s *Set) Evaluate(gs *state.GameState) (Objective, bool, error) {
	if s == nil {
		return Objective{}, false, nil
	}
	env := NewEnv(gs)
	for _, o := range s.objectives {
		out, err := vm.Run(o.program, env)
		if err != nil {
			return Objective{}, false, fmt.Errorf("evaluate objective %q: %w", o.Name, err)
		}
		if met, _ := out.(bool); met {
			return *o, true, nil
		}
	}
	return Objective{}, false, nil
}
