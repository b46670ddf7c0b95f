package host

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nathoo/titanhunt/engine/state"
)

// AmbiguityError indicates multiple units matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []int
}

func (e *AmbiguityError) Error() string {
	ids := make([]string, len(e.Candidates))
	for i, id := range e.Candidates {
		ids[i] = strconv.Itoa(id)
	}
	return fmt.Sprintf("which %s? (units %s)", e.Name, strings.Join(ids, ", "))
}

// NotFoundError indicates no unit matched a name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no unit called %q", e.Name)
}

// ResolveUnit maps a unit name to an id. Living units of the active player
// are searched first, then every living unit.
func ResolveUnit(s *state.GameState, name string) (int, error) {
	nameLower := strings.ToLower(strings.TrimSpace(name))

	// 1. Exact id.
	if id, err := strconv.Atoi(nameLower); err == nil {
		if _, ok := s.Unit(id); ok {
			return id, nil
		}
		return 0, &NotFoundError{Name: name}
	}

	// 2. Own units, then anyone's.
	for _, pool := range [][]*state.Unit{s.PlayerUnits(s.ActivePlayer), living(s)} {
		var matches []int
		for _, u := range pool {
			if matchesName(u, nameLower) {
				matches = append(matches, u.ID)
			}
		}
		sort.Ints(matches)
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return 0, &AmbiguityError{Name: name, Candidates: matches}
		}
	}
	return 0, &NotFoundError{Name: name}
}

func living(s *state.GameState) []*state.Unit {
	var out []*state.Unit
	for _, u := range s.Units {
		if !u.IsDestroyed() {
			out = append(out, u)
		}
	}
	return out
}

// matchesName checks the display name, any word of it, and the sprite key.
// "reaver", "reaver titan", "reaver_titan" and "titan" all match a Reaver.
func matchesName(u *state.Unit, nameLower string) bool {
	display := strings.ToLower(u.Type.DisplayName())
	if display == nameLower {
		return true
	}
	for _, word := range strings.Fields(display) {
		if word == nameLower {
			return true
		}
	}
	key := strings.ToLower(u.Type.SpriteKey())
	if key == nameLower {
		return true
	}
	// Underscore normalization: "reaver titan" matches "reaver_titan".
	return strings.ReplaceAll(nameLower, " ", "_") == key
}
