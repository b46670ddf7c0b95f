package loader

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/nathoo/titanhunt/engine/board"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/objectives"
	"github.com/nathoo/titanhunt/types"
)

// maxDimension bounds the map so a typo cannot allocate a huge board.
const maxDimension = 256

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// validate checks the compiled scenario for consistency. Warnings are
// logged and kept on the scenario; errors fail the load.
func validate(sc *Scenario) error {
	ve := &ValidationError{}

	if sc.Title == "" {
		ve.errorf("Battlefield.title is required")
	}
	if sc.Width < 1 || sc.Height < 1 || sc.Width > maxDimension || sc.Height > maxDimension {
		ve.errorf("Battlefield size %dx%d out of range (1-%d)", sc.Width, sc.Height, maxDimension)
		return ve
	}

	// Replay the static terrain so unit placement can be checked.
	m := board.New(sc.Width, sc.Height)
	applyPatches(m, sc)

	for _, p := range sc.Terrain {
		for _, c := range p.Hexes {
			if !m.IsValid(c) {
				ve.errorf("terrain %s hex %v is off the map", strings.ToLower(p.Terrain.String()), c)
			}
		}
		if len(p.Hexes) == 0 {
			ve.warnf("terrain %s lists no hexes", strings.ToLower(p.Terrain.String()))
		}
	}
	for _, z := range sc.ClearZones {
		if !m.IsValid(z.Center) {
			ve.errorf("clear zone center %v is off the map", z.Center)
		}
		if z.Radius < 0 {
			ve.errorf("clear zone at %v has negative radius %d", z.Center, z.Radius)
		}
	}

	ids := map[int]bool{}
	occupied := map[hex.Coord]int{}
	for _, u := range sc.Units {
		if ids[u.ID] {
			ve.errorf("duplicate unit id %d", u.ID)
		}
		ids[u.ID] = true

		if !m.IsValid(u.At) {
			ve.errorf("%s placed off the map at %v", unitLabel(u), u.At)
			continue
		}
		if other, ok := occupied[u.At]; ok {
			ve.errorf("%s shares %v with unit %d", unitLabel(u), u.At, other)
		}
		occupied[u.At] = u.ID
		if sc.Seed == 0 && m.TerrainAt(u.At) == types.Impassable {
			ve.errorf("%s placed on impassable terrain at %v", unitLabel(u), u.At)
		}
	}

	for _, p := range types.Players {
		if !hasUnits(sc, p) {
			ve.warnf("%s has no units", p)
		}
	}

	for _, o := range sc.Objectives {
		if o.When == "" {
			ve.errorf("objective %q has no condition", o.Name)
			continue
		}
		if _, err := objectives.Compile(objectiveList([]ObjectiveDef{o})); err != nil {
			ve.errorf("%v", err)
		}
	}

	for _, w := range ve.Warnings {
		slog.Warn("scenario warning", "scenario", sc.Title, "warning", w)
	}
	sc.Warnings = ve.Warnings

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func hasUnits(sc *Scenario, p types.Player) bool {
	for _, u := range sc.Units {
		if u.Owner == p {
			return true
		}
	}
	return false
}
