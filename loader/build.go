package loader

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"

	"github.com/nathoo/titanhunt/engine"
	"github.com/nathoo/titanhunt/engine/board"
	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/mapgen"
	"github.com/nathoo/titanhunt/engine/objectives"
	"github.com/nathoo/titanhunt/types"
)

// Build creates an engine from sc: terrain first (generated when Seed is
// set, then the scenario's own patches in file order), then units, then
// objectives. Any failure is an INVALID_SCENARIO error.
func Build(sc *Scenario, opts engine.Options) (*engine.Engine, error) {
	m := board.New(sc.Width, sc.Height)
	if sc.Seed != 0 {
		gen, err := mapgen.Generate(m, mapgen.DefaultConfig(sc.Seed))
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidScenario, "generate terrain", err)
		}
		slog.Debug("terrain generated", "scenario", sc.Title, "seed", gen.Seed, "rng_draws", gen.RNGDraws)
	}
	applyPatches(m, sc)

	e := engine.New(m, opts)
	for _, u := range sc.Units {
		if m.TerrainAt(u.At) == types.Impassable {
			return nil, apperrors.WithMetadata(apperrors.CodeInvalidScenario, "unit placed on impassable terrain", map[string]string{
				"unit_id": strconv.Itoa(u.ID),
				"at":      u.At.String(),
			})
		}
		if _, err := e.AddUnit(u.ID, u.Type, u.Owner, u.At, u.Facing); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInvalidScenario, fmt.Sprintf("add unit %d", u.ID), err)
		}
	}

	set, err := objectives.Compile(objectiveList(sc.Objectives))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidScenario, "compile objectives", err)
	}
	e.Objectives = set

	if sc.Start {
		e.StartGame()
	}
	return e, nil
}

// applyPatches paints terrain patches and clear zones onto m in the order
// they appeared in the scenario files. Off-map hexes are skipped.
func applyPatches(m *board.Map, sc *Scenario) {
	type step struct {
		order int
		apply func()
	}
	var steps []step
	for _, p := range sc.Terrain {
		p := p
		steps = append(steps, step{p.order, func() {
			for _, c := range p.Hexes {
				if m.SetTerrain(c, p.Terrain) != nil {
					continue
				}
				if p.HasElevation {
					_ = m.SetElevation(c, p.Elevation)
				}
			}
		}})
	}
	for _, z := range sc.ClearZones {
		z := z
		steps = append(steps, step{z.order, func() {
			mapgen.ClearZone(m, z.Center, z.Radius)
		}})
	}
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].order < steps[j].order })
	for _, s := range steps {
		s.apply()
	}
}

func objectiveList(defs []ObjectiveDef) []objectives.Objective {
	out := make([]objectives.Objective, len(defs))
	for i, d := range defs {
		out[i] = objectives.Objective{Name: d.Name, Winner: d.Winner, When: d.When}
	}
	return out
}
