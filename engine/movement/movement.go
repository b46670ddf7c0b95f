// Package movement answers where a unit may go: the set of hexes it can
// reach with its remaining movement points and the cheapest path to a
// given hex. Both searches read the current game state and never modify it.
package movement

import (
	"container/heap"
	"strconv"

	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// MoveCost returns the cost to step into to. Cost depends only on the
// destination terrain.
func MoveCost(s *state.GameState, from, to hex.Coord) (int, bool) {
	return s.Map.MoveCost(to)
}

// CanPassThrough reports whether mover may transit c: the hex is on the
// map, not impassable, and empty, held by mover itself, or held by a
// friendly unit.
func CanPassThrough(s *state.GameState, c hex.Coord, mover *state.Unit) bool {
	if !s.Map.IsValid(c) || s.Map.TerrainAt(c) == types.Impassable {
		return false
	}
	occupant, ok := s.UnitAt(c)
	if !ok || occupant.ID == mover.ID {
		return true
	}
	return occupant.Owner == mover.Owner
}

// IsBlocked reports whether the unit moverID may not end its move on c.
// Any other unit, friend or foe, blocks stopping.
func IsBlocked(s *state.GameState, c hex.Coord, moverID int) bool {
	if !s.Map.IsValid(c) || s.Map.TerrainAt(c) == types.Impassable {
		return true
	}
	occupant, ok := s.UnitAt(c)
	return ok && occupant.ID != moverID
}

// FindReachable returns every hex unit can end its move on, mapped to the
// movement points left on arrival. The unit's own hex is always included.
func FindReachable(s *state.GameState, unit *state.Unit) map[hex.Coord]int {
	start := unit.Position
	budget := unit.EffectiveMovement()

	reachable := make(map[hex.Coord]int)
	visited := make(map[hex.Coord]bool)
	open := &frontier{{coord: start}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(pathNode)
		if visited[cur.coord] {
			continue
		}
		visited[cur.coord] = true
		reachable[cur.coord] = budget - cur.cost

		for _, n := range cur.coord.Neighbors() {
			if visited[n] || !CanPassThrough(s, n, unit) {
				continue
			}
			step, ok := MoveCost(s, cur.coord, n)
			if !ok {
				continue
			}
			cost := cur.cost + step
			if cost > budget {
				continue
			}
			heap.Push(open, pathNode{coord: n, cost: cost, priority: cost})
		}
	}

	// Friendly hexes were only reachable in passing.
	for c := range reachable {
		if c != start && IsBlocked(s, c, unit.ID) {
			delete(reachable, c)
		}
	}
	return reachable
}

// FindPath returns the cheapest path from unit's position to target,
// including both endpoints, and its cost. budget caps the cost; pass a
// negative budget to use the unit's remaining movement. ok is false when
// the target cannot be stopped on or is out of reach.
func FindPath(s *state.GameState, unit *state.Unit, target hex.Coord, budget int) (path []hex.Coord, cost int, ok bool) {
	start := unit.Position
	if budget < 0 {
		budget = unit.EffectiveMovement()
	}
	if start == target {
		return []hex.Coord{start}, 0, true
	}
	if IsBlocked(s, target, unit.ID) {
		return nil, 0, false
	}

	cameFrom := make(map[hex.Coord]hex.Coord)
	g := map[hex.Coord]int{start: 0}
	open := &frontier{{coord: start, priority: hex.Distance(start, target)}}
	heap.Init(open)

	for open.Len() > 0 {
		cur := heap.Pop(open).(pathNode)
		if cur.coord == target {
			return buildPath(cameFrom, start, target), g[target], true
		}
		if cur.cost > g[cur.coord] {
			continue // stale entry
		}

		for _, n := range cur.coord.Neighbors() {
			if !CanPassThrough(s, n, unit) {
				continue
			}
			step, ok := MoveCost(s, cur.coord, n)
			if !ok {
				continue
			}
			tentative := cur.cost + step
			if tentative > budget {
				continue
			}
			if best, seen := g[n]; seen && tentative >= best {
				continue
			}
			cameFrom[n] = cur.coord
			g[n] = tentative
			heap.Push(open, pathNode{
				coord:    n,
				cost:     tentative,
				priority: tentative + hex.Distance(n, target),
			})
		}
	}
	return nil, 0, false
}

func buildPath(cameFrom map[hex.Coord]hex.Coord, start, target hex.Coord) []hex.Coord {
	path := []hex.Coord{target}
	for cur := target; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SuggestFacing returns the direction from from to to, or East when they
// are the same hex.
func SuggestFacing(from, to hex.Coord) hex.Facing {
	f, ok := from.DirectionTo(to)
	if !ok {
		return hex.East
	}
	return f
}

// PathCost sums the entry cost of every hex after the first.
func PathCost(s *state.GameState, path []hex.Coord) (int, bool) {
	total := 0
	for i := 1; i < len(path); i++ {
		step, ok := MoveCost(s, path[i-1], path[i])
		if !ok {
			return 0, false
		}
		total += step
	}
	return total, true
}

// VerifyPath checks a caller-supplied path for unit against the same rules
// the searches use: it starts on the unit, each step is adjacent and
// passable, and the total cost fits the unit's remaining movement.
func VerifyPath(s *state.GameState, unit *state.Unit, path []hex.Coord) error {
	if len(path) == 0 {
		return apperrors.New(apperrors.CodeEmptyPath, "path is empty")
	}
	if path[0] != unit.Position {
		return apperrors.WithMetadata(apperrors.CodePathStartMismatch, "path does not start at the unit", map[string]string{
			"unit_id": strconv.Itoa(unit.ID),
			"start":   path[0].String(),
			"at":      unit.Position.String(),
		})
	}
	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		if !prev.IsAdjacent(next) {
			return apperrors.WithMetadata(apperrors.CodePathDiscontinuous, "path steps are not adjacent", map[string]string{
				"from": prev.String(),
				"to":   next.String(),
			})
		}
		if !CanPassThrough(s, next, unit) {
			return apperrors.WithMetadata(apperrors.CodePathBlocked, "path crosses an impassable or enemy hex", map[string]string{
				"at": next.String(),
			})
		}
	}
	total, _ := PathCost(s, path)
	if total > unit.EffectiveMovement() {
		return apperrors.WithMetadata(apperrors.CodePathOverBudget, "path costs more than the unit's remaining movement", map[string]string{
			"cost":   strconv.Itoa(total),
			"budget": strconv.Itoa(unit.EffectiveMovement()),
		})
	}
	return nil
}
