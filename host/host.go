// Package host adapts the engine to callers that speak strings and plain
// numbers: sprite keys for unit types, 1 and 2 for players, 0-5 for
// facings, and JSON-friendly views for everything returned. The engine
// itself never parses strings.
package host

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/nathoo/titanhunt/engine"
	"github.com/nathoo/titanhunt/engine/board"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/snapshot"
	"github.com/nathoo/titanhunt/types"
)

// Host wraps one engine.
type Host struct {
	Engine *engine.Engine
	// HexSize is the default hex size for pixel conversions.
	HexSize float64
	// AutoVictory runs the victory and objective checks after every
	// committed command.
	AutoVictory bool
}

// New creates a host around a fresh width x height game.
func New(width, height int, opts engine.Options) *Host {
	return Wrap(engine.New(board.New(width, height), opts))
}

// Wrap creates a host around an existing engine.
func Wrap(e *engine.Engine) *Host {
	return &Host{Engine: e, HexSize: 1}
}

// AddUnit places a unit given host-level values.
func (h *Host) AddUnit(id int, unitType string, player int, q, r int, facing int) error {
	typ, err := ParseUnitType(unitType)
	if err != nil {
		return err
	}
	owner, err := ParsePlayer(player)
	if err != nil {
		return err
	}
	f, err := FacingFromIndex(facing)
	if err != nil {
		return err
	}
	_, err = h.Engine.AddUnit(id, typ, owner, hex.New(q, r), f)
	return err
}

// ReachableHexes returns the move-range overlay for a unit, ordered by
// row then column.
func (h *Host) ReachableHexes(unitID int) ([]ReachableHex, error) {
	reach, err := h.Engine.Reachable(unitID)
	if err != nil {
		return nil, err
	}
	out := make([]ReachableHex, 0, len(reach))
	for c, remaining := range reach {
		out = append(out, ReachableHex{Q: c.Q, R: c.R, Remaining: remaining})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].R != out[j].R {
			return out[i].R < out[j].R
		}
		return out[i].Q < out[j].Q
	})
	return out, nil
}

// FindPath returns the cheapest path for a unit to (q, r).
func (h *Host) FindPath(unitID, q, r int) (PathResult, error) {
	path, cost, ok, err := h.Engine.PathTo(unitID, hex.New(q, r))
	if err != nil {
		return PathResult{}, err
	}
	if !ok {
		return PathResult{Path: []HexJSON{}}, nil
	}
	res := PathResult{Path: make([]HexJSON, len(path)), Cost: cost, Valid: true}
	for i, c := range path {
		res.Path[i] = toHexJSON(c)
	}
	return res, nil
}

// MoveUnit issues a Move command.
func (h *Host) MoveUnit(unitID int, path []HexJSON, facing int) ([]EventView, error) {
	f, err := FacingFromIndex(facing)
	if err != nil {
		return nil, err
	}
	coords := make([]hex.Coord, len(path))
	for i, p := range path {
		coords[i] = p.Coord()
	}
	return h.process(types.Move{UnitID: unitID, Path: coords, Facing: f})
}

// EndPhase issues an EndPhase command.
func (h *Host) EndPhase() ([]EventView, error) {
	return h.process(types.EndPhase{})
}

// EndTurn issues an EndTurn command.
func (h *Host) EndTurn() ([]EventView, error) {
	return h.process(types.EndTurn{})
}

func (h *Host) process(cmd types.Command) ([]EventView, error) {
	views, _, err := h.commit(cmd)
	return views, err
}

// commit runs cmd and, with AutoVictory, the end-of-game checks. The
// checks run after the command is applied, so a failing objective is
// returned as checkErr next to the committed events, never as err.
func (h *Host) commit(cmd types.Command) (views []EventView, checkErr error, err error) {
	evts, err := h.Engine.ProcessCommand(cmd)
	if err != nil {
		return nil, nil, err
	}
	if h.AutoVictory {
		if _, _, cerr := h.Engine.CheckObjectives(); cerr != nil {
			checkErr = fmt.Errorf("check objectives: %w", cerr)
			slog.Warn("objective check failed", "command", cmd.Name(), "error", cerr)
		}
		h.Engine.CheckVictory()
	}
	return newEventViews(evts), checkErr, nil
}

// SelectUnit sets or clears the selection.
func (h *Host) SelectUnit(unitID *int) error {
	return h.Engine.SelectUnit(unitID)
}

// SelectedUnit returns the selected unit id.
func (h *Host) SelectedUnit() (int, bool) {
	if h.Engine.State.Selected == nil {
		return 0, false
	}
	return *h.Engine.State.Selected, true
}

// CurrentPhase returns the lower-case phase name.
func (h *Host) CurrentPhase() string {
	return PhaseName(h.Engine.State.Phase)
}

// ActivePlayer returns 1 or 2.
func (h *Host) ActivePlayer() int {
	return PlayerCode(h.Engine.State.ActivePlayer)
}

// CurrentTurn returns the turn number.
func (h *Host) CurrentTurn() int {
	return h.Engine.State.Turn
}

// Units returns every unit, destroyed ones included, in insertion order.
func (h *Host) Units() []UnitView {
	out := make([]UnitView, len(h.Engine.State.Units))
	for i, u := range h.Engine.State.Units {
		out[i] = NewUnitView(u)
	}
	return out
}

// MapHexes returns every valid coordinate.
func (h *Host) MapHexes() []HexJSON {
	coords := h.Engine.State.Map.Coords()
	out := make([]HexJSON, len(coords))
	for i, c := range coords {
		out[i] = toHexJSON(c)
	}
	return out
}

// MapSize returns the map dimensions.
func (h *Host) MapSize() MapSize {
	w, ht := h.Engine.State.Map.Size()
	return MapSize{Width: w, Height: ht}
}

// StartGame leaves Deployment.
func (h *Host) StartGame() bool {
	return h.Engine.StartGame()
}

// PixelToHex converts a screen position to the hex under it.
func (h *Host) PixelToHex(x, y, hexSize float64) HexJSON {
	return toHexJSON(hex.FromPixel(x, y, hexSize))
}

// HexToPixel converts a hex to its center position.
func (h *Host) HexToPixel(q, r int, hexSize float64) Pixel {
	x, y := hex.New(q, r).ToPixel(hexSize)
	return Pixel{X: x, Y: y}
}

// HexCorners returns the six corner points of hex (q, r) for drawing its
// outline, in the same pixel space as HexToPixel.
func (h *Host) HexCorners(q, r int, hexSize float64) []Pixel {
	cx, cy := hex.New(q, r).ToPixel(hexSize)
	corners := hex.Corners(cx, cy, hexSize)
	out := make([]Pixel, len(corners))
	for i, c := range corners {
		out[i] = Pixel{X: c[0], Y: c[1]}
	}
	return out
}

// StateJSON returns the full game snapshot.
func (h *Host) StateJSON() ([]byte, error) {
	return snapshot.Encode(h.Engine.State)
}

// GameOver reports whether the game ended and who won.
func (h *Host) GameOver() (over bool, winner int) {
	s := h.Engine.State
	return s.GameOver, int(s.Winner)
}
