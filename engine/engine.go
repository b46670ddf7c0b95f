// Package engine provides the ProcessCommand orchestrator that wires
// together state, movement, events and objectives into one authoritative
// game. Every state change goes through ProcessCommand or one of the
// explicit phase and victory helpers.
package engine

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/nathoo/titanhunt/engine/board"
	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/events"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/movement"
	"github.com/nathoo/titanhunt/engine/objectives"
	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// Options tune an Engine.
type Options struct {
	// VerifyPaths re-checks every hex of a Move path. When false only the
	// destination is validated and the caller is trusted to have used
	// FindPath.
	VerifyPaths bool
	Logger      *slog.Logger
}

// Engine owns one game.
type Engine struct {
	ID         uuid.UUID
	State      *state.GameState
	Objectives *objectives.Set
	Bus        *events.Bus

	opts   Options
	logger *slog.Logger
}

// New creates an engine for a fresh game on m.
func New(m *board.Map, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	return &Engine{
		ID:     id,
		State:  state.New(m),
		Bus:    events.NewBus(),
		opts:   opts,
		logger: logger.With("game", id.String()),
	}
}

// Options returns the options the engine was created with.
func (e *Engine) Options() Options {
	return e.opts
}

// AddUnit places a new unit. Ids must be unique within the game.
func (e *Engine) AddUnit(id int, typ types.UnitType, owner types.Player, at hex.Coord, facing hex.Facing) (*state.Unit, error) {
	if !typ.Valid() {
		return nil, apperrors.WithMetadata(apperrors.CodeUnknownUnitType, "unknown unit type", map[string]string{
			"type": strconv.Itoa(int(typ)),
		})
	}
	if !owner.Valid() {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidPlayer, "player must be 1 or 2", map[string]string{
			"player": strconv.Itoa(int(owner)),
		})
	}
	if !facing.Valid() {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidFacing, "facing must be 0-5", map[string]string{
			"facing": strconv.Itoa(int(facing)),
		})
	}
	u := state.NewUnit(id, typ, owner, at, facing)
	if err := e.State.AddUnit(u); err != nil {
		return nil, err
	}
	e.logger.Debug("unit added", "unit", id, "type", typ.SpriteKey(), "owner", int(owner), "at", at.String())
	return u, nil
}

// ProcessCommand validates cmd against the current state and applies it.
// On error the state is untouched. On success the returned events are
// also appended to the state's event log and dispatched on the bus.
func (e *Engine) ProcessCommand(cmd types.Command) ([]types.Event, error) {
	// 0. Only the closed command set is accepted, and game over blocks
	// every command.
	switch cmd.(type) {
	case types.Move, types.EndPhase, types.EndTurn:
	default:
		return nil, e.reject(cmd, apperrors.WithMetadata(apperrors.CodeUnknownCommand, "unsupported command", map[string]string{
			"type": fmt.Sprintf("%T", cmd),
		}))
	}
	if e.State.GameOver {
		return nil, e.reject(cmd, apperrors.New(apperrors.CodeGameOver, "the game is over"))
	}

	// 1. Validate and apply.
	var evts []types.Event
	var err error
	switch c := cmd.(type) {
	case types.Move:
		evts, err = e.move(c)
	case types.EndPhase:
		evts = e.endPhase()
	case types.EndTurn:
		evts = e.endTurn()
	}
	if err != nil {
		return nil, e.reject(cmd, err)
	}

	// 2. Log the events.
	e.State.Events = append(e.State.Events, evts...)

	// 3. Notify subscribers.
	e.Bus.Dispatch(evts)

	e.logger.Debug("command applied",
		"command", cmd.Name(),
		"turn", e.State.Turn,
		"phase", e.State.Phase.String(),
		"active", int(e.State.ActivePlayer),
		"events", len(evts),
	)
	return evts, nil
}

func (e *Engine) reject(cmd types.Command, err error) error {
	e.logger.Debug("command rejected", "command", commandName(cmd), "code", string(apperrors.CodeOf(err)), "reason", err.Error())
	return err
}

// commandName labels cmd for logs without calling into unknown types.
func commandName(cmd types.Command) string {
	switch cmd.(type) {
	case types.Move, types.EndPhase, types.EndTurn:
		return cmd.Name()
	default:
		return fmt.Sprintf("%T", cmd)
	}
}

// move checks every precondition before touching the unit.
func (e *Engine) move(cmd types.Move) ([]types.Event, error) {
	s := e.State
	unitMeta := map[string]string{"unit_id": strconv.Itoa(cmd.UnitID)}

	if s.Phase != types.Movement {
		return nil, apperrors.WithMetadata(apperrors.CodeWrongPhase, "cannot move outside of the movement phase", map[string]string{
			"phase": s.Phase.String(),
		})
	}

	u, ok := s.Unit(cmd.UnitID)
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeUnitNotFound, "unit not found", unitMeta)
	}
	if u.IsDestroyed() {
		return nil, apperrors.WithMetadata(apperrors.CodeUnitDestroyed, "unit is destroyed", unitMeta)
	}
	if u.Owner != s.ActivePlayer {
		return nil, apperrors.WithMetadata(apperrors.CodeNotActivePlayer, "cannot move the opponent's unit", map[string]string{
			"unit_id": strconv.Itoa(cmd.UnitID),
			"owner":   strconv.Itoa(int(u.Owner)),
			"active":  strconv.Itoa(int(s.ActivePlayer)),
		})
	}
	if u.HasMoved {
		return nil, apperrors.WithMetadata(apperrors.CodeUnitAlreadyMoved, "unit has already moved this turn", unitMeta)
	}

	dest, ok := cmd.Destination()
	if !ok {
		return nil, apperrors.New(apperrors.CodeEmptyPath, "path is empty")
	}
	if !cmd.Facing.Valid() {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidFacing, "facing must be 0-5", map[string]string{
			"facing": strconv.Itoa(int(cmd.Facing)),
		})
	}

	start := u.Position
	if !s.Map.IsValid(dest) {
		return nil, apperrors.WithMetadata(apperrors.CodeInvalidDestination, "destination is off the map", map[string]string{
			"to": dest.String(),
		})
	}
	if _, occupied := s.UnitAt(dest); occupied && dest != start {
		return nil, apperrors.WithMetadata(apperrors.CodeDestinationOccupied, "destination is occupied", map[string]string{
			"to": dest.String(),
		})
	}

	if e.opts.VerifyPaths {
		if err := movement.VerifyPath(s, u, cmd.Path); err != nil {
			return nil, err
		}
	}

	u.Position = dest
	u.Facing = cmd.Facing
	u.HasMoved = true
	u.MovementRemaining = 0

	return []types.Event{types.UnitMoved{
		UnitID: u.ID,
		From:   start,
		To:     dest,
		Facing: cmd.Facing,
	}}, nil
}

// endPhase advances one phase. Reaching End rolls straight into the next
// turn's Movement phase.
func (e *Engine) endPhase() []types.Event {
	s := e.State
	old := s.Phase
	s.Phase = s.Phase.Next()

	var evts []types.Event
	if s.Phase == types.End {
		e.rollTurn()
		evts = append(evts, types.TurnChanged{Turn: s.Turn})
	}
	evts = append(evts, types.PhaseChanged{From: old, To: s.Phase})
	return evts
}

func (e *Engine) endTurn() []types.Event {
	old := e.State.Phase
	e.rollTurn()
	return []types.Event{
		types.PhaseChanged{From: old, To: types.Movement},
		types.TurnChanged{Turn: e.State.Turn},
	}
}

func (e *Engine) rollTurn() {
	s := e.State
	s.Turn++
	s.Phase = types.Movement
	s.ActivePlayer = s.ActivePlayer.Opponent()
	s.ResetUnits()
}

// StartGame leaves Deployment for the first Movement phase. It reports
// whether the transition happened; outside Deployment it does nothing.
func (e *Engine) StartGame() bool {
	if e.State.Phase != types.Deployment {
		return false
	}
	e.State.Phase = types.Movement
	e.logger.Debug("game started", "turn", e.State.Turn, "active", int(e.State.ActivePlayer))
	return true
}

// SelectUnit sets or clears (id == nil) the UI selection. Selecting an
// unknown id fails and leaves the selection unchanged.
func (e *Engine) SelectUnit(id *int) error {
	if id == nil {
		e.State.Selected = nil
		return nil
	}
	if _, ok := e.State.Unit(*id); !ok {
		return apperrors.WithMetadata(apperrors.CodeUnitNotFound, "unit not found", map[string]string{
			"unit_id": strconv.Itoa(*id),
		})
	}
	v := *id
	e.State.Selected = &v
	return nil
}

// CheckVictory ends the game when exactly one side has living units. A
// mutual wipe leaves the game running with no winner.
func (e *Engine) CheckVictory() (types.Player, bool) {
	s := e.State
	p1, p2 := s.Alive(types.Player1), s.Alive(types.Player2)
	switch {
	case p1 == 0 && p2 > 0:
		e.declare(types.Player2, "annihilation")
	case p2 == 0 && p1 > 0:
		e.declare(types.Player1, "annihilation")
	}
	return s.Winner, s.HasWinner()
}

// CheckObjectives evaluates the scenario objectives and ends the game on
// the first one that holds.
func (e *Engine) CheckObjectives() (objectives.Objective, bool, error) {
	if e.State.GameOver {
		return objectives.Objective{}, false, nil
	}
	o, ok, err := e.Objectives.Evaluate(e.State)
	if err != nil || !ok {
		return objectives.Objective{}, false, err
	}
	e.declare(o.Winner, o.Name)
	return o, true, nil
}

func (e *Engine) declare(winner types.Player, reason string) {
	e.State.GameOver = true
	e.State.Winner = winner
	e.logger.Debug("game over", "winner", int(winner), "reason", reason, "turn", e.State.Turn)
}

// Reachable returns the hexes unit id can end its move on.
func (e *Engine) Reachable(id int) (map[hex.Coord]int, error) {
	u, ok := e.State.Unit(id)
	if !ok {
		return nil, apperrors.WithMetadata(apperrors.CodeUnitNotFound, "unit not found", map[string]string{
			"unit_id": strconv.Itoa(id),
		})
	}
	return movement.FindReachable(e.State, u), nil
}

// PathTo returns the cheapest path for unit id to target within its
// remaining movement. ok is false when no such path exists.
func (e *Engine) PathTo(id int, target hex.Coord) (path []hex.Coord, cost int, ok bool, err error) {
	u, found := e.State.Unit(id)
	if !found {
		return nil, 0, false, apperrors.WithMetadata(apperrors.CodeUnitNotFound, "unit not found", map[string]string{
			"unit_id": strconv.Itoa(id),
		})
	}
	path, cost, ok = movement.FindPath(e.State, u, target, -1)
	return path, cost, ok, nil
}
