package engine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/nathoo/titanhunt/engine/board"
	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/objectives"
	"github.com/nathoo/titanhunt/engine/snapshot"
	"github.com/nathoo/titanhunt/types"
)

// testEngine builds a 10x10 skirmish: a Reaver (1) and a Shadowsword (2)
// for Player 1, a Warlord (3) for Player 2.
func testEngine(t *testing.T, opts Options) *Engine {
	t.Helper()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(board.New(10, 10), opts)
	units := []struct {
		id     int
		typ    types.UnitType
		owner  types.Player
		at     hex.Coord
		facing hex.Facing
	}{
		{1, types.ReaverTitan, types.Player1, hex.New(0, 0), hex.East},
		{2, types.Shadowsword, types.Player1, hex.New(1, 0), hex.East},
		{3, types.WarlordTitan, types.Player2, hex.New(5, 5), hex.West},
	}
	for _, u := range units {
		if _, err := e.AddUnit(u.id, u.typ, u.owner, u.at, u.facing); err != nil {
			t.Fatalf("AddUnit(%d): %v", u.id, err)
		}
	}
	return e
}

func started(t *testing.T, opts Options) *Engine {
	t.Helper()
	e := testEngine(t, opts)
	if !e.StartGame() {
		t.Fatal("StartGame should leave Deployment")
	}
	return e
}

func path(coords ...hex.Coord) []hex.Coord { return coords }

func mustEncode(t *testing.T, e *Engine) string {
	t.Helper()
	data, err := snapshot.Encode(e.State)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestMove_OutsideMovementPhaseRejected(t *testing.T) {
	e := testEngine(t, Options{})
	before := mustEncode(t, e)

	_, err := e.ProcessCommand(types.Move{UnitID: 1, Path: path(hex.New(0, 0), hex.New(1, -1)), Facing: hex.East})
	if !apperrors.HasCode(err, apperrors.CodeWrongPhase) {
		t.Fatalf("err = %v, want WRONG_PHASE", err)
	}
	if after := mustEncode(t, e); after != before {
		t.Errorf("state changed after rejection:\nbefore %s\nafter %s", before, after)
	}
	if len(e.State.Events) != 0 {
		t.Errorf("event log grew to %d", len(e.State.Events))
	}
}

func TestProcessCommand_NilAndForeignCommands(t *testing.T) {
	e := started(t, Options{})
	before := mustEncode(t, e)

	for _, cmd := range []types.Command{nil, (*types.Move)(nil)} {
		_, err := e.ProcessCommand(cmd)
		if !apperrors.HasCode(err, apperrors.CodeUnknownCommand) {
			t.Errorf("ProcessCommand(%#v) err = %v, want UNKNOWN_COMMAND", cmd, err)
		}
	}
	if after := mustEncode(t, e); after != before {
		t.Errorf("state changed after rejection:\nbefore %s\nafter %s", before, after)
	}
}

func TestMove_Applies(t *testing.T) {
	e := started(t, Options{})
	evts, err := e.ProcessCommand(types.Move{
		UnitID: 1,
		Path:   path(hex.New(0, 0), hex.New(0, 1), hex.New(0, 2)),
		Facing: hex.Southeast,
	})
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	want := types.UnitMoved{UnitID: 1, From: hex.New(0, 0), To: hex.New(0, 2), Facing: hex.Southeast}
	if len(evts) != 1 || evts[0] != want {
		t.Fatalf("events = %v, want [%v]", evts, want)
	}
	u, _ := e.State.Unit(1)
	if u.Position != hex.New(0, 2) || u.Facing != hex.Southeast || !u.HasMoved || u.MovementRemaining != 0 {
		t.Errorf("unit after move = %+v", u)
	}
	if len(e.State.Events) != 1 || e.State.Events[0] != want {
		t.Errorf("event log = %v", e.State.Events)
	}
}

func TestMove_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(e *Engine)
		cmd   types.Move
		code  apperrors.Code
	}{
		{
			name: "unknown unit",
			cmd:  types.Move{UnitID: 99, Path: path(hex.New(0, 1))},
			code: apperrors.CodeUnitNotFound,
		},
		{
			name: "opponent unit",
			cmd:  types.Move{UnitID: 3, Path: path(hex.New(5, 5), hex.New(4, 5))},
			code: apperrors.CodeNotActivePlayer,
		},
		{
			name: "already moved",
			setup: func(e *Engine) {
				u, _ := e.State.Unit(1)
				u.HasMoved = true
			},
			cmd:  types.Move{UnitID: 1, Path: path(hex.New(0, 0), hex.New(0, 1))},
			code: apperrors.CodeUnitAlreadyMoved,
		},
		{
			name: "empty path",
			cmd:  types.Move{UnitID: 1},
			code: apperrors.CodeEmptyPath,
		},
		{
			name: "off map",
			cmd:  types.Move{UnitID: 1, Path: path(hex.New(0, 0), hex.New(-1, 0))},
			code: apperrors.CodeInvalidDestination,
		},
		{
			name: "occupied by ally",
			cmd:  types.Move{UnitID: 1, Path: path(hex.New(0, 0), hex.New(1, 0))},
			code: apperrors.CodeDestinationOccupied,
		},
		{
			name: "destroyed unit",
			setup: func(e *Engine) {
				u, _ := e.State.Unit(2)
				u.Structure = 0
			},
			cmd:  types.Move{UnitID: 2, Path: path(hex.New(1, 0), hex.New(2, 0))},
			code: apperrors.CodeUnitDestroyed,
		},
		{
			name: "bad facing",
			cmd:  types.Move{UnitID: 1, Path: path(hex.New(0, 0), hex.New(0, 1)), Facing: hex.Facing(9)},
			code: apperrors.CodeInvalidFacing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := started(t, Options{})
			if tt.setup != nil {
				tt.setup(e)
			}
			before := mustEncode(t, e)
			evts, err := e.ProcessCommand(tt.cmd)
			if !apperrors.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if evts != nil {
				t.Errorf("rejected command returned events %v", evts)
			}
			if after := mustEncode(t, e); after != before {
				t.Error("state changed after rejection")
			}
		})
	}
}

func TestMove_StayInPlaceAllowed(t *testing.T) {
	e := started(t, Options{})
	evts, err := e.ProcessCommand(types.Move{UnitID: 1, Path: path(hex.New(0, 0)), Facing: hex.Southwest})
	if err != nil {
		t.Fatalf("turning in place should be legal: %v", err)
	}
	moved := evts[0].(types.UnitMoved)
	if moved.From != moved.To || moved.Facing != hex.Southwest {
		t.Errorf("event = %+v", moved)
	}
}

func TestMove_TrustedPathSkipsIntermediateChecks(t *testing.T) {
	e := started(t, Options{})
	// Teleport: not adjacent, far over budget. Only the endpoint is checked.
	_, err := e.ProcessCommand(types.Move{UnitID: 2, Path: path(hex.New(1, 0), hex.New(5, 8)), Facing: hex.East})
	if err != nil {
		t.Fatalf("trusted pipeline should accept the path: %v", err)
	}
}

func TestMove_VerifyPaths(t *testing.T) {
	tests := []struct {
		name string
		path []hex.Coord
		code apperrors.Code
	}{
		{"gap", path(hex.New(1, 0), hex.New(5, 8)), apperrors.CodePathDiscontinuous},
		{"wrong start", path(hex.New(2, 0), hex.New(3, 0)), apperrors.CodePathStartMismatch},
		{"over budget", path(hex.New(1, 0), hex.New(1, 1), hex.New(1, 2), hex.New(1, 3), hex.New(1, 4), hex.New(1, 5), hex.New(1, 6)), apperrors.CodePathOverBudget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := started(t, Options{VerifyPaths: true})
			before := mustEncode(t, e)
			_, err := e.ProcessCommand(types.Move{UnitID: 2, Path: tt.path, Facing: hex.East})
			if !apperrors.HasCode(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if mustEncode(t, e) != before {
				t.Error("state changed after rejection")
			}
		})
	}

	e := started(t, Options{VerifyPaths: true})
	p, cost, ok, err := e.PathTo(2, hex.New(2, 2))
	if err != nil || !ok {
		t.Fatalf("PathTo: ok=%v err=%v", ok, err)
	}
	if cost != 3 {
		t.Errorf("cost = %d, want 3", cost)
	}
	if _, err := e.ProcessCommand(types.Move{UnitID: 2, Path: p, Facing: hex.Southeast}); err != nil {
		t.Errorf("a FindPath result should pass verification: %v", err)
	}
}

func TestEndPhase_Sequence(t *testing.T) {
	e := started(t, Options{})

	evts, err := e.ProcessCommand(types.EndPhase{})
	if err != nil {
		t.Fatal(err)
	}
	if len(evts) != 1 || evts[0] != (types.PhaseChanged{From: types.Movement, To: types.Combat}) {
		t.Fatalf("Movement->Combat events = %v", evts)
	}

	evts, err = e.ProcessCommand(types.EndPhase{})
	if err != nil {
		t.Fatal(err)
	}
	want := []types.Event{
		types.TurnChanged{Turn: 2},
		types.PhaseChanged{From: types.Combat, To: types.Movement},
	}
	if len(evts) != len(want) {
		t.Fatalf("Combat->End events = %v, want %v", evts, want)
	}
	for i := range want {
		if evts[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, evts[i], want[i])
		}
	}
	if e.State.Turn != 2 || e.State.Phase != types.Movement || e.State.ActivePlayer != types.Player2 {
		t.Errorf("state = turn %d, %v, %v", e.State.Turn, e.State.Phase, e.State.ActivePlayer)
	}
	if len(e.State.Events) != 3 {
		t.Errorf("event log has %d entries, want 3", len(e.State.Events))
	}
}

func TestEndPhase_FromDeployment(t *testing.T) {
	e := testEngine(t, Options{})
	evts, err := e.ProcessCommand(types.EndPhase{})
	if err != nil {
		t.Fatal(err)
	}
	if evts[0] != (types.PhaseChanged{From: types.Deployment, To: types.Movement}) {
		t.Errorf("events = %v", evts)
	}
	if e.State.Turn != 1 {
		t.Error("leaving Deployment must not end the turn")
	}
}

func TestEndTurn_ResetsUnits(t *testing.T) {
	e := started(t, Options{})
	if _, err := e.ProcessCommand(types.Move{UnitID: 1, Path: path(hex.New(0, 0), hex.New(0, 1)), Facing: hex.East}); err != nil {
		t.Fatal(err)
	}
	u, _ := e.State.Unit(1)
	if u.MovementRemaining != 0 || !u.HasMoved {
		t.Fatalf("unit after move = %+v", u)
	}
	u.HasAttacked = true

	evts, err := e.ProcessCommand(types.EndTurn{})
	if err != nil {
		t.Fatal(err)
	}
	want := []types.Event{
		types.PhaseChanged{From: types.Movement, To: types.Movement},
		types.TurnChanged{Turn: 2},
	}
	for i := range want {
		if evts[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, evts[i], want[i])
		}
	}
	if u.MovementRemaining != types.ReaverTitan.BaseMovement() || u.HasMoved || u.HasAttacked {
		t.Errorf("unit after EndTurn = %+v", u)
	}
	if e.State.ActivePlayer != types.Player2 {
		t.Errorf("active = %v, want Player 2", e.State.ActivePlayer)
	}
}

func TestEndTurn_FromDeployment(t *testing.T) {
	e := testEngine(t, Options{})
	evts, err := e.ProcessCommand(types.EndTurn{})
	if err != nil {
		t.Fatal(err)
	}
	if evts[0] != (types.PhaseChanged{From: types.Deployment, To: types.Movement}) {
		t.Errorf("events = %v", evts)
	}
	if e.State.Phase != types.Movement || e.State.Turn != 2 {
		t.Errorf("state = turn %d, %v", e.State.Turn, e.State.Phase)
	}
}

func TestStartGame(t *testing.T) {
	e := testEngine(t, Options{})
	if !e.StartGame() {
		t.Fatal("first StartGame should transition")
	}
	if e.State.Phase != types.Movement {
		t.Errorf("phase = %v", e.State.Phase)
	}
	if _, err := e.ProcessCommand(types.EndPhase{}); err != nil {
		t.Fatal(err)
	}
	if e.StartGame() {
		t.Error("StartGame outside Deployment should do nothing")
	}
	if e.State.Phase != types.Combat {
		t.Errorf("phase = %v, want Combat", e.State.Phase)
	}
}

func TestAddUnit_Validation(t *testing.T) {
	e := testEngine(t, Options{})
	tests := []struct {
		name   string
		id     int
		typ    types.UnitType
		owner  types.Player
		facing hex.Facing
		code   apperrors.Code
	}{
		{"duplicate", 1, types.Shadowsword, types.Player2, hex.East, apperrors.CodeDuplicateUnit},
		{"bad type", 10, types.UnitType(42), types.Player2, hex.East, apperrors.CodeUnknownUnitType},
		{"bad player", 10, types.Shadowsword, types.Player(3), hex.East, apperrors.CodeInvalidPlayer},
		{"bad facing", 10, types.Shadowsword, types.Player2, hex.Facing(6), apperrors.CodeInvalidFacing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.AddUnit(tt.id, tt.typ, tt.owner, hex.New(3, 3), tt.facing)
			if !apperrors.HasCode(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
	if len(e.State.Units) != 3 {
		t.Errorf("rejected units were stored: %d units", len(e.State.Units))
	}
}

func TestSelectUnit(t *testing.T) {
	e := testEngine(t, Options{})
	id := 3
	if err := e.SelectUnit(&id); err != nil {
		t.Fatal(err)
	}
	id = 1 // the engine keeps its own copy
	if u, ok := e.State.SelectedUnit(); !ok || u.ID != 3 {
		t.Errorf("selected = %v, %v", u, ok)
	}
	missing := 77
	if err := e.SelectUnit(&missing); !apperrors.HasCode(err, apperrors.CodeUnitNotFound) {
		t.Errorf("err = %v, want UNIT_NOT_FOUND", err)
	}
	if *e.State.Selected != 3 {
		t.Error("failed selection should keep the previous one")
	}
	if err := e.SelectUnit(nil); err != nil || e.State.Selected != nil {
		t.Error("SelectUnit(nil) should clear the selection")
	}
}

func TestCheckVictory(t *testing.T) {
	e := started(t, Options{})
	if _, ok := e.CheckVictory(); ok || e.State.GameOver {
		t.Fatal("both sides alive: no winner")
	}

	warlord, _ := e.State.Unit(3)
	warlord.Structure = 0
	winner, ok := e.CheckVictory()
	if !ok || winner != types.Player1 || !e.State.GameOver {
		t.Errorf("winner = %v, %v; game over %v", winner, ok, e.State.GameOver)
	}

	_, err := e.ProcessCommand(types.EndPhase{})
	if !apperrors.HasCode(err, apperrors.CodeGameOver) {
		t.Errorf("err = %v, want GAME_OVER", err)
	}
}

func TestCheckVictory_MutualWipe(t *testing.T) {
	e := started(t, Options{})
	for _, u := range e.State.Units {
		u.Structure = 0
	}
	if _, ok := e.CheckVictory(); ok {
		t.Error("mutual wipe should not produce a winner")
	}
	if e.State.HasWinner() {
		t.Errorf("winner = %v", e.State.Winner)
	}
}

func TestCheckObjectives(t *testing.T) {
	e := started(t, Options{})
	set, err := objectives.Compile([]objectives.Objective{
		{Name: "break through", Winner: types.Player1, When: "Occupies(1, 4, 4)"},
	})
	if err != nil {
		t.Fatal(err)
	}
	e.Objectives = set

	if _, ok, err := e.CheckObjectives(); ok || err != nil {
		t.Fatalf("objective met too early: %v, %v", ok, err)
	}
	if _, err := e.ProcessCommand(types.Move{UnitID: 2, Path: path(hex.New(1, 0), hex.New(4, 4)), Facing: hex.East}); err != nil {
		t.Fatal(err)
	}
	o, ok, err := e.CheckObjectives()
	if err != nil || !ok || o.Name != "break through" {
		t.Fatalf("CheckObjectives = %+v, %v, %v", o, ok, err)
	}
	if !e.State.GameOver || e.State.Winner != types.Player1 {
		t.Errorf("game over %v, winner %v", e.State.GameOver, e.State.Winner)
	}
}

func TestBusReceivesCommittedEventsOnly(t *testing.T) {
	e := testEngine(t, Options{})
	var seen []types.EventType
	e.Bus.SubscribeAll(func(ev types.Event) { seen = append(seen, ev.Type()) })

	if _, err := e.ProcessCommand(types.Move{UnitID: 1, Path: path(hex.New(0, 0))}); err == nil {
		t.Fatal("move in Deployment should fail")
	}
	if len(seen) != 0 {
		t.Fatalf("bus saw events from a rejected command: %v", seen)
	}
	if _, err := e.ProcessCommand(types.EndTurn{}); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != types.EventPhaseChanged || seen[1] != types.EventTurnChanged {
		t.Errorf("seen = %v", seen)
	}
}

func TestReachable(t *testing.T) {
	e := started(t, Options{})
	reach, err := e.Reachable(3)
	if err != nil {
		t.Fatal(err)
	}
	if reach[hex.New(5, 5)] != 4 {
		t.Errorf("start hex remaining = %d, want 4", reach[hex.New(5, 5)])
	}
	if _, err := e.Reachable(42); !apperrors.HasCode(err, apperrors.CodeUnitNotFound) {
		t.Errorf("err = %v, want UNIT_NOT_FOUND", err)
	}
	if _, _, _, err := e.PathTo(42, hex.Origin); !apperrors.HasCode(err, apperrors.CodeUnitNotFound) {
		t.Errorf("err = %v, want UNIT_NOT_FOUND", err)
	}
}
