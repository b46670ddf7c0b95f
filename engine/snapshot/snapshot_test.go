package snapshot

import (
	"strings"
	"testing"

	"github.com/nathoo/titanhunt/engine/board"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

func testState(t *testing.T) *state.GameState {
	t.Helper()
	m := board.New(4, 4)
	if err := m.SetTerrain(hex.New(1, 1), types.Woods); err != nil {
		t.Fatal(err)
	}
	if err := m.SetElevation(hex.New(2, 0), 3); err != nil {
		t.Fatal(err)
	}
	s := state.New(m)
	if err := s.AddUnit(state.NewUnit(5, types.ReaverTitan, types.Player2, hex.New(0, 2), hex.Southwest)); err != nil {
		t.Fatal(err)
	}
	s.Events = append(s.Events, types.TurnChanged{Turn: 2})
	return s
}

func TestTake(t *testing.T) {
	snap := Take(testState(t))
	if snap.Width != 4 || snap.Height != 4 || snap.Turn != 1 || snap.Phase != "Deployment" {
		t.Errorf("header = %+v", snap)
	}
	if len(snap.Tiles) != 2 {
		t.Fatalf("tiles = %+v, want the two edited hexes", snap.Tiles)
	}
	if snap.Tiles[0].Terrain != "Clear" || snap.Tiles[0].Elevation != 3 {
		t.Errorf("first tile = %+v, want elevated Clear at (2,0)", snap.Tiles[0])
	}
	if snap.Tiles[1].Terrain != "Woods" {
		t.Errorf("second tile = %+v", snap.Tiles[1])
	}
	if len(snap.Units) != 1 {
		t.Fatalf("units = %+v", snap.Units)
	}
	u := snap.Units[0]
	if u.ID != 5 || u.Type != "Reaver_Titan" || u.Owner != 2 || u.Facing != 4 || u.MovementRemaining != 6 {
		t.Errorf("unit = %+v", u)
	}
	if len(snap.Events) != 1 || snap.Events[0].Type != "turn_changed" || snap.Events[0].Summary != "turn 2" {
		t.Errorf("events = %+v", snap.Events)
	}
}

func TestEncodeDecode(t *testing.T) {
	s := testState(t)
	id := 5
	s.Selected = &id
	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(data), `"active_player": 1`) {
		t.Errorf("encoded snapshot missing active player:\n%s", data)
	}
	snap, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if snap.Selected == nil || *snap.Selected != 5 {
		t.Errorf("selected = %v", snap.Selected)
	}
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Error("Decode should reject malformed input")
	}
}

func TestEqual(t *testing.T) {
	a := testState(t)
	b := testState(t)
	if !Equal(a, b) {
		t.Fatal("identical states should be equal")
	}
	b.Units[0].HasMoved = true
	if Equal(a, b) {
		t.Error("a changed unit flag should be visible")
	}
}
