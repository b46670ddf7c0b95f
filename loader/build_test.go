package loader

import (
	"io"
	"log/slog"
	"testing"

	"github.com/nathoo/titanhunt/engine"
	apperrors "github.com/nathoo/titanhunt/engine/errors"
	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

func testOptions() engine.Options {
	return engine.Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func loadSkirmish(t *testing.T) *Scenario {
	t.Helper()
	dir := writeScenario(t, map[string]string{"scenario.lua": skirmish})
	sc, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return sc
}

func TestBuild(t *testing.T) {
	e, err := Build(loadSkirmish(t), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	s := e.State

	if w, h := s.Map.Size(); w != 8 || h != 6 {
		t.Errorf("map size = %dx%d", w, h)
	}
	terrain := []struct {
		at   hex.Coord
		want types.TerrainType
	}{
		{hex.New(2, 1), types.Woods},
		{hex.New(0, 3), types.Water},
		{hex.New(3, 3), types.Water},
		{hex.New(5, 0), types.Impassable},
		{hex.New(4, 0), types.Clear},
	}
	for _, tt := range terrain {
		if got := s.Map.TerrainAt(tt.at); got != tt.want {
			t.Errorf("terrain at %v = %v, want %v", tt.at, got, tt.want)
		}
	}
	if tile, _ := s.Map.Tile(hex.New(3, 1)); tile.Elevation != 1 {
		t.Errorf("woods elevation = %d", tile.Elevation)
	}

	if len(s.Units) != 3 {
		t.Fatalf("got %d units", len(s.Units))
	}
	if u, ok := s.Unit(7); !ok || u.Owner != types.Player2 || u.MovementRemaining != 4 {
		t.Errorf("unit 7 = %+v", u)
	}
	if s.Phase != types.Movement {
		t.Errorf("start = true should open Movement, phase = %v", s.Phase)
	}
	if e.Objectives.Len() != 1 {
		t.Errorf("objectives = %d", e.Objectives.Len())
	}
}

func TestBuild_ObjectiveWins(t *testing.T) {
	e, err := Build(loadSkirmish(t), testOptions())
	if err != nil {
		t.Fatal(err)
	}
	u, _ := e.State.Unit(2)
	u.Position = hex.New(3, 1)
	e.State.Turn = 3

	o, ok, err := e.CheckObjectives()
	if err != nil || !ok {
		t.Fatalf("CheckObjectives() = %v, %v, %v", o, ok, err)
	}
	if o.Name != "hold the ridge" || !e.State.GameOver || e.State.Winner != types.Player1 {
		t.Errorf("objective %q, over %v, winner %v", o.Name, e.State.GameOver, e.State.Winner)
	}
}

func TestBuild_Seeded(t *testing.T) {
	sc := &Scenario{
		Title: "Seeded", Width: 12, Height: 10, Seed: 42,
		ClearZones: []ClearZone{{Center: hex.New(0, 0), Radius: 1, order: 1}},
		Units: []UnitDef{
			{ID: 1, Type: types.ReaverTitan, Owner: types.Player1, At: hex.New(0, 0)},
		},
	}
	a, err := Build(sc, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(sc, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range a.State.Map.Coords() {
		if a.State.Map.TerrainAt(c) != b.State.Map.TerrainAt(c) {
			t.Fatalf("same seed differs at %v", c)
		}
	}
	for _, n := range hex.Origin.Neighbors() {
		if a.State.Map.IsValid(n) && a.State.Map.TerrainAt(n) != types.Clear {
			t.Errorf("clear zone not applied at %v", n)
		}
	}
}

func TestBuild_Rejections(t *testing.T) {
	tests := []struct {
		name string
		sc   *Scenario
	}{
		{"unit on impassable", &Scenario{
			Title: "x", Width: 4, Height: 4,
			Terrain: []TerrainPatch{{Terrain: types.Impassable, Hexes: []hex.Coord{hex.New(1, 1)}}},
			Units:   []UnitDef{{ID: 1, Type: types.Shadowsword, Owner: types.Player1, At: hex.New(1, 1)}},
		}},
		{"duplicate id", &Scenario{
			Title: "x", Width: 4, Height: 4,
			Units: []UnitDef{
				{ID: 1, Type: types.Shadowsword, Owner: types.Player1, At: hex.New(0, 0)},
				{ID: 1, Type: types.Shadowsword, Owner: types.Player2, At: hex.New(2, 2)},
			},
		}},
		{"bad objective", &Scenario{
			Title: "x", Width: 4, Height: 4,
			Objectives: []ObjectiveDef{{Name: "oops", Winner: types.Player1, When: "Turn +"}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.sc, testOptions())
			if !apperrors.HasCode(err, apperrors.CodeInvalidScenario) {
				t.Fatalf("error = %v, want INVALID_SCENARIO", err)
			}
		})
	}
}
