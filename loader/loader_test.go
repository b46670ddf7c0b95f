package loader

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

const skirmish = `
Battlefield {
  title = "Ridge Skirmish",
  description = "Two titans contest a ridge.",
  width = 8,
  height = 6,
  start = true,
}

Terrain "woods" { {2, 1}, {3, 1}, elevation = 1 }
Terrain "water" { Line(0, 3, 3, 3) }
Terrain "impassable" { Hex(5, 0) }

Unit { id = 1, type = "Reaver_Titan", player = 1, at = {0, 0}, facing = "se" }
Unit { id = 2, type = "shadowsword", player = 1, at = {1, 0} }
Unit { id = 7, type = "Warlord_Titan", player = 2, at = {q = 4, r = 4}, facing = 3 }

Objective {
  name = "hold the ridge",
  winner = 1,
  when = "Occupies(1, 3, 1) && Turn >= 3",
}
`

// writeScenario writes files into a fresh directory and returns its path.
func writeScenario(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad_File(t *testing.T) {
	dir := writeScenario(t, map[string]string{"ridge.lua": skirmish})
	sc, err := Load(filepath.Join(dir, "ridge.lua"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if sc.Title != "Ridge Skirmish" || sc.Width != 8 || sc.Height != 6 || !sc.Start {
		t.Errorf("battlefield = %+v", sc)
	}
	if len(sc.Terrain) != 3 {
		t.Fatalf("got %d terrain patches, want 3", len(sc.Terrain))
	}
	woods := sc.Terrain[0]
	if woods.Terrain != types.Woods || len(woods.Hexes) != 2 || !woods.HasElevation || woods.Elevation != 1 {
		t.Errorf("woods patch = %+v", woods)
	}
	if water := sc.Terrain[1]; water.Terrain != types.Water || len(water.Hexes) != 4 {
		t.Errorf("water patch = %+v", water)
	}
	if sc.Terrain[2].Hexes[0] != hex.New(5, 0) {
		t.Errorf("impassable hex = %v", sc.Terrain[2].Hexes)
	}

	if len(sc.Units) != 3 {
		t.Fatalf("got %d units", len(sc.Units))
	}
	tests := []struct {
		idx    int
		id     int
		typ    types.UnitType
		owner  types.Player
		at     hex.Coord
		facing hex.Facing
	}{
		{0, 1, types.ReaverTitan, types.Player1, hex.New(0, 0), hex.Southeast},
		{1, 2, types.Shadowsword, types.Player1, hex.New(1, 0), hex.East},
		{2, 7, types.WarlordTitan, types.Player2, hex.New(4, 4), hex.West},
	}
	for _, tt := range tests {
		u := sc.Units[tt.idx]
		if u.ID != tt.id || u.Type != tt.typ || u.Owner != tt.owner || u.At != tt.at || u.Facing != tt.facing {
			t.Errorf("unit %d = %+v", tt.idx, u)
		}
	}

	if len(sc.Objectives) != 1 || sc.Objectives[0].Winner != types.Player1 {
		t.Errorf("objectives = %+v", sc.Objectives)
	}
	if len(sc.Warnings) != 0 {
		t.Errorf("unexpected warnings %v", sc.Warnings)
	}
}

func TestLoad_DirectoryOrder(t *testing.T) {
	dir := writeScenario(t, map[string]string{
		"a_units.lua": `Unit { id = 1, type = "shadowsword", player = 1, at = {0, 0} }
Unit { id = 2, type = "shadowsword", player = 2, at = {3, 3} }`,
		"b_terrain.lua": `Terrain "clear" { {1, 1} }`,
		"scenario.lua":  `Battlefield { title = "Split", width = 5, height = 5 }
Terrain "rough" { {1, 1} }`,
	})
	sc, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(sc.Terrain) != 2 || sc.Terrain[0].Terrain != types.Rough || sc.Terrain[1].Terrain != types.Clear {
		t.Fatalf("terrain order = %+v", sc.Terrain)
	}
	e, err := Build(sc, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := e.State.Map.TerrainAt(hex.New(1, 1)); got != types.Clear {
		t.Errorf("later file should win: terrain = %v", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"no battlefield", `Unit { id = 1, type = "shadowsword", player = 1, at = {0, 0} }`, "no Battlefield{}"},
		{"lua syntax", `Battlefield {`, "executing"},
		{"unknown terrain", `Battlefield { title = "x", width = 3, height = 3 }
Terrain "lava" { {0, 0} }`, `unknown terrain "lava"`},
		{"unknown unit", `Battlefield { title = "x", width = 3, height = 3 }
Unit { id = 1, type = "krieg", player = 1, at = {0, 0} }`, "unknown unit type"},
		{"bad player", `Battlefield { title = "x", width = 3, height = 3 }
Unit { id = 1, type = "shadowsword", player = 3, at = {0, 0} }`, "invalid player"},
		{"missing position", `Battlefield { title = "x", width = 3, height = 3 }
Unit { id = 1, type = "shadowsword", player = 1 }`, "at is required"},
		{"bad facing", `Battlefield { title = "x", width = 3, height = 3 }
Unit { id = 1, type = "shadowsword", player = 1, at = {0, 0}, facing = "up" }`, "invalid facing"},
		{"double battlefield", `Battlefield { title = "x", width = 3, height = 3 }
Battlefield { title = "y", width = 3, height = 3 }`, "defined twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeScenario(t, map[string]string{"scenario.lua": tt.src})
			_, err := Load(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.lua")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := Load(t.TempDir()); err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("empty dir error = %v", err)
	}
}

func TestLoad_Sandbox(t *testing.T) {
	for _, global := range []string{"dofile", "loadfile", "load", "require", "os", "io"} {
		t.Run(global, func(t *testing.T) {
			src := `Battlefield { title = "x", width = 3, height = 3 }
if ` + global + ` ~= nil then error("` + global + ` is reachable") end`
			dir := writeScenario(t, map[string]string{"scenario.lua": src})
			if _, err := Load(dir); err != nil {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("sandbox leak: %v", err)
				}
			}
		})
	}
}

func TestRing(t *testing.T) {
	for radius := 0; radius <= 3; radius++ {
		got := ring(hex.Origin, radius)
		want := 6 * radius
		if radius == 0 {
			want = 1
		}
		if len(got) != want {
			t.Errorf("ring(%d) has %d hexes, want %d", radius, len(got), want)
		}
		for _, c := range got {
			if hex.Distance(hex.Origin, c) != radius {
				t.Errorf("ring(%d) contains %v at distance %d", radius, c, hex.Distance(hex.Origin, c))
			}
		}
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"units.lua", "scenario.lua", "terrain.lua"})
	want := []string{"scenario.lua", "terrain.lua", "units.lua"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sortedLuaFiles = %v, want %v", got, want)
		}
	}
}
