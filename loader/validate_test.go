package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/types"
)

func validScenario() *Scenario {
	return &Scenario{
		Title: "Valid", Width: 6, Height: 6,
		Units: []UnitDef{
			{ID: 1, Type: types.ReaverTitan, Owner: types.Player1, At: hex.New(0, 0)},
			{ID: 2, Type: types.WarlordTitan, Owner: types.Player2, At: hex.New(3, 3)},
		},
		Objectives: []ObjectiveDef{{Name: "kill", Winner: types.Player1, When: "!UnitAlive(2)"}},
	}
}

func TestValidate_OK(t *testing.T) {
	sc := validScenario()
	if err := validate(sc); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if len(sc.Warnings) != 0 {
		t.Errorf("warnings = %v", sc.Warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(sc *Scenario)
		want   string
	}{
		{"no title", func(sc *Scenario) { sc.Title = "" }, "title is required"},
		{"zero width", func(sc *Scenario) { sc.Width = 0 }, "out of range"},
		{"huge map", func(sc *Scenario) { sc.Height = 1000 }, "out of range"},
		{"terrain off map", func(sc *Scenario) {
			sc.Terrain = []TerrainPatch{{Terrain: types.Woods, Hexes: []hex.Coord{hex.New(40, 0)}}}
		}, "off the map"},
		{"zone off map", func(sc *Scenario) {
			sc.ClearZones = []ClearZone{{Center: hex.New(-9, 0), Radius: 1}}
		}, "clear zone center"},
		{"negative radius", func(sc *Scenario) {
			sc.ClearZones = []ClearZone{{Center: hex.New(1, 1), Radius: -1}}
		}, "negative radius"},
		{"duplicate id", func(sc *Scenario) { sc.Units[1].ID = 1 }, "duplicate unit id 1"},
		{"unit off map", func(sc *Scenario) { sc.Units[0].At = hex.New(-5, 0) }, "off the map"},
		{"stacked units", func(sc *Scenario) { sc.Units[1].At = hex.New(0, 0) }, "shares (0,0)"},
		{"unit on impassable", func(sc *Scenario) {
			sc.Terrain = []TerrainPatch{{Terrain: types.Impassable, Hexes: []hex.Coord{hex.New(0, 0)}}}
		}, "impassable"},
		{"empty objective", func(sc *Scenario) { sc.Objectives[0].When = "" }, "has no condition"},
		{"bad objective", func(sc *Scenario) { sc.Objectives[0].When = "Gold > 3" }, "compile objective"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := validScenario()
			tt.mutate(sc)
			err := validate(sc)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if !strings.Contains(ve.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", ve.Error(), tt.want)
			}
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	sc := validScenario()
	sc.Units = sc.Units[:1]
	sc.Terrain = []TerrainPatch{{Terrain: types.Rough}}
	if err := validate(sc); err != nil {
		t.Fatalf("warnings should not fail: %v", err)
	}
	if len(sc.Warnings) != 2 {
		t.Fatalf("warnings = %v", sc.Warnings)
	}
	if !strings.Contains(sc.Warnings[1], "Player 2 has no units") {
		t.Errorf("warning = %q", sc.Warnings[1])
	}
}
