// Package loader loads Lua scenario files into a Scenario and builds a
// ready engine from it. The Lua VM is discarded after loading; nothing
// scripted runs during play.
package loader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/host"
	"github.com/nathoo/titanhunt/types"
)

// Scenario is a compiled battle setup. All names are already mapped to
// enumerations.
type Scenario struct {
	Title       string
	Description string
	Width       int
	Height      int
	// Seed selects procedural terrain; 0 keeps a flat Clear map.
	Seed int64
	// Start skips Deployment and opens the first Movement phase.
	Start      bool
	Terrain    []TerrainPatch
	ClearZones []ClearZone
	Units      []UnitDef
	Objectives []ObjectiveDef
	// Warnings are the non-fatal validation findings.
	Warnings []string
}

// TerrainPatch paints one terrain kind onto a set of hexes. Elevation is
// applied only when HasElevation is set.
type TerrainPatch struct {
	Terrain      types.TerrainType
	Hexes        []hex.Coord
	Elevation    int
	HasElevation bool
	order        int
}

// ClearZone resets every hex within Radius of Center to Clear.
type ClearZone struct {
	Center hex.Coord
	Radius int
	order  int
}

// UnitDef places one unit.
type UnitDef struct {
	ID     int
	Type   types.UnitType
	Owner  types.Player
	At     hex.Coord
	Facing hex.Facing
}

// ObjectiveDef is a scenario victory condition. When is an expression over
// the objective environment.
type ObjectiveDef struct {
	Name   string
	Winner types.Player
	When   string
}

// rawTerrain holds a Terrain table before compilation.
type rawTerrain struct {
	kind  string
	table *lua.LTable
	order int
}

// rawZone holds a ClearZone table before compilation.
type rawZone struct {
	table *lua.LTable
	order int
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	v := tbl.RawGetString(key)
	if b, ok := v.(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getNumber returns a numeric field and whether it was present.
func getNumber(tbl *lua.LTable, key string) (float64, bool) {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n), true
	}
	return 0, false
}

// getInt returns an int field from a Lua table, or def if missing.
func getInt(tbl *lua.LTable, key string, def int) int {
	if n, ok := getNumber(tbl, key); ok {
		return int(n)
	}
	return def
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// toCoord reads {q, r} or {q = .., r = ..}.
func toCoord(v lua.LValue) (hex.Coord, error) {
	tbl, ok := v.(*lua.LTable)
	if !ok {
		return hex.Coord{}, fmt.Errorf("hex must be a table, got %s", v.Type())
	}
	q, okQ := tbl.RawGetInt(1).(lua.LNumber)
	r, okR := tbl.RawGetInt(2).(lua.LNumber)
	if !okQ || !okR {
		q, okQ = tbl.RawGetString("q").(lua.LNumber)
		r, okR = tbl.RawGetString("r").(lua.LNumber)
	}
	if !okQ || !okR {
		return hex.Coord{}, fmt.Errorf("hex needs two numbers")
	}
	return hex.New(int(q), int(r)), nil
}

// toCoords reads the array part of tbl as a hex list. Nested lists (as
// returned by Line and Ring) are flattened.
func toCoords(tbl *lua.LTable) ([]hex.Coord, error) {
	var out []hex.Coord
	for i := 1; i <= tbl.MaxN(); i++ {
		v := tbl.RawGetInt(i)
		if inner, ok := v.(*lua.LTable); ok {
			if _, isNum := inner.RawGetInt(1).(lua.LNumber); !isNum && inner.MaxN() > 0 {
				coords, err := toCoords(inner)
				if err != nil {
					return nil, err
				}
				out = append(out, coords...)
				continue
			}
		}
		c, err := toCoord(v)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// parseTerrain maps a lower-case terrain name to its enumeration.
func parseTerrain(name string) (types.TerrainType, bool) {
	for _, t := range types.TerrainTypes {
		if strings.EqualFold(t.String(), name) {
			return t, true
		}
	}
	return 0, false
}

// parseFacingValue accepts a facing index or a direction word.
func parseFacingValue(v lua.LValue) (hex.Facing, error) {
	switch val := v.(type) {
	case *lua.LNilType:
		return hex.East, nil
	case lua.LNumber:
		return host.FacingFromIndex(int(val))
	case lua.LString:
		return host.ParseFacing(string(val))
	default:
		return 0, fmt.Errorf("facing must be a number or a direction, got %s", v.Type())
	}
}

// compile converts all collected Lua data into a Scenario.
func compile(coll *collector) (*Scenario, error) {
	if coll.battlefield == nil {
		return nil, fmt.Errorf("no Battlefield{} definition found")
	}
	sc := compileBattlefield(coll.battlefield)

	for _, raw := range coll.terrain {
		patch, err := compileTerrain(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling terrain %s: %w", raw.kind, err)
		}
		sc.Terrain = append(sc.Terrain, patch)
	}

	for _, raw := range coll.zones {
		zone, err := compileZone(raw)
		if err != nil {
			return nil, fmt.Errorf("compiling clear zone: %w", err)
		}
		sc.ClearZones = append(sc.ClearZones, zone)
	}

	for i, tbl := range coll.units {
		unit, err := compileUnit(tbl)
		if err != nil {
			return nil, fmt.Errorf("compiling unit #%d: %w", i+1, err)
		}
		sc.Units = append(sc.Units, unit)
	}

	for i, tbl := range coll.objectives {
		obj, err := compileObjective(tbl)
		if err != nil {
			return nil, fmt.Errorf("compiling objective #%d: %w", i+1, err)
		}
		sc.Objectives = append(sc.Objectives, obj)
	}

	return sc, nil
}

func compileBattlefield(tbl *lua.LTable) *Scenario {
	seed, _ := getNumber(tbl, "seed")
	return &Scenario{
		Title:       getString(tbl, "title"),
		Description: getString(tbl, "description"),
		Width:       getInt(tbl, "width", 0),
		Height:      getInt(tbl, "height", 0),
		Seed:        int64(seed),
		Start:       getBool(tbl, "start", false),
	}
}

func compileTerrain(raw rawTerrain) (TerrainPatch, error) {
	t, ok := parseTerrain(raw.kind)
	if !ok {
		return TerrainPatch{}, fmt.Errorf("unknown terrain %q", raw.kind)
	}
	coords, err := toCoords(raw.table)
	if err != nil {
		return TerrainPatch{}, err
	}
	patch := TerrainPatch{Terrain: t, Hexes: coords, order: raw.order}
	if elev, ok := getNumber(raw.table, "elevation"); ok {
		patch.Elevation, patch.HasElevation = int(elev), true
	}
	return patch, nil
}

func compileZone(raw rawZone) (ClearZone, error) {
	at := raw.table.RawGetString("at")
	if at == lua.LNil {
		return ClearZone{}, fmt.Errorf("at is required")
	}
	c, err := toCoord(at)
	if err != nil {
		return ClearZone{}, fmt.Errorf("at: %w", err)
	}
	return ClearZone{Center: c, Radius: getInt(raw.table, "radius", 1), order: raw.order}, nil
}

func compileUnit(tbl *lua.LTable) (UnitDef, error) {
	id, ok := getNumber(tbl, "id")
	if !ok {
		return UnitDef{}, fmt.Errorf("id is required")
	}
	typ, err := host.ParseUnitType(getString(tbl, "type"))
	if err != nil {
		return UnitDef{}, fmt.Errorf("unit %d: %w", int(id), err)
	}
	owner, err := host.ParsePlayer(getInt(tbl, "player", 0))
	if err != nil {
		return UnitDef{}, fmt.Errorf("unit %d: %w", int(id), err)
	}
	at := tbl.RawGetString("at")
	if at == lua.LNil {
		return UnitDef{}, fmt.Errorf("unit %d: at is required", int(id))
	}
	pos, err := toCoord(at)
	if err != nil {
		return UnitDef{}, fmt.Errorf("unit %d: at: %w", int(id), err)
	}
	facing, err := parseFacingValue(tbl.RawGetString("facing"))
	if err != nil {
		return UnitDef{}, fmt.Errorf("unit %d: %w", int(id), err)
	}
	return UnitDef{ID: int(id), Type: typ, Owner: owner, At: pos, Facing: facing}, nil
}

func compileObjective(tbl *lua.LTable) (ObjectiveDef, error) {
	winner, err := host.ParsePlayer(getInt(tbl, "winner", 0))
	if err != nil {
		return ObjectiveDef{}, err
	}
	obj := ObjectiveDef{
		Name:   getString(tbl, "name"),
		Winner: winner,
		When:   strings.TrimSpace(getString(tbl, "when")),
	}
	if obj.Name == "" {
		obj.Name = "objective for " + winner.String()
	}
	return obj, nil
}

// sortedLuaFiles returns .lua files in a directory, with scenario.lua
// first and the rest sorted alphabetically.
func sortedLuaFiles(files []string) []string {
	var mainFile string
	var others []string
	for _, f := range files {
		if f == "scenario.lua" {
			mainFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if mainFile != "" {
		return append([]string{mainFile}, others...)
	}
	return others
}

// unitLabel names a unit in validation messages.
func unitLabel(u UnitDef) string {
	return "unit " + strconv.Itoa(u.ID) + " (" + u.Type.SpriteKey() + ")"
}
