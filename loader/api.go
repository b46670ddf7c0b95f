package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/titanhunt/engine/hex"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHexHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Battlefield { title = "...", width = 12, height = 10, ... }
	L.SetGlobal("Battlefield", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		if coll.battlefield != nil {
			L.RaiseError("Battlefield defined twice")
		}
		coll.battlefield = tbl
		return 0
	}))

	// Terrain "woods" { {2,3}, {3,3}, elevation = 1 } - curried: Terrain("woods")
	// returns a function that takes a table of hexes.
	L.SetGlobal("Terrain", L.NewFunction(func(L *lua.LState) int {
		kind := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			coll.terrain = append(coll.terrain, rawTerrain{kind: kind, table: tbl, order: coll.nextSourceOrder()})
			return 0
		}))
		return 1
	}))

	// ClearZone { at = {q, r}, radius = 2 }
	L.SetGlobal("ClearZone", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.zones = append(coll.zones, rawZone{table: tbl, order: coll.nextSourceOrder()})
		return 0
	}))

	// Unit { id = 1, type = "Reaver_Titan", player = 1, at = {0, 0}, facing = "e" }
	L.SetGlobal("Unit", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.units = append(coll.units, tbl)
		return 0
	}))

	// Objective { name = "...", winner = 1, when = "expr" }
	L.SetGlobal("Objective", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.objectives = append(coll.objectives, tbl)
		return 0
	}))
}

func registerHexHelpers(L *lua.LState) {
	// Hex(q, r) -> {q, r}
	L.SetGlobal("Hex", L.NewFunction(func(L *lua.LState) int {
		q := L.CheckInt(1)
		r := L.CheckInt(2)
		L.Push(hexTable(L, hex.New(q, r)))
		return 1
	}))

	// Line(q1, r1, q2, r2) -> every hex on the straight line, endpoints
	// included.
	L.SetGlobal("Line", L.NewFunction(func(L *lua.LState) int {
		from := hex.New(L.CheckInt(1), L.CheckInt(2))
		to := hex.New(L.CheckInt(3), L.CheckInt(4))
		L.Push(hexList(L, from.LineTo(to)))
		return 1
	}))

	// Ring(q, r, radius) -> every hex at exactly radius from (q, r).
	L.SetGlobal("Ring", L.NewFunction(func(L *lua.LState) int {
		center := hex.New(L.CheckInt(1), L.CheckInt(2))
		radius := L.CheckInt(3)
		L.Push(hexList(L, ring(center, radius)))
		return 1
	}))
}

func hexTable(L *lua.LState, c hex.Coord) *lua.LTable {
	tbl := L.NewTable()
	tbl.Append(lua.LNumber(c.Q))
	tbl.Append(lua.LNumber(c.R))
	return tbl
}

func hexList(L *lua.LState, coords []hex.Coord) *lua.LTable {
	tbl := L.NewTable()
	for _, c := range coords {
		tbl.Append(hexTable(L, c))
	}
	return tbl
}

// ring walks the six sides of the hexagon at radius. Radius 0 is the
// center alone.
func ring(center hex.Coord, radius int) []hex.Coord {
	if radius <= 0 {
		return []hex.Coord{center}
	}
	var out []hex.Coord
	c := center
	for i := 0; i < radius; i++ {
		c = c.Neighbor(hex.Southwest)
	}
	for side := 0; side < 6; side++ {
		f := hex.East.Rotate(side)
		for i := 0; i < radius; i++ {
			out = append(out, c)
			c = c.Neighbor(f)
		}
	}
	return out
}
