package host

import (
	"strings"

	"github.com/nathoo/titanhunt/engine/hex"
	"github.com/nathoo/titanhunt/engine/state"
	"github.com/nathoo/titanhunt/types"
)

// CellKind tells a renderer how to style a board cell.
type CellKind int

const (
	CellTerrain CellKind = iota
	CellReachable
	CellPath
	CellPlayer1
	CellPlayer2
	CellWreck
)

// Cell is one rendered hex: a two-character glyph plus flags.
type Cell struct {
	Coord    hex.Coord
	Glyph    string
	Kind     CellKind
	Terrain  types.TerrainType
	Cursor   bool
	Selected bool
}

// Row is one map row. Odd rows are shifted right by half a cell.
type Row struct {
	Shifted bool
	Cells   []Cell
}

// Overlay carries the transient highlights drawn over the board.
type Overlay struct {
	Reachable map[hex.Coord]int
	Path      []hex.Coord
	Cursor    *hex.Coord
}

var terrainGlyphs = map[types.TerrainType]string{
	types.Clear:      " .",
	types.Rough:      " :",
	types.Woods:      " T",
	types.Water:      " ~",
	types.Ruins:      " #",
	types.Impassable: " X",
}

var unitLetters = map[types.UnitType]string{
	types.ReaverTitan:  "R",
	types.WarlordTitan: "W",
	types.Shadowsword:  "S",
	types.Shadowsword2: "S",
	types.Shadowsword3: "S",
}

// Layout arranges the map into rows of cells. Units hide terrain; the
// path hides the reach overlay.
func Layout(s *state.GameState, ov Overlay) []Row {
	onPath := make(map[hex.Coord]bool, len(ov.Path))
	for _, c := range ov.Path {
		onPath[c] = true
	}
	var selected *state.Unit
	if u, ok := s.SelectedUnit(); ok {
		selected = u
	}

	var rows []Row
	cur := -1
	for _, c := range s.Map.Coords() {
		if c.R != cur {
			rows = append(rows, Row{Shifted: c.R%2 != 0})
			cur = c.R
		}
		terrain := s.Map.TerrainAt(c)
		cell := Cell{Coord: c, Glyph: terrainGlyphs[terrain], Kind: CellTerrain, Terrain: terrain}

		if rem, ok := ov.Reachable[c]; ok {
			cell.Glyph, cell.Kind = " "+digit(rem), CellReachable
		}
		if onPath[c] {
			cell.Glyph, cell.Kind = " o", CellPath
		}
		if u, ok := s.UnitAt(c); ok {
			cell.Glyph = unitGlyph(u)
			cell.Kind = CellPlayer1
			if u.Owner == types.Player2 {
				cell.Kind = CellPlayer2
			}
			cell.Selected = selected != nil && selected.ID == u.ID
		} else if wreck := wreckAt(s, c); wreck {
			cell.Glyph, cell.Kind = " %", CellWreck
		}
		cell.Cursor = ov.Cursor != nil && *ov.Cursor == c

		rows[len(rows)-1].Cells = append(rows[len(rows)-1].Cells, cell)
	}
	return rows
}

// RenderBoard draws the board as plain text.
func RenderBoard(s *state.GameState, ov Overlay) []string {
	rows := Layout(s, ov)
	lines := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		if row.Shifted {
			b.WriteString("  ")
		}
		for _, cell := range row.Cells {
			left, right := " ", " "
			switch {
			case cell.Cursor:
				left, right = "[", "]"
			case cell.Selected:
				left, right = "<", ">"
			}
			b.WriteString(left + cell.Glyph + right)
		}
		lines[i] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func unitGlyph(u *state.Unit) string {
	letter := unitLetters[u.Type]
	if u.Owner == types.Player2 {
		letter = strings.ToLower(letter)
	}
	return letter + digit(u.ID%10)
}

func wreckAt(s *state.GameState, c hex.Coord) bool {
	for _, u := range s.Units {
		if u.Position == c && u.IsDestroyed() {
			return true
		}
	}
	return false
}

func digit(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 9 {
		return "+"
	}
	return string(rune('0' + n))
}
