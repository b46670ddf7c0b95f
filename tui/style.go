package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/titanhunt/host"
	"github.com/nathoo/titanhunt/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusOver = lipgloss.NewStyle().
			Background(lipgloss.Color("88")).
			Foreground(lipgloss.Color("231")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarration = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleEvent = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117"))

	styleVictory = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Board cell styles.
var (
	terrainStyles = map[types.TerrainType]lipgloss.Style{
		types.Clear:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		types.Rough:      lipgloss.NewStyle().Foreground(lipgloss.Color("137")),
		types.Woods:      lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
		types.Water:      lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		types.Ruins:      lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
		types.Impassable: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
	}

	cellStyles = map[host.CellKind]lipgloss.Style{
		host.CellReachable: lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("22")),
		host.CellPath:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		host.CellPlayer1:   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		host.CellPlayer2:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		host.CellWreck:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}

	styleCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	styleSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
)

// cellStyle picks the glyph style for a board cell.
func cellStyle(c host.Cell) lipgloss.Style {
	if c.Kind == host.CellTerrain {
		return terrainStyles[c.Terrain]
	}
	return cellStyles[c.Kind]
}

// renderCell draws one 4-column board cell: a bracket pair around the
// two-character glyph.
func renderCell(c host.Cell) string {
	left, right := " ", " "
	var bracket lipgloss.Style
	switch {
	case c.Cursor:
		left, right, bracket = "[", "]", styleCursor
	case c.Selected:
		left, right, bracket = "<", ">", styleSelected
	}
	return bracket.Render(left) + cellStyle(c).Render(c.Glyph) + bracket.Render(right)
}

// renderRows draws the whole board.
func renderRows(rows []host.Row) []string {
	lines := make([]string, len(rows))
	for i, row := range rows {
		var b strings.Builder
		if row.Shifted {
			b.WriteString("  ")
		}
		for _, c := range row.Cells {
			b.WriteString(renderCell(c))
		}
		lines[i] = b.String()
	}
	return lines
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarration lineKind = iota
	kindEvent
	kindVictory
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Game over"):
		return kindVictory
	case strings.HasPrefix(line, "Rejected:"),
		strings.HasPrefix(line, "Warning:"),
		strings.HasPrefix(line, "no unit"),
		strings.HasPrefix(line, "which "),
		strings.Contains(line, "cannot reach"),
		strings.Contains(line, "is not a number"):
		return kindError
	case isEventLine(line):
		return kindEvent
	default:
		return kindNarration
	}
}

// isEventLine matches the narration produced for committed events.
func isEventLine(line string) bool {
	switch {
	case strings.HasPrefix(line, "Unit ") && (strings.Contains(line, " moves ") || strings.Contains(line, " holds ")),
		strings.HasPrefix(line, "Unit ") && strings.HasSuffix(line, "is destroyed."),
		strings.Contains(line, " phase ends; "),
		strings.HasPrefix(line, "The ") && strings.HasSuffix(line, " turn begins."):
		return true
	}
	return false
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindEvent:
		return styleEvent.Render(line)
	case kindVictory:
		return styleVictory.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarration.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
