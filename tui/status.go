package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// renderStatusBar produces a full-width inverted status line showing the
// scenario, turn, phase, active player, selection and cursor.
func (m Model) renderStatusBar() string {
	h := m.host

	left := fmt.Sprintf(" %s | %s turn | %s | Player %d",
		m.title, humanize.Ordinal(h.CurrentTurn()), h.Engine.State.Phase, h.ActivePlayer())
	style := styleStatusBar
	if over, winner := h.GameOver(); over {
		left = fmt.Sprintf(" %s | Player %d wins on the %s turn", m.title, winner, humanize.Ordinal(h.CurrentTurn()))
		style = styleStatusOver
	}

	right := fmt.Sprintf("%v ", m.cursor)
	if u, ok := h.Engine.State.SelectedUnit(); ok {
		candidate := fmt.Sprintf("Sel: %s #%d %d/%d MP | %v ",
			u.Type.DisplayName(), u.ID, u.MovementRemaining, u.Type.BaseMovement(), m.cursor)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("#%d | %v ", u.ID, m.cursor)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}
