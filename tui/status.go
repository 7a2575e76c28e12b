package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/stranded/engine/player"
)

// renderStatusBar produces a full-width inverted status line showing the
// current location, score and turn count from the latest snapshot.
func (m Model) renderStatusBar() string {
	s := m.status

	left := fmt.Sprintf(" %s | %s", s.Title, s.Location)
	right := fmt.Sprintf("Score: %d | T:%d ", s.Score, s.Turn)
	if s.State == player.Dead {
		right = "DEAD | " + right
	}

	// Drop the title before squeezing the location.
	if lipgloss.Width(left)+lipgloss.Width(right) > m.width {
		left = " " + s.Location
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	style := styleStatusBar
	if s.State == player.Dead {
		style = styleStatusDead
	}
	return style.Width(m.width).Render(bar)
}
