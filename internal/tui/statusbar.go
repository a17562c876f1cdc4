package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/greenhouse/internal/money"
)

// StatusBar renders the persistent top bar with the active category and cart
// summary.
type StatusBar struct {
	Category  string
	CartCount int
	Total     money.Amount
	Source    string // "remote" or the fixture file name
	Width     int
}

// View renders the status bar as a single line. Narrow terminals drop the
// source segment, then the category.
func (s StatusBar) View() string {
	compact := s.Width < CompactWidth

	const barPadding = 2
	innerWidth := s.Width - barPadding
	if innerWidth < 0 {
		innerWidth = 0
	}

	barBg := lipgloss.NewStyle().Background(colorSurface)
	left := styleStatusLabel.Render(iconLeaf + " greenhouse")

	items := "item"
	if s.CartCount != 1 {
		items = "items"
	}
	right := styleStatusValue.Render(fmt.Sprintf("cart %d %s ", s.CartCount, items)) +
		styleStatusTotal.Render(s.Total.String())

	var middle []string
	if s.Category != "" {
		middle = append(middle, styleStatusValue.Render(s.Category))
	}
	if s.Source != "" && !compact {
		middle = append(middle, styleStatusValue.Render("· "+s.Source))
	}

	line := left
	for _, seg := range middle {
		candidate := line + barBg.Render("  ") + seg
		if lipgloss.Width(candidate)+lipgloss.Width(right)+2 > innerWidth {
			break
		}
		line = candidate
	}

	gap := innerWidth - lipgloss.Width(line) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line += barBg.Render(strings.Repeat(" ", gap)) + right
	return styleStatusBar.Width(s.Width).MaxWidth(s.Width).Render(line)
}
