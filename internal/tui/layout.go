package tui

import (
	"unicode/utf8"
)

// Minimum terminal dimensions for usable rendering.
const (
	MinWidth  = 40
	MinHeight = 10
)

// Layout breakpoints and fixed region sizes.
const (
	// CompactWidth triggers compact mode for the footer and status bar.
	CompactWidth = 60
	// SideCartWidth is the minimum terminal width for placing the cart
	// panel beside the grid. Narrower terminals stack it below.
	SideCartWidth = 96
	// cartPanelWidth is the cart panel width when it sits beside the grid.
	cartPanelWidth = 34
	// gridColumns is the number of plant cards per grid row.
	gridColumns = 3
	// cardBodyLines is the number of content lines inside a card.
	cardBodyLines = 5
	// cardHeight is a card's rendered height including its border.
	cardHeight = cardBodyLines + 2
	// categoryBarY is the screen row of the category bar.
	categoryBarY = 1
	// gridTop is the screen row of the first card row. Rows above it are
	// the status bar, the category bar, the section border, and the grid
	// title.
	gridTop = 4
	// overlayMaxWidth caps the detail overlay width.
	overlayMaxWidth = 72
	// overlayMaxBodyHeight caps the detail overlay's scrollable body.
	overlayMaxBodyHeight = 16
)

// TruncateWithEllipsis truncates s to maxLen runes, appending "..." if truncated.
// If maxLen is less than 4, returns s truncated to maxLen runes without ellipsis.
// Returns s unchanged if it fits within maxLen runes.
func TruncateWithEllipsis(s string, maxLen int) string {
	runeCount := utf8.RuneCountInString(s)
	if runeCount <= maxLen {
		return s
	}
	if maxLen < 4 {
		if maxLen <= 0 {
			return ""
		}
		return truncateToNRunes(s, maxLen)
	}
	return truncateToNRunes(s, maxLen-3) + "..."
}

// truncateToNRunes returns the first n runes of s as a string.
func truncateToNRunes(s string, n int) string {
	i := 0
	for j := 0; j < n; j++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i]
}

// gridWidth returns the width available to the plant grid.
func gridWidth(width int) int {
	if width >= SideCartWidth {
		return width - cartPanelWidth
	}
	return width
}

// cardWidth returns the rendered width of one plant card.
func cardWidth(width int) int {
	w := gridWidth(width) / gridColumns
	if w < 12 {
		return 12
	}
	return w
}

// cardAt maps a screen position to a working-set index, or -1 when the
// position is not over a card slot.
func cardAt(width, x, y int) int {
	if y < gridTop || x < 0 || x >= gridWidth(width) {
		return -1
	}
	row := (y - gridTop) / cardHeight
	col := x / cardWidth(width)
	if col >= gridColumns {
		return -1
	}
	return row*gridColumns + col
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
