package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/shop"
)

// rect is a screen rectangle in cells.
type rect struct {
	X, Y, W, H int
}

// contains reports whether (x, y) falls inside r.
func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// centerOverlay places content in the center of a width x height area.
func centerOverlay(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	b := overlayBounds(content, width, height)
	return lipgloss.NewStyle().
		PaddingLeft(b.X).
		PaddingTop(b.Y).
		Render(content)
}

// overlayBounds returns where centerOverlay draws content.
func overlayBounds(content string, width, height int) rect {
	w := lipgloss.Width(content)
	h := lipgloss.Height(content)
	r := rect{W: w, H: h}
	if w < width {
		r.X = (width - w) / 2
	}
	if h < height {
		r.Y = (height - h) / 2
	}
	return r
}

// overlaySize returns the viewport size for the detail overlay in a
// width x height terminal.
func overlaySize(width, height int) (int, int) {
	w := width - 8
	if w > overlayMaxWidth {
		w = overlayMaxWidth
	}
	if w < 20 {
		w = 20
	}
	h := height - 8
	if h > overlayMaxBodyHeight {
		h = overlayMaxBodyHeight
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

// renderDetailBody formats a resolved plant detail for the overlay viewport.
func renderDetailBody(d catalog.PlantDetail, src shop.DetailSource, inCart bool, width int) string {
	d = d.Labeled()
	var b strings.Builder

	rows := []struct {
		label string
		value string
	}{
		{"Scientific name", d.ScientificName},
		{"Category", d.Category},
		{"Care", d.CareInstructions},
	}
	for _, r := range rows {
		b.WriteString(styleDetailLabel.Render(r.label+": ") + r.value + "\n")
	}
	b.WriteString(styleDetailLabel.Render("Price: ") + stylePrice.Render(d.Price.String()))
	if inCart {
		b.WriteString("  " + styleInCart.Render(iconInCart+" in cart"))
	}
	b.WriteString("\n")
	b.WriteString(styleDetailDim.Render(TruncateWithEllipsis(d.ImageURL, width)) + "\n")
	b.WriteString(styleDetailSep.Render(strings.Repeat("─", width)) + "\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Render(d.FullDescription))
	if src == shop.DetailFromSummary {
		b.WriteString("\n\n" + styleDetailDim.Render("Showing listing details."))
	}
	return b.String()
}
