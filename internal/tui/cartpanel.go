package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/greenhouse/internal/cart"
)

// cartEmptyText is shown in place of items when the cart is empty.
const cartEmptyText = "Your cart is empty."

// CartPanel renders the cart items and running total.
type CartPanel struct {
	Items   []cart.Item
	Total   string
	Cursor  int
	Focused bool
	Width   int
}

// View renders the panel.
func (c CartPanel) View() string {
	titleStyle := styleRegionTitleBlurred
	if c.Focused {
		titleStyle = styleRegionTitle
	}
	inner := c.Width - 2
	if inner < 10 {
		inner = 10
	}

	lines := []string{titleStyle.Render(fmt.Sprintf("Your Cart (%d)", len(c.Items)))}
	if len(c.Items) == 0 {
		lines = append(lines, styleEmpty.Render(cartEmptyText))
	}
	for i, item := range c.Items {
		price := item.Price.String()
		nameWidth := inner - 2 - lipgloss.Width(price) - 1
		name := TruncateWithEllipsis(item.Name, nameWidth)
		pad := inner - 2 - lipgloss.Width(name) - lipgloss.Width(price)
		if pad < 1 {
			pad = 1
		}
		row := name + strings.Repeat(" ", pad) + price
		if c.Focused && i == c.Cursor {
			lines = append(lines, styleSelectionIndicator.Render(selectionIndicator)+" "+styleRowSelected.Render(row))
		} else {
			lines = append(lines, "  "+styleRowNormal.Render(row))
		}
	}
	lines = append(lines, styleDetailSep.Render(strings.Repeat("─", inner)))
	lines = append(lines, styleCartTotal.Render("Total: "+c.Total))
	return styleCartPanel.Width(c.Width - 1).Render(strings.Join(lines, "\n"))
}
