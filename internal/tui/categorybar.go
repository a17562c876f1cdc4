package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/shop"
)

// categoryBarPrefix precedes the buttons on the category bar.
const categoryBarPrefix = "Categories "

// CategoryBar renders one button per category on a single line.
type CategoryBar struct {
	Categories []catalog.Category
	Active     string
	Cursor     int
	Focused    bool
	Status     shop.Status
	Spinner    string
	Width      int
}

func (c CategoryBar) button(i int) string {
	cat := c.Categories[i]
	switch {
	case cat.ID == c.Active:
		return styleCategoryActive.Render(cat.Name)
	case c.Focused && i == c.Cursor:
		return styleCategoryCursor.Render(cat.Name)
	default:
		return styleCategoryInactive.Render(cat.Name)
	}
}

func (c CategoryBar) prefix() string {
	if c.Focused {
		return styleRegionTitle.Render(categoryBarPrefix)
	}
	return styleRegionTitleBlurred.Render(categoryBarPrefix)
}

// View renders the bar.
func (c CategoryBar) View() string {
	var body string
	switch {
	case c.Status == shop.StatusLoading:
		body = c.Spinner + " " + styleEmpty.Render("Loading categories...")
	case c.Status == shop.StatusFailed:
		body = styleError.Render(iconFailed + " " + shop.MsgCategoriesFailed)
	case len(c.Categories) == 0 && c.Status == shop.StatusReady:
		body = styleEmpty.Render(shop.MsgCategoriesEmpty)
	default:
		parts := make([]string, len(c.Categories))
		for i := range c.Categories {
			parts[i] = c.button(i)
		}
		body = strings.Join(parts, " ")
	}
	return lipgloss.NewStyle().MaxWidth(c.Width).Render(c.prefix() + body)
}

// ButtonAt returns the index of the category button covering column x, or -1.
// Buttons are only hit while they are on screen, i.e. when the bar is ready.
func (c CategoryBar) ButtonAt(x int) int {
	if c.Status != shop.StatusReady {
		return -1
	}
	pos := lipgloss.Width(c.prefix())
	for i := range c.Categories {
		w := lipgloss.Width(c.button(i))
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1
	}
	return -1
}
