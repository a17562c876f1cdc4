package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/greenhouse/internal/cart"
	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/shop"
)

// PlantGrid renders the working set as cards, three per row.
type PlantGrid struct {
	Title   string
	Plants  []catalog.PlantSummary
	Status  shop.Status
	Cursor  int
	Focused bool
	Cart    *cart.Store
	Spinner string
	Width   int // full terminal width; the grid takes gridWidth of it
}

// View renders the grid title followed by the cards or an inline message.
func (g PlantGrid) View() string {
	titleStyle := styleRegionTitleBlurred
	if g.Focused {
		titleStyle = styleRegionTitle
	}
	title := g.Title
	if title == "" {
		title = "Plants"
	}
	w := gridWidth(g.Width)
	lines := []string{titleStyle.Render(TruncateWithEllipsis(title, w))}

	switch g.Status {
	case shop.StatusLoading:
		lines = append(lines, g.Spinner+" "+styleEmpty.Render("Loading plants..."))
	case shop.StatusFailed:
		lines = append(lines, styleError.Render(iconFailed+" "+shop.MsgPlantsFailed))
	case shop.StatusReady:
		if len(g.Plants) == 0 {
			lines = append(lines, styleEmpty.Render(shop.MsgPlantsEmpty))
			break
		}
		for start := 0; start < len(g.Plants); start += gridColumns {
			end := start + gridColumns
			if end > len(g.Plants) {
				end = len(g.Plants)
			}
			row := make([]string, 0, gridColumns)
			for i := start; i < end; i++ {
				row = append(row, g.card(i))
			}
			lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, row...))
		}
	}
	return strings.Join(lines, "\n")
}

// card renders plant i with exactly cardBodyLines content lines.
func (g PlantGrid) card(i int) string {
	p := g.Plants[i]
	outer := cardWidth(g.Width)
	text := outer - 4 // border and padding
	if text < 1 {
		text = 1
	}

	desc := strings.Split(lipgloss.NewStyle().Width(text).Render(p.ShortDescription), "\n")
	if len(desc) > 2 {
		desc = desc[:2]
		desc[1] = TruncateWithEllipsis(strings.TrimRight(desc[1], " ")+"...", text)
	}
	for len(desc) < 2 {
		desc = append(desc, "")
	}

	action := styleCardDesc.Render("a add")
	if g.Cart != nil && g.Cart.Contains(p.ID) {
		action = styleInCart.Render(iconInCart + " in cart")
	}

	body := []string{
		styleCardName.Render(TruncateWithEllipsis(p.Name, text)),
		styleCardDesc.Render(desc[0]),
		styleCardDesc.Render(desc[1]),
		styleCardCategory.Render(TruncateWithEllipsis("Category: "+p.CategoryLabel(), text)),
		stylePrice.Render(p.Price.String()) + "  " + action,
	}

	style := styleCard
	if g.Focused && i == g.Cursor {
		style = styleCardSelected
	}
	return style.Width(outer - 2).Height(cardBodyLines).MaxHeight(cardHeight).Render(strings.Join(body, "\n"))
}
