package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/papapumpkin/greenhouse/internal/cart"
	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/money"
	"github.com/papapumpkin/greenhouse/internal/shop"
)

func TestTruncateWithEllipsis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"fits", "Mango", 10, "Mango"},
		{"exact", "Mango", 5, "Mango"},
		{"truncated", "Monstera deliciosa", 10, "Monstera..."},
		{"tiny max", "Monstera", 3, "Mon"},
		{"zero", "Monstera", 0, ""},
		{"multibyte", "Ÿucca Ÿucca", 7, "Ÿucc..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := TruncateWithEllipsis(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestCardAt(t *testing.T) {
	t.Parallel()
	const width = 120 // grid 86, cards 28 wide
	tests := []struct {
		name string
		x, y int
		want int
	}{
		{"above grid", 5, gridTop - 1, -1},
		{"first card", 1, gridTop, 0},
		{"third card", 2*28 + 1, gridTop + 3, 2},
		{"second row", 28, gridTop + cardHeight, 4},
		{"in cart panel", 100, gridTop, -1},
		{"negative x", -1, gridTop, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := cardAt(width, tt.x, tt.y); got != tt.want {
				t.Errorf("cardAt(%d, %d) = %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	t.Parallel()
	tests := []struct{ v, lo, hi, want int }{
		{5, 0, 3, 3},
		{-1, 0, 3, 0},
		{2, 0, 3, 2},
		{4, 0, -1, 0},
	}
	for _, tt := range tests {
		if got := clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestStatusBarView(t *testing.T) {
	t.Parallel()
	bar := StatusBar{
		Category:  "Fruit Tree",
		CartCount: 2,
		Total:     money.FromFloat(20),
		Source:    "remote",
		Width:     100,
	}
	view := bar.View()
	for _, want := range []string{"greenhouse", "Fruit Tree", "cart 2 items", "$20.00", "remote"} {
		if !strings.Contains(view, want) {
			t.Errorf("status bar missing %q: %q", want, view)
		}
	}
	if h := lipgloss.Height(view); h != 1 {
		t.Errorf("status bar height = %d, want 1", h)
	}

	bar.Width = 40
	bar.CartCount = 1
	narrow := bar.View()
	if strings.Contains(narrow, "remote") {
		t.Error("narrow status bar kept the source segment")
	}
	if !strings.Contains(narrow, "cart 1 item ") {
		t.Errorf("narrow status bar lost the cart summary: %q", narrow)
	}
}

func TestCartPanelView(t *testing.T) {
	t.Parallel()

	empty := CartPanel{Total: money.Zero.String(), Width: cartPanelWidth}.View()
	if !strings.Contains(empty, cartEmptyText) || !strings.Contains(empty, "Total: $0.00") {
		t.Errorf("empty cart view = %q", empty)
	}

	s := cart.New()
	_ = s.Add(cart.Item{ID: "p1", Name: "Mango", Price: money.FromFloat(10)})
	_ = s.Add(cart.Item{ID: "p2", Name: "A very long plant name that will not fit", Price: money.FromFloat(2.5)})
	view := CartPanel{Items: s.Items(), Total: s.Total().String(), Width: cartPanelWidth, Focused: true}.View()
	for _, want := range []string{"Your Cart (2)", "Mango", "$10.00", "$2.50", "...", "Total: $12.50", selectionIndicator} {
		if !strings.Contains(view, want) {
			t.Errorf("cart view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, cartEmptyText) {
		t.Error("non-empty cart shows the empty text")
	}
	for _, line := range strings.Split(view, "\n") {
		if w := lipgloss.Width(line); w > cartPanelWidth {
			t.Errorf("line wider than panel (%d): %q", w, line)
		}
	}
}

func TestCategoryBarStates(t *testing.T) {
	t.Parallel()
	cats := []catalog.Category{{ID: "1", Name: "Fruit Tree"}, {ID: "2", Name: "Herb"}}
	tests := []struct {
		name string
		bar  CategoryBar
		want string
	}{
		{"loading", CategoryBar{Status: shop.StatusLoading, Width: 80}, "Loading categories..."},
		{"failed", CategoryBar{Status: shop.StatusFailed, Width: 80}, shop.MsgCategoriesFailed},
		{"empty", CategoryBar{Status: shop.StatusReady, Width: 80}, shop.MsgCategoriesEmpty},
		{"ready", CategoryBar{Categories: cats, Active: "1", Status: shop.StatusReady, Width: 80}, "Herb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.bar.View(); !strings.Contains(got, tt.want) {
				t.Errorf("view = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryBarButtonAt(t *testing.T) {
	t.Parallel()
	bar := CategoryBar{
		Categories: []catalog.Category{{ID: "1", Name: "Fruit"}, {ID: "2", Name: "Herb"}},
		Active:     "1",
		Status:     shop.StatusReady,
		Width:      80,
	}
	prefix := lipgloss.Width(categoryBarPrefix)
	first := lipgloss.Width(bar.button(0))

	if got := bar.ButtonAt(prefix - 1); got != -1 {
		t.Errorf("ButtonAt(prefix-1) = %d, want -1", got)
	}
	if got := bar.ButtonAt(prefix); got != 0 {
		t.Errorf("ButtonAt(prefix) = %d, want 0", got)
	}
	if got := bar.ButtonAt(prefix + first); got != -1 {
		t.Errorf("separator column = %d, want -1", got)
	}
	if got := bar.ButtonAt(prefix + first + 1); got != 1 {
		t.Errorf("second button = %d, want 1", got)
	}
}

func TestCategoryBarButtonAt_NotReady(t *testing.T) {
	t.Parallel()
	for _, status := range []shop.Status{shop.StatusLoading, shop.StatusFailed, shop.StatusIdle} {
		bar := CategoryBar{
			Categories: []catalog.Category{{ID: "1", Name: "Fruit"}, {ID: "2", Name: "Herb"}},
			Active:     "1",
			Status:     status,
			Width:      80,
		}
		for x := 0; x < bar.Width; x++ {
			if got := bar.ButtonAt(x); got != -1 {
				t.Errorf("status %s: ButtonAt(%d) = %d, want -1", status, x, got)
				break
			}
		}
	}
}

func TestPlantGridCards(t *testing.T) {
	t.Parallel()
	s := cart.New()
	plants := plantsFor("1", "Mango", 5)
	_ = s.Add(cart.Item{ID: plants[1].ID, Name: plants[1].Name, Price: plants[1].Price})
	plants[2].Category = ""
	plants[3].ShortDescription = strings.Repeat("word ", 40)

	view := PlantGrid{Title: "Fruit Tree", Plants: plants, Status: shop.StatusReady, Cart: s, Width: 120}.View()

	if got := strings.Count(view, "╭"); got != 5 {
		t.Errorf("rendered %d cards, want 5", got)
	}
	for _, want := range []string{"Fruit Tree", iconInCart + " in cart", "a add", "Category: " + catalog.UnknownCategory} {
		if !strings.Contains(view, want) {
			t.Errorf("grid missing %q", want)
		}
	}
	// Title plus two rows of cards.
	if h := lipgloss.Height(view); h != 1+2*cardHeight {
		t.Errorf("grid height = %d, want %d", h, 1+2*cardHeight)
	}
}

func TestFooterCompact(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	wide := Footer{Width: 100, Bindings: ShopFooterBindings(km, FocusPlants)}.View()
	if !strings.Contains(wide, "add") || !strings.Contains(wide, "reload") {
		t.Errorf("wide footer missing descriptions: %q", wide)
	}
	narrow := Footer{Width: 40, Bindings: ShopFooterBindings(km, FocusPlants)}.View()
	if strings.Contains(narrow, "reload") {
		t.Errorf("compact footer shows descriptions: %q", narrow)
	}
	cartHints := Footer{Width: 100, Bindings: ShopFooterBindings(km, FocusCart)}.View()
	if !strings.Contains(cartHints, "remove") || strings.Contains(cartHints, "add") {
		t.Errorf("cart footer = %q", cartHints)
	}
}

func TestDetailKeyMapDisablesNavigation(t *testing.T) {
	t.Parallel()
	km := DetailKeyMap()
	if km.NextRegion.Enabled() || km.Enter.Enabled() || km.Reload.Enabled() {
		t.Error("region keys should be disabled in the overlay")
	}
	if !km.Close.Enabled() || !km.Add.Enabled() {
		t.Error("close and add must stay enabled")
	}
}

func TestOverlayBounds(t *testing.T) {
	t.Parallel()
	box := strings.Repeat("x", 20) + "\n" + strings.Repeat("x", 20)
	r := overlayBounds(box, 100, 30)
	want := rect{X: 40, Y: 14, W: 20, H: 2}
	if r != want {
		t.Errorf("bounds = %+v, want %+v", r, want)
	}
	if !r.contains(40, 14) || r.contains(60, 14) || r.contains(40, 16) {
		t.Error("contains does not match the half-open rectangle")
	}

	placed := strings.Split(centerOverlay(box, 100, 30), "\n")
	if got := strings.Index(placed[14], "x"); got != 40 {
		t.Errorf("first box column = %d, want 40", got)
	}
}

func TestRenderDetailBody(t *testing.T) {
	t.Parallel()
	d := catalog.PlantDetail{PlantSummary: catalog.PlantSummary{ID: "p1", Name: "Mango", Price: money.FromFloat(10)}}
	body := renderDetailBody(d, shop.DetailFromSummary, true, 40)
	for _, want := range []string{
		catalog.NoScientificName,
		catalog.UnspecifiedCategory,
		catalog.NoCareInstructions,
		catalog.NoFullDescription,
		"$10.00",
		"in cart",
		"Showing listing details.",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}
	fetched := renderDetailBody(d, shop.DetailFetched, false, 40)
	if strings.Contains(fetched, "Showing listing details.") || strings.Contains(fetched, "in cart") {
		t.Errorf("fetched body has fallback markers:\n%s", fetched)
	}
}
