package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Footer renders context-sensitive keybinding hints.
type Footer struct {
	Width    int
	Bindings []key.Binding
}

// View renders the footer as a single line of keybinding hints.
// In compact mode (narrow terminals), shows only key hints without descriptions.
func (f Footer) View() string {
	compact := f.Width < CompactWidth

	var parts []string
	for _, b := range f.Bindings {
		if !b.Enabled() {
			continue
		}
		help := b.Help()
		var part string
		if compact {
			part = styleFooterKey.Render(help.Key)
		} else {
			part = styleFooterKey.Render(help.Key) + styleFooterSep.Render(":") + styleFooterDesc.Render(help.Desc)
		}
		parts = append(parts, part)
	}
	sep := styleFooterSep.Render("  ")
	if compact {
		sep = styleFooterSep.Render(" ")
	}
	line := strings.Join(parts, sep)
	return styleFooter.Width(f.Width).Render(line)
}

// ShopFooterBindings returns footer bindings for the storefront, narrowed to
// what the focused region accepts.
func ShopFooterBindings(km KeyMap, focus Focus) []key.Binding {
	switch focus {
	case FocusCategories:
		return []key.Binding{km.NextRegion, km.Left, km.Right, km.Enter, km.Reload, km.Quit}
	case FocusCart:
		return []key.Binding{km.NextRegion, km.Up, km.Down, km.Remove, km.Quit}
	default:
		return []key.Binding{km.NextRegion, km.Left, km.Right, km.Enter, km.Add, km.Reload, km.Quit}
	}
}

// DetailFooterBindings returns footer bindings while the detail overlay is open.
func DetailFooterBindings(km KeyMap) []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Add, km.Close, km.Quit}
}
