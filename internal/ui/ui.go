// Package ui prints catalog listings for the non-interactive commands.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/papapumpkin/greenhouse/internal/ansi"
	"github.com/papapumpkin/greenhouse/internal/catalog"
	"github.com/papapumpkin/greenhouse/internal/money"
)

// Printer writes human-readable catalog output. With color disabled every
// SGR sequence is stripped before writing.
type Printer struct {
	w     io.Writer
	color bool
}

// New returns a Printer writing to w.
func New(w io.Writer, color bool) *Printer {
	return &Printer{w: w, color: color}
}

func (p *Printer) printf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if !p.color {
		s = ansi.Strip(s)
	}
	fmt.Fprint(p.w, s)
}

// Categories prints one line per category.
func (p *Printer) Categories(cats []catalog.Category) {
	if len(cats) == 0 {
		p.printf(ansi.Dim + "No categories available." + ansi.Reset + "\n")
		return
	}
	p.printf(ansi.Bold+ansi.Cyan+"categories (%d)"+ansi.Reset+"\n", len(cats))
	for _, c := range cats {
		p.printf("  "+ansi.Dim+"%-6s"+ansi.Reset+" %s\n", c.ID, c.Name)
	}
}

// Plants prints the working set of a category as a table.
func (p *Printer) Plants(categoryID string, plants []catalog.PlantSummary) {
	if len(plants) == 0 {
		p.printf(ansi.Dim + "No plants available in this category." + ansi.Reset + "\n")
		return
	}
	p.printf(ansi.Bold+ansi.Cyan+"category %s: %d plant(s)"+ansi.Reset+"\n", categoryID, len(plants))
	var total money.Amount
	for _, pl := range plants {
		p.printf("  "+ansi.Dim+"%-8s"+ansi.Reset+" "+ansi.Bold+"%-24s"+ansi.Reset+" %-14s "+ansi.Green+"%9s"+ansi.Reset+"\n",
			pl.ID, pl.Name, pl.CategoryLabel(), pl.Price)
		p.printf("           "+ansi.Dim+"%s"+ansi.Reset+"\n", pl.ShortDescription)
		total += pl.Price
	}
	p.printf("  "+ansi.Dim+"listed total %s"+ansi.Reset+"\n", total)
}

// PlantDetail prints every field of a plant, one per line.
func (p *Printer) PlantDetail(d catalog.PlantDetail) {
	d = d.Labeled()
	p.printf(ansi.Bold+ansi.Magenta+"%s"+ansi.Reset+" "+ansi.Dim+"(%s)"+ansi.Reset+"\n", d.Name, d.ID)
	rows := []struct {
		label string
		value string
	}{
		{"scientific name", d.ScientificName},
		{"category", d.Category},
		{"price", d.Price.String()},
		{"care", d.CareInstructions},
		{"image", d.ImageURL},
	}
	for _, r := range rows {
		p.printf("  %-16s %s\n", r.label+":", r.value)
	}
	p.printf("\n%s\n", wrap(d.FullDescription, 72, "  "))
}

// Info prints a dimmed informational line.
func (p *Printer) Info(msg string) {
	p.printf(ansi.Dim+"%s"+ansi.Reset+"\n", msg)
}

// Error prints an error line.
func (p *Printer) Error(msg string) {
	p.printf(ansi.Red+ansi.Bold+"error: "+ansi.Reset+"%s\n", msg)
}

// JSON writes v as indented JSON, never colored.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// wrap breaks s into lines of at most width runes, each prefixed by indent.
func wrap(s string, width int, indent string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return indent
	}
	var b strings.Builder
	line := indent
	for _, w := range words {
		if len([]rune(line))+len([]rune(w))+1 > width+len(indent) && line != indent {
			b.WriteString(strings.TrimRight(line, " "))
			b.WriteByte('\n')
			line = indent
		}
		line += w + " "
	}
	b.WriteString(strings.TrimRight(line, " "))
	return b.String()
}
