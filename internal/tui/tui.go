package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

// Program is an alias for tea.Program, exposed so callers don't need
// to import bubbletea directly.
type Program = tea.Program

// NewProgram creates a BubbleTea program for the storefront.
// The program uses the alternate screen buffer, and reports mouse clicks
// unless opts.Mouse is false.
func NewProgram(opts Options, extra ...tea.ProgramOption) *Program {
	model := NewAppModel(opts)

	allOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
	}
	if opts.Mouse {
		allOpts = append(allOpts, tea.WithMouseCellMotion())
	}
	allOpts = append(allOpts, extra...)

	return tea.NewProgram(model, allOpts...)
}

// Run creates and runs the storefront, blocking until the user quits.
func Run(opts Options, extra ...tea.ProgramOption) error {
	p := NewProgram(opts, extra...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// WithOutput returns a program option that directs TUI output to the given writer.
func WithOutput(w io.Writer) tea.ProgramOption {
	return tea.WithOutput(w)
}

// WithInput returns a program option that reads TUI input from r.
func WithInput(r io.Reader) tea.ProgramOption {
	return tea.WithInput(r)
}
