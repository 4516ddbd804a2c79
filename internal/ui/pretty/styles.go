// Package pretty provides Lipgloss-based styled output for the CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Node listing components.
	ID       lipgloss.Style
	Hint     lipgloss.Style
	Kind     lipgloss.Style
	Location lipgloss.Style
	FilePath lipgloss.Style

	// Table components.
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Status components.
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style

	// Misc.
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		ID:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Hint:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Kind:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		FilePath: lipgloss.NewStyle().Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		ID:             plain,
		Hint:           plain,
		Kind:           plain,
		Location:       plain,
		FilePath:       plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Success:        plain,
		Failure:        plain,
		Warning:        plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ColorEnabled resolves a color mode ("auto", "always", "never") against
// whether the writer is a terminal.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if f, ok := w.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
