package pretty

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	defaultTableWidth = 100
	minHintWidth      = 8
)

// NodeRow is one row of the node listing table.
type NodeRow struct {
	ID       string
	Kind     string
	Hint     string
	Location string
}

// RenderNodeTable writes a node listing as an aligned table, truncating
// hints so rows fit the terminal width.
func RenderNodeTable(w io.Writer, styles *Styles, rows []NodeRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, styles.Dim.Render("no nodes"))
		return
	}

	width := terminalWidth(w)

	kindWidth := len("KIND")
	locWidth := len("LOCATION")
	for _, row := range rows {
		if len(row.Kind) > kindWidth {
			kindWidth = len(row.Kind)
		}
		if len(row.Location) > locWidth {
			locWidth = len(row.Location)
		}
	}

	idWidth := len(rows[0].ID)
	if idWidth < len("ID") {
		idWidth = len("ID")
	}

	hintWidth := width - idWidth - kindWidth - locWidth - 6
	if hintWidth < minHintWidth {
		hintWidth = minHintWidth
	}

	header := fmt.Sprintf("%-*s  %-*s  %-*s  %s",
		idWidth, "ID", kindWidth, "KIND", locWidth, "LOCATION", "HINT")
	fmt.Fprintln(w, styles.TableHeader.Render(header))
	fmt.Fprintln(w, styles.TableSeparator.Render(strings.Repeat("-", min(width, len(header)+hintWidth))))

	for _, row := range rows {
		hint := truncateHint(row.Hint, hintWidth)
		fmt.Fprintf(w, "%s  %s  %s  %s\n",
			styles.ID.Render(fmt.Sprintf("%-*s", idWidth, row.ID)),
			styles.Kind.Render(fmt.Sprintf("%-*s", kindWidth, row.Kind)),
			styles.Location.Render(fmt.Sprintf("%-*s", locWidth, row.Location)),
			styles.Hint.Render(hint))
	}
}

// truncateHint shortens a hint to at most width runes, cutting on a rune
// boundary so multibyte hints stay valid UTF-8.
func truncateHint(hint string, width int) string {
	runes := []rune(hint)
	if len(runes) <= width {
		return hint
	}
	return string(runes[:width-1]) + "…"
}

// terminalWidth returns the width of the terminal behind w, or a default
// for non-terminal writers.
func terminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultTableWidth
}
