package pretty_test

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/mdident/internal/ui/pretty"
)

func TestRenderNodeTable(t *testing.T) {
	t.Parallel()

	rows := []pretty.NodeRow{
		{ID: "k2j4xqz7", Kind: "heading", Hint: "introduction", Location: "1:0-1:14"},
		{ID: "mnp3a5bc", Kind: "paragraph", Hint: "body-text", Location: "3:0-3:42"},
	}

	var buf bytes.Buffer
	pretty.RenderNodeTable(&buf, pretty.NewStyles(false), rows)

	out := buf.String()
	for _, want := range []string{"ID", "KIND", "LOCATION", "HINT",
		"k2j4xqz7", "heading", "introduction", "3:0-3:42"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Errorf("expected header, separator, and 2 rows; got %d lines", len(lines))
	}
}

func TestRenderNodeTable_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	pretty.RenderNodeTable(&buf, pretty.NewStyles(false), nil)

	if !strings.Contains(buf.String(), "no nodes") {
		t.Errorf("empty listing output = %q", buf.String())
	}
}

func TestRenderNodeTable_TruncatesLongHints(t *testing.T) {
	t.Parallel()

	rows := []pretty.NodeRow{
		{ID: "k2j4xqz7", Kind: "paragraph", Hint: strings.Repeat("x", 300), Location: "1:0-1:5"},
	}

	var buf bytes.Buffer
	pretty.RenderNodeTable(&buf, pretty.NewStyles(false), rows)

	if !strings.Contains(buf.String(), "…") {
		t.Error("long hint was not truncated")
	}
}

func TestRenderNodeTable_TruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	rows := []pretty.NodeRow{
		{ID: "k2j4xqz7", Kind: "heading", Hint: strings.Repeat("ü", 300), Location: "1:0-1:5"},
	}

	var buf bytes.Buffer
	pretty.RenderNodeTable(&buf, pretty.NewStyles(false), rows)

	out := buf.String()
	if !utf8.ValidString(out) {
		t.Error("truncated multibyte hint produced invalid UTF-8")
	}
	if !strings.Contains(out, "ü…") {
		t.Errorf("hint not truncated on a rune boundary:\n%s", out)
	}
}

func TestColorEnabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	if !pretty.ColorEnabled("always", &buf) {
		t.Error("always should enable color regardless of writer")
	}
	if pretty.ColorEnabled("never", &buf) {
		t.Error("never should disable color")
	}
	if pretty.ColorEnabled("auto", &buf) {
		t.Error("auto should disable color for non-terminal writers")
	}
}
