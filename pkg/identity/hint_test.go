package identity_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/yaklabco/mdident/pkg/identity"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple text",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "messy whitespace and punctuation",
			input:    "  Hello\tWorld!!  ",
			expected: "hello-world",
		},
		{
			name:     "already a slug",
			input:    "already-a-slug",
			expected: "already-a-slug",
		},
		{
			name:     "digits kept",
			input:    "Chapter 12: Results",
			expected: "chapter-12-results",
		},
		{
			name:     "empty input",
			input:    "",
			expected: identity.FallbackHint,
		},
		{
			name:     "only punctuation",
			input:    "-- ** // --",
			expected: identity.FallbackHint,
		},
		{
			name:     "unicode letters",
			input:    "Überblick über Go",
			expected: "überblick-über-go",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := identity.Slug(testCase.input)
			if got != testCase.expected {
				t.Errorf("Slug(%q) = %q, want %q", testCase.input, got, testCase.expected)
			}
		})
	}
}

func TestSlug_Truncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 20)

	slug := identity.Slug(long)
	if utf8.RuneCountInString(slug) > identity.MaxHintLen {
		t.Errorf("slug %q exceeds %d runes", slug, identity.MaxHintLen)
	}
	if strings.HasSuffix(slug, "-") {
		t.Errorf("truncated slug %q ends with a hyphen", slug)
	}
}

func TestSlug_NoRuneSplit(t *testing.T) {
	t.Parallel()

	// Multi-byte runes near the truncation boundary must never be split.
	slug := identity.Slug(strings.Repeat("ü", identity.MaxHintLen+10))
	if !utf8.ValidString(slug) {
		t.Errorf("slug %q is not valid UTF-8", slug)
	}
	if utf8.RuneCountInString(slug) > identity.MaxHintLen {
		t.Errorf("slug %q exceeds %d runes", slug, identity.MaxHintLen)
	}
}
