// Package langdetect provides language detection for code block content.
// It uses go-enry to guess a language for code blocks that carry no info
// string. Detection is display-only: it annotates CLI output and never
// feeds node identity.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const langText = "text"

// candidates passed to the enry classifier; covers the languages that
// dominate real-world Markdown code blocks.
//
//nolint:gochecknoglobals // Fixed candidate set shared by all calls
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// Detect returns the detected language for code content, lowercased the
// way info strings are conventionally written. Returns "text" if detection
// fails or confidence is low.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return langText
	}

	// Shebangs are the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// normalize converts enry's language names into info-string form.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	case "":
		return langText
	default:
		return strings.ToLower(lang)
	}
}
