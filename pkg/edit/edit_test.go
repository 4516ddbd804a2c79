package edit_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdident/pkg/edit"
	"github.com/yaklabco/mdident/pkg/identity"
	"github.com/yaklabco/mdident/pkg/mdast"
)

func identifiedHeading(t testing.TB, level int, text string) *mdast.Node {
	t.Helper()

	n := mdast.NewNode(mdast.NodeHeading)
	n.Block = mdast.NewBlockAttrs().WithHeadingLevel(level)
	mdast.AppendChild(n, mdast.NewText([]byte(text)))
	assignID(t, n)
	return n
}

func identifiedParagraph(t testing.TB, text string) *mdast.Node {
	t.Helper()

	n := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(n, mdast.NewText([]byte(text)))
	assignID(t, n)
	return n
}

func identifiedCodeBlock(t testing.TB, info, code string) *mdast.Node {
	t.Helper()

	n := mdast.NewNode(mdast.NodeCodeBlock)
	n.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		Info: info,
		Code: []byte(code),
	})
	assignID(t, n)
	return n
}

func assignID(t testing.TB, n *mdast.Node) {
	t.Helper()

	canonical, err := mdast.Canonicalize(n)
	if err != nil {
		t.Fatalf("canonicalize: %v", err)
	}
	n.ID = identity.Derive(canonical, mdast.HintText(n))
}

func TestSetHeadingLevel_PreservesIdentity(t *testing.T) {
	t.Parallel()

	h := identifiedHeading(t, 1, "Title")

	promoted, err := edit.SetHeadingLevel(h, 3)
	if err != nil {
		t.Fatalf("set heading level: %v", err)
	}

	if !promoted.ID.Equal(h.ID) {
		t.Error("level change must preserve identity")
	}
	if promoted.Block.HeadingLevel != 3 {
		t.Errorf("level = %d, want 3", promoted.Block.HeadingLevel)
	}
	if h.Block.HeadingLevel != 1 {
		t.Error("original node was mutated")
	}
}

func TestSetHeadingLevel_Validation(t *testing.T) {
	t.Parallel()

	h := identifiedHeading(t, 1, "Title")

	for _, level := range []int{0, 7, -1} {
		if _, err := edit.SetHeadingLevel(h, level); err == nil {
			t.Errorf("expected error for level %d", level)
		}
	}
}

func TestSetHeadingLevel_WrongKind(t *testing.T) {
	t.Parallel()

	p := identifiedParagraph(t, "not a heading")

	_, err := edit.SetHeadingLevel(p, 2)
	if err == nil {
		t.Fatal("expected kind error")
	}

	var kindErr *edit.KindError
	if !errors.As(err, &kindErr) {
		t.Fatalf("expected KindError, got %T: %v", err, err)
	}
	if kindErr.Want != mdast.NodeHeading || kindErr.Got != mdast.NodeParagraph {
		t.Errorf("unexpected kinds on error: %+v", kindErr)
	}
}

func TestSetMeta_PreservesIdentity(t *testing.T) {
	t.Parallel()

	p := identifiedParagraph(t, "content")

	annotated := edit.SetMeta(p, "reviewed", "true")

	if !annotated.ID.Equal(p.ID) {
		t.Error("metadata change must preserve identity")
	}
	if annotated.Meta["reviewed"] != "true" {
		t.Error("metadata not set on copy")
	}
	if len(p.Meta) != 0 {
		t.Error("original node was mutated")
	}
}

func TestReplaceHeadingText_RegeneratesIdentity(t *testing.T) {
	t.Parallel()

	h := identifiedHeading(t, 1, "Old Title")

	replaced, err := edit.ReplaceHeadingText(h, "New Title")
	if err != nil {
		t.Fatalf("replace heading text: %v", err)
	}

	if replaced.ID.Equal(h.ID) {
		t.Error("content change must regenerate identity")
	}
	if got := mdast.InlineText(replaced); got != "New Title" {
		t.Errorf("text = %q, want %q", got, "New Title")
	}
	if replaced.ID.Hint() != "new-title" {
		t.Errorf("hint = %q, want %q", replaced.ID.Hint(), "new-title")
	}
}

func TestReplaceParagraphText_IdenticalText(t *testing.T) {
	t.Parallel()

	original := identifiedParagraph(t, "unchanged")
	original.Span = mdast.SourceRange{StartOffset: 10, EndOffset: 19}
	original.File = mdast.NewFileSnapshot("doc.md", []byte("x"))

	replaced, err := edit.ReplaceParagraphText(original, "unchanged")
	if err != nil {
		t.Fatalf("replace paragraph text: %v", err)
	}

	// Byte-identical replacement still goes through regeneration: the
	// resulting identity is equal in value, but the node sheds its source
	// provenance like any other fresh node.
	if !replaced.ID.Equal(original.ID) {
		t.Error("identical content must derive an equal identity")
	}
	if !replaced.Span.IsEmpty() {
		t.Error("replacement must not retain the original span")
	}
	if replaced.File != nil {
		t.Error("replacement must not retain the original file snapshot")
	}
}

func TestReplaceCodeText(t *testing.T) {
	t.Parallel()

	cb := identifiedCodeBlock(t, "go", "package main")

	replaced, err := edit.ReplaceCodeText(cb, []byte("package other"))
	if err != nil {
		t.Fatalf("replace code text: %v", err)
	}

	if replaced.ID.Equal(cb.ID) {
		t.Error("code change must regenerate identity")
	}
	if string(replaced.Block.CodeBlock.Code) != "package other" {
		t.Errorf("code = %q", replaced.Block.CodeBlock.Code)
	}
	if string(cb.Block.CodeBlock.Code) != "package main" {
		t.Error("original node was mutated")
	}
}

func TestReplaceCodeInfo(t *testing.T) {
	t.Parallel()

	cb := identifiedCodeBlock(t, "go", "print(1)")

	replaced, err := edit.ReplaceCodeInfo(cb, "python")
	if err != nil {
		t.Fatalf("replace code info: %v", err)
	}

	if replaced.ID.Equal(cb.ID) {
		t.Error("info string is content; changing it must regenerate identity")
	}
	if replaced.Block.CodeBlock.Info != "python" {
		t.Errorf("info = %q, want %q", replaced.Block.CodeBlock.Info, "python")
	}
}

func TestReplaceOperations_WrongKind(t *testing.T) {
	t.Parallel()

	h := identifiedHeading(t, 1, "Title")
	p := identifiedParagraph(t, "body")

	if _, err := edit.ReplaceHeadingText(p, "x"); err == nil {
		t.Error("ReplaceHeadingText accepted a paragraph")
	}
	if _, err := edit.ReplaceParagraphText(h, "x"); err == nil {
		t.Error("ReplaceParagraphText accepted a heading")
	}
	if _, err := edit.ReplaceCodeText(h, []byte("x")); err == nil {
		t.Error("ReplaceCodeText accepted a heading")
	}
	if _, err := edit.ReplaceCodeInfo(h, "go"); err == nil {
		t.Error("ReplaceCodeInfo accepted a heading")
	}
}

func BenchmarkSetMeta(b *testing.B) {
	p := identifiedParagraph(b, "benchmark content")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		edit.SetMeta(p, "key", "value")
	}
}
