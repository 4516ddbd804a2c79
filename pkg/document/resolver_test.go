package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdident/pkg/document"
	"github.com/yaklabco/mdident/pkg/identity"
	"github.com/yaklabco/mdident/pkg/mdast"
)

// fiveBlockDoc builds a document with five distinct block nodes.
func fiveBlockDoc(t *testing.T) *document.Document {
	t.Helper()

	root := mdast.NewDocument()
	mdast.AppendChild(root, textHeading(1, "First"))
	mdast.AppendChild(root, textParagraph("Second"))
	mdast.AppendChild(root, textParagraph("Third"))
	mdast.AppendChild(root, textHeading(2, "Fourth"))
	mdast.AppendChild(root, textParagraph("Fifth"))

	doc := document.New(root)
	require.NoError(t, doc.AssignIdentity())
	return doc
}

func TestFindNode_StableIdentifier(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)
	target := doc.Blocks()[2]

	for _, mode := range []document.ResolveMode{document.ModeStrict, document.ModeCompat} {
		node, found, err := doc.FindNode(target.ID.String(), mode)
		require.NoError(t, err, "mode %s", mode)
		require.True(t, found, "mode %s", mode)
		assert.Same(t, target, node, "mode %s", mode)
	}
}

func TestFindNode_UnknownStableIdentifier(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)

	// Well-formed identifier that matches nothing.
	node, found, err := doc.FindNode("abcdefghijklmnop", document.ModeStrict)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, node)
}

func TestFindNode_StrictRejectsPositional(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)

	node, found, err := doc.FindNode("2", document.ModeStrict)
	require.Error(t, err)
	assert.False(t, found)
	assert.Nil(t, node)

	var malformed *identity.MalformedIdentifierError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "2", malformed.Raw)
}

func TestFindNode_CompatPositional(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)
	blocks := doc.Blocks()
	require.Len(t, blocks, 5)

	node, found, err := doc.FindNode("2", document.ModeCompat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, blocks[2], node)

	node, found, err = doc.FindNode("0", document.ModeCompat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, blocks[0], node)
}

func TestFindNode_CompatOutOfRange(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)

	node, found, err := doc.FindNode("99", document.ModeCompat)
	assert.NoError(t, err, "out-of-range positional is not-found, not a failure")
	assert.False(t, found)
	assert.Nil(t, node)
}

func TestFindNode_CompatStableWinsOverPositional(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)
	target := doc.Blocks()[4]

	// A stable identifier is never reinterpreted positionally, even in
	// compatibility mode.
	node, found, err := doc.FindNode(target.ID.String(), document.ModeCompat)
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, target, node)
}

func TestFindNode_CompatRejectsGarbage(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)

	_, found, err := doc.FindNode("not-a-number", document.ModeCompat)
	require.Error(t, err)
	assert.False(t, found)
}

func TestResolve_UsesDocumentMode(t *testing.T) {
	t.Parallel()

	doc := fiveBlockDoc(t)

	_, _, err := doc.Resolve("1")
	require.Error(t, err, "default mode is strict")

	doc.SetMode(document.ModeCompat)
	node, found, err := doc.Resolve("1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Same(t, doc.Blocks()[1], node)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected document.ResolveMode
		wantErr  bool
	}{
		{input: "strict", expected: document.ModeStrict},
		{input: "", expected: document.ModeStrict},
		{input: "compatibility", expected: document.ModeCompat},
		{input: "compat", expected: document.ModeCompat},
		{input: "lenient", wantErr: true},
	}

	for _, testCase := range tests {
		mode, err := document.ParseMode(testCase.input)
		if testCase.wantErr {
			assert.Error(t, err, "input %q", testCase.input)
			continue
		}
		require.NoError(t, err, "input %q", testCase.input)
		assert.Equal(t, testCase.expected, mode, "input %q", testCase.input)
	}
}
