package document_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdident/pkg/document"
	"github.com/yaklabco/mdident/pkg/mdast"
)

func codeBlock(info, code string) *mdast.Node {
	n := mdast.NewNode(mdast.NodeCodeBlock)
	n.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		Info: info,
		Code: []byte(code),
	})
	return n
}

func htmlBlock(html string) *mdast.Node {
	n := mdast.NewNode(mdast.NodeHTMLBlock)
	n.Block = mdast.NewBlockAttrs().WithHTML([]byte(html))
	return n
}

func sampleDoc(t *testing.T) *document.Document {
	t.Helper()

	root := mdast.NewDocument()
	mdast.AppendChild(root, textHeading(2, "Setup"))
	mdast.AppendChild(root, textParagraph("Install the thing."))
	mdast.AppendChild(root, codeBlock("go", "package main"))

	quote := mdast.NewNode(mdast.NodeBlockquote)
	mdast.AppendChild(quote, textParagraph("Careful."))
	mdast.AppendChild(root, quote)

	mdast.AppendChild(root, htmlBlock("<div class=\"note\">\nhello\n</div>\n"))

	doc := document.New(root)
	require.NoError(t, doc.AssignIdentity())
	return doc
}

func TestEncode_Shape(t *testing.T) {
	t.Parallel()

	doc := sampleDoc(t)

	data, err := document.Encode(doc)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "1", out["version"])

	nodes, ok := out["nodes"].([]any)
	require.True(t, ok)
	require.Len(t, nodes, 5)

	first, ok := nodes[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "heading", first["type"])
	assert.Equal(t, float64(2), first["level"])
	assert.Equal(t, "Setup", first["text"])
	assert.Equal(t, "setup", first["hint"])
	assert.Len(t, first["id"], 16)
}

func TestRoundTrip_NoDrift(t *testing.T) {
	t.Parallel()

	doc := sampleDoc(t)

	data, err := document.Encode(doc)
	require.NoError(t, err)

	decoded, drift, err := document.Decode(data, document.DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, drift, "round trip must not produce identity drift")

	originalBlocks := doc.Blocks()
	decodedBlocks := decoded.Blocks()
	require.Len(t, decodedBlocks, len(originalBlocks))

	for i, original := range originalBlocks {
		assert.Equal(t, original.Kind, decodedBlocks[i].Kind, "block %d", i)
		assert.True(t, original.ID.Equal(decodedBlocks[i].ID),
			"block %d: identity changed across round trip (%s vs %s)",
			i, original.ID, decodedBlocks[i].ID)
	}

	assert.True(t, doc.Root.ID.Equal(decoded.Root.ID), "root identity changed")
}

func TestRoundTrip_HTMLBlockNoDrift(t *testing.T) {
	t.Parallel()

	root := mdast.NewDocument()
	mdast.AppendChild(root, htmlBlock("<div class=\"note\">\nhello\n</div>\n"))
	mdast.AppendChild(root, htmlBlock("<!-- marker -->\n"))
	doc := document.New(root)
	require.NoError(t, doc.AssignIdentity())

	data, err := document.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "html_block")
	assert.Contains(t, string(data), "hello", "HTML content must be persisted")

	decoded, drift, err := document.Decode(data, document.DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, drift, "round trip must not produce identity drift")

	blocks := decoded.Blocks()
	require.Len(t, blocks, 2)
	assert.True(t, blocks[0].ID.Equal(doc.Blocks()[0].ID))
	assert.True(t, blocks[1].ID.Equal(doc.Blocks()[1].ID))
	assert.False(t, blocks[0].ID.Equal(blocks[1].ID),
		"distinct HTML blocks must keep distinct identities")
	assert.Equal(t, "<div class=\"note\">\nhello\n</div>\n", string(blocks[0].Block.HTML))
}

func TestRoundTrip_PreservesMeta(t *testing.T) {
	t.Parallel()

	root := mdast.NewDocument()
	p := textParagraph("annotated")
	p.Meta = map[string]string{"reviewed": "true"}
	mdast.AppendChild(root, p)
	doc := document.New(root)
	require.NoError(t, doc.AssignIdentity())

	data, err := document.Encode(doc)
	require.NoError(t, err)

	decoded, drift, err := document.Decode(data, document.DecodeOptions{})
	require.NoError(t, err)
	assert.Empty(t, drift)

	blocks := decoded.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "true", blocks[0].Meta["reviewed"])
}

func TestDecode_DriftWarn(t *testing.T) {
	t.Parallel()

	doc := sampleDoc(t)
	data, err := document.Encode(doc)
	require.NoError(t, err)

	tampered := tamperFirstID(t, data)

	decoded, drift, err := document.Decode(tampered, document.DecodeOptions{
		Drift: document.DriftWarn,
	})
	require.NoError(t, err, "warn policy proceeds despite drift")
	require.NotNil(t, decoded)

	require.Len(t, drift, 1)
	assert.Equal(t, "abcdefghijklmnop", drift[0].Persisted)
	assert.Equal(t, doc.Blocks()[0].ID.String(), drift[0].Recomputed,
		"document proceeds with the recomputed identity")
	assert.Equal(t, mdast.NodeHeading, drift[0].Kind)

	// The decoded tree carries the recomputed identity, not the stale one.
	assert.True(t, decoded.Blocks()[0].ID.Equal(doc.Blocks()[0].ID))
}

func TestDecode_DriftFatal(t *testing.T) {
	t.Parallel()

	doc := sampleDoc(t)
	data, err := document.Encode(doc)
	require.NoError(t, err)

	tampered := tamperFirstID(t, data)

	_, _, err = document.Decode(tampered, document.DecodeOptions{
		Drift: document.DriftFatal,
	})
	require.Error(t, err)

	var driftErr *document.IdentityDriftError
	require.ErrorAs(t, err, &driftErr)
	assert.Equal(t, "abcdefghijklmnop", driftErr.Persisted)
}

func TestDecode_MissingVersion(t *testing.T) {
	t.Parallel()

	_, _, err := document.Decode([]byte(`{"nodes": []}`), document.DecodeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDecode_UnknownType(t *testing.T) {
	t.Parallel()

	input := `{"version": "1", "nodes": [{"type": "sidebar", "id": ""}]}`

	_, _, err := document.Decode([]byte(input), document.DecodeOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sidebar")
}

func TestDecode_InvalidJSON(t *testing.T) {
	t.Parallel()

	_, _, err := document.Decode([]byte("{not json"), document.DecodeOptions{})
	require.Error(t, err)
}

// tamperFirstID replaces the first block's persisted identifier with a
// valid-looking but wrong one.
func tamperFirstID(t *testing.T, data []byte) []byte {
	t.Helper()

	var out struct {
		Nodes []struct {
			ID string `json:"id"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	require.NotEmpty(t, out.Nodes)

	original := out.Nodes[0].ID
	require.NotEqual(t, "abcdefghijklmnop", original)

	return []byte(strings.Replace(string(data), original, "abcdefghijklmnop", 1))
}
