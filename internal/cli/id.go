package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdident/internal/logging"
	"github.com/yaklabco/mdident/internal/ui/pretty"
	"github.com/yaklabco/mdident/pkg/document"
	"github.com/yaklabco/mdident/pkg/langdetect"
	"github.com/yaklabco/mdident/pkg/mdast"
	parser "github.com/yaklabco/mdident/pkg/parser/goldmark"
)

func newIDCommand(flags *globalFlags) *cobra.Command {
	var flavor string
	var full bool

	cmd := &cobra.Command{
		Use:   "id <file>",
		Short: "List the stable identifiers of a document's block nodes",
		Long: `Parse a Markdown file and print each block-level node's stable
identifier, kind, source location, and hint. Code blocks without a language
are annotated with a detected one (display only; detection never affects
identity).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if flavor != "" {
				cfg.Flavor = flavor
			}

			doc, err := parseFile(cmd, args[0], cfg.Flavor)
			if err != nil {
				return err
			}

			styles := pretty.NewStyles(pretty.ColorEnabled(cfg.Color, os.Stdout))
			rows := nodeRows(doc, full)
			pretty.RenderNodeTable(cmd.OutOrStdout(), styles, rows)

			logging.FromContext(cmd.Context()).Debug("listed nodes",
				logging.FieldPath, args[0],
				logging.FieldBlocks, len(rows))

			return nil
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "", "markdown flavor: commonmark or gfm")
	cmd.Flags().BoolVar(&full, "full", false, "print full 16-character identifiers")

	return cmd
}

// parseFile reads and parses a Markdown file into a Document.
func parseFile(cmd *cobra.Command, path, flavor string) (*document.Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	p := parser.New(flavor)
	doc, err := p.Parse(cmd.Context(), path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return doc, nil
}

// nodeRows builds the listing rows for a document's blocks.
func nodeRows(doc *document.Document, full bool) []pretty.NodeRow {
	var rows []pretty.NodeRow

	for _, n := range doc.Blocks() {
		id := n.ID.Short()
		if full {
			id = n.ID.String()
		}

		kind := n.Kind.String()
		if n.Kind == mdast.NodeCodeBlock && n.Block != nil && n.Block.CodeBlock != nil {
			if info := n.Block.CodeBlock.Info; info != "" {
				kind += " (" + info + ")"
			} else {
				kind += " (" + langdetect.Detect(n.Block.CodeBlock.Code) + "?)"
			}
		}

		location := ""
		if span, ok := doc.BlockSpan(n); ok {
			location = fmt.Sprintf("%d:%d-%d:%d",
				span.StartLine, span.StartCol, span.EndLine, span.EndCol)
		}

		rows = append(rows, pretty.NodeRow{
			ID:       id,
			Kind:     kind,
			Hint:     n.ID.Hint(),
			Location: location,
		})
	}

	return rows
}
