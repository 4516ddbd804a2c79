package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdident/internal/logging"
	"github.com/yaklabco/mdident/internal/ui/pretty"
	"github.com/yaklabco/mdident/pkg/document"
	"github.com/yaklabco/mdident/pkg/mdast"
)

func newResolveCommand(flags *globalFlags) *cobra.Command {
	var flavor string
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "resolve <file> <identifier>",
		Short: "Resolve a stable or legacy positional identifier to a node",
		Long: `Parse a Markdown file and look up a node by identifier.

In strict mode only canonical stable identifiers are accepted; malformed
input fails. In compatibility mode, input that is not a stable identifier
is interpreted as a positional index into the document's blocks, easing
migration off index-based identity.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if flavor != "" {
				cfg.Flavor = flavor
			}
			if modeFlag != "" {
				cfg.Mode = modeFlag
			}

			mode, err := document.ParseMode(cfg.Mode)
			if err != nil {
				return err
			}

			doc, err := parseFile(cmd, args[0], cfg.Flavor)
			if err != nil {
				return err
			}

			logger := logging.FromContext(cmd.Context())
			logger.Debug("resolving",
				logging.FieldInput, args[1],
				logging.FieldMode, mode.String())

			node, found, err := doc.FindNode(args[1], mode)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", args[1], err)
			}
			if !found {
				fmt.Fprintf(cmd.OutOrStdout(), "no node matches %q in %s mode\n", args[1], mode)
				return ErrNodeNotFound
			}

			printNode(cmd, cfg.Color, doc, node)
			return nil
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "", "markdown flavor: commonmark or gfm")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "resolve mode: strict or compatibility")

	return cmd
}

// printNode renders a resolved node's identity, kind, span, and excerpt.
func printNode(cmd *cobra.Command, color string, doc *document.Document, node *mdast.Node) {
	styles := pretty.NewStyles(pretty.ColorEnabled(color, os.Stdout))
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%s %s\n",
		styles.Kind.Render(node.Kind.String()),
		styles.ID.Render(node.ID.DebugString()))

	if span, ok := doc.BlockSpan(node); ok {
		fmt.Fprintf(out, "%s\n", styles.Location.Render(
			fmt.Sprintf("  source %d:%d-%d:%d (bytes %d-%d)",
				span.StartLine, span.StartCol, span.EndLine, span.EndCol,
				span.StartOffset, span.EndOffset)))
	} else {
		fmt.Fprintln(out, styles.Dim.Render("  no source mapping"))
	}

	if text := mdast.InlineText(node); text != "" {
		fmt.Fprintf(out, "  %s\n", text)
	}
}
