package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdident/internal/logging"
	"github.com/yaklabco/mdident/pkg/document"
	"github.com/yaklabco/mdident/pkg/fsutil"
)

func newExportCommand(flags *globalFlags) *cobra.Command {
	var flavor string
	var output string

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export a document's identified tree as JSON",
		Long: `Parse a Markdown file, assign stable identities, and write the
versioned JSON form of the tree to stdout or a file. The output embeds
node identifiers and view mappings and can later be checked for drift
with the verify command.`,
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

			data, err := document.Encode(doc)
			if err != nil {
				return fmt.Errorf("encode %s: %w", args[0], err)
			}

			logger := logging.FromContext(cmd.Context())
			logger.Debug("exported",
				logging.FieldPath, args[0],
				logging.FieldNodes, len(doc.Blocks()))

			if output == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if err := fsutil.WriteAtomic(output, append(data, '\n'), 0); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flavor, "flavor", "", "markdown flavor: commonmark or gfm")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JSON to a file instead of stdout")

	return cmd
}
