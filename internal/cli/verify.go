package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdident/internal/logging"
	"github.com/yaklabco/mdident/internal/ui/pretty"
	"github.com/yaklabco/mdident/pkg/document"
)

func newVerifyCommand(flags *globalFlags) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "verify <json-file>",
		Short: "Check an exported JSON tree for identity drift",
		Long: `Load an exported JSON tree, recompute every node's identity from
its content, and compare against the persisted identifiers. A mismatch
means the canonicalization rules changed since the export was written.

By default drift is reported and the command still succeeds structurally;
with --strict the first mismatch aborts the load.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}

			policy, err := document.ParseDriftPolicy(cfg.DriftPolicy)
			if err != nil {
				return err
			}
			if strict {
				policy = document.DriftFatal
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			doc, drift, err := document.Decode(data, document.DecodeOptions{
				Drift:    policy,
				MaxDepth: cfg.MaxDepth,
			})
			if err != nil {
				return fmt.Errorf("verify %s: %w", args[0], err)
			}

			styles := pretty.NewStyles(pretty.ColorEnabled(cfg.Color, os.Stdout))
			out := cmd.OutOrStdout()

			logger := logging.FromContext(cmd.Context())
			logger.Debug("verified",
				logging.FieldPath, args[0],
				logging.FieldNodes, len(doc.Blocks()),
				logging.FieldDrift, len(drift))

			if len(drift) == 0 {
				fmt.Fprintf(out, "%s %s: %d nodes, identities stable\n",
					styles.Success.Render("ok"), args[0], len(doc.Blocks()))
				return nil
			}

			for _, d := range drift {
				fmt.Fprintf(out, "%s %s node: persisted %s, recomputed %s\n",
					styles.Warning.Render("drift"),
					d.Kind,
					styles.ID.Render(d.Persisted),
					styles.ID.Render(d.Recomputed))
			}
			fmt.Fprintf(out, "%s %s: %d of %d nodes drifted\n",
				styles.Failure.Render("fail"), args[0], len(drift), len(doc.Blocks()))
			return ErrDriftFound
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "abort on the first identity mismatch")

	return cmd
}
