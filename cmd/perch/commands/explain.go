package commands

import (
	"fmt"

	"github.com/dyluth/perch/internal/printer"
	"github.com/dyluth/perch/pkg/registry"
	"github.com/spf13/cobra"
)

func newExplainCmd(opts *globalOptions) *cobra.Command {
	var (
		category string
		kind     int
	)

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "List the ranked candidates for a kind and category",
		Long: `List every registration that could render a kind in a category, best first.

Kind-specific candidates are listed before fallbacks. The first row is the
handler that resolve returns.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := registry.Category(category)
			if err := c.Validate(); err != nil {
				return printer.Error(
					"invalid category",
					err.Error(),
					[]string{fmt.Sprintf("Valid categories: %v", registry.AllCategories())},
				)
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reg, err := cfg.BuildRegistry()
			if err != nil {
				return printer.Error("invalid registrations", err.Error(), nil)
			}

			out := cmd.OutOrStdout()
			candidates := reg.Candidates(kind, c)
			if len(candidates) == 0 {
				fmt.Fprintf(out, "No candidates for kind %d in %s\n", kind, c)
				return nil
			}

			fmt.Fprintf(out, "%-5s %-24s %-8s %-9s %s\n", "RANK", "HANDLER", "PRIORITY", "MATCH", "SEQ")
			for i, candidate := range candidates {
				fmt.Fprintf(out, "%-5d %-24s %-8d %-9s %d\n",
					i+1,
					formatHandler(candidate.Handler),
					candidate.Priority,
					formatMatch(candidate),
					candidate.Seq,
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", string(registry.CategoryFullCard), "Category to explain")
	cmd.Flags().IntVarP(&kind, "kind", "k", 1, "Event kind")

	return cmd
}
