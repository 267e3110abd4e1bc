package commands

import (
	"fmt"

	"github.com/dyluth/perch/internal/printer"
	"github.com/dyluth/perch/pkg/registry"
	"github.com/spf13/cobra"
)

func newResolveCmd(opts *globalOptions) *cobra.Command {
	var (
		category string
		kind     int
	)

	cmd := &cobra.Command{
		Use:   "resolve [EVENT_FILE|-]",
		Short: "Show which handler renders an event",
		Long: `Show which handler renders an event.

The event is read as JSON from EVENT_FILE, or from stdin when EVENT_FILE is
"-" or omitted. Use --kind to resolve a bare kind without an event.

Without --category every category is resolved independently.

Examples:
  # Resolve all categories for an event
  perch resolve note.json

  # Only the compact card for a kind 1 note
  perch resolve --kind 1 --category compact-card`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if category != "" {
				if err := registry.Category(category).Validate(); err != nil {
					return printer.Error(
						"invalid category",
						err.Error(),
						[]string{fmt.Sprintf("Valid categories: %v", registry.AllCategories())},
					)
				}
			}

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reg, err := cfg.BuildRegistry()
			if err != nil {
				return printer.Error("invalid registrations", err.Error(), nil)
			}

			eventKind := kind
			if !cmd.Flags().Changed("kind") {
				path := "-"
				if len(args) > 0 {
					path = args[0]
				}

				ev, err := readEvent(cmd, path)
				if err != nil {
					return printer.Error("failed to read event", err.Error(), nil)
				}
				eventKind = ev.Kind
			}

			out := cmd.OutOrStdout()
			if category != "" {
				h, ok := reg.ResolveKind(eventKind, registry.Category(category))
				if !ok {
					fmt.Fprintln(out, "none")
					return nil
				}
				fmt.Fprintln(out, h)
				return nil
			}

			for _, c := range registry.AllCategories() {
				h, ok := reg.ResolveKind(eventKind, c)
				printer.Resolved(out, string(c), h, ok)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Resolve a single category")
	cmd.Flags().IntVarP(&kind, "kind", "k", 0, "Resolve a bare kind instead of reading an event")

	return cmd
}
