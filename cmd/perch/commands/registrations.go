package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dyluth/perch/internal/printer"
	"github.com/dyluth/perch/pkg/registry"
	"github.com/spf13/cobra"
)

func newRegistrationsCmd(opts *globalOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "registrations",
		Short: "List every registration in load order",
		Long: `List every registration in the order it was applied: built-in catalog
first (unless disabled), then perch.yml.

Use --json for line-delimited JSON, one registration per line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reg, err := cfg.BuildRegistry()
			if err != nil {
				return printer.Error("invalid registrations", err.Error(), nil)
			}

			if jsonOutput {
				return formatRegistrationsJSONL(cmd.OutOrStdout(), reg.Registrations())
			}
			formatRegistrationsTable(cmd.OutOrStdout(), reg.Registrations())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output line-delimited JSON")

	return cmd
}

// formatRegistrationsTable writes registrations as a fixed-width table.
func formatRegistrationsTable(w io.Writer, regs []registry.Registration) {
	if len(regs) == 0 {
		fmt.Fprintln(w, "No registrations")
		return
	}

	fmt.Fprintf(w, "%-4s %-8s %-13s %-24s %-8s %s\n", "SEQ", "ID", "CATEGORY", "HANDLER", "PRIORITY", "KINDS")
	for _, reg := range regs {
		fmt.Fprintf(w, "%-4d %-8s %-13s %-24s %-8d %s\n",
			reg.Seq,
			formatID(reg.ID),
			reg.Category,
			formatHandler(reg.Handler),
			reg.Priority,
			formatMatch(reg),
		)
	}

	countMsg := "registration"
	if len(regs) != 1 {
		countMsg = "registrations"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(regs), countMsg)
}

// formatRegistrationsJSONL writes one registration per line.
func formatRegistrationsJSONL(w io.Writer, regs []registry.Registration) error {
	for _, reg := range regs {
		data, err := json.Marshal(reg)
		if err != nil {
			return fmt.Errorf("failed to marshal registration to JSON: %w", err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write JSONL output: %w", err)
		}
	}
	return nil
}

// formatID shortens a UUID to its first 8 characters for table display.
func formatID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatHandler truncates long handler names for table display.
func formatHandler(h registry.Handler) string {
	name := fmt.Sprint(h)
	if len(name) > 24 {
		return name[:21] + "..."
	}
	return name
}

// formatMatch describes which kinds a registration applies to.
func formatMatch(reg registry.Registration) string {
	if reg.Fallback {
		return "fallback"
	}

	kinds := make([]string, len(reg.Kinds))
	for i, k := range reg.Kinds {
		kinds[i] = fmt.Sprint(k)
	}
	return strings.Join(kinds, ",")
}
