package commands

import (
	"github.com/dyluth/perch/internal/printer"
	"github.com/spf13/cobra"
)

func newValidateCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate perch.yml and build the registry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			reg, err := cfg.BuildRegistry()
			if err != nil {
				return printer.Error("invalid registrations", err.Error(), nil)
			}

			printer.Success(cmd.OutOrStdout(), "Configuration valid: %d registrations\n", reg.Len())
			return nil
		},
	}
}
