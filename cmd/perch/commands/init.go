package commands

import (
	"fmt"

	"github.com/dyluth/perch/internal/printer"
	"github.com/dyluth/perch/internal/scaffold"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	var (
		force bool
		dir   string
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter perch.yml",
		Long: `Create a starter perch.yml with example registrations and cache settings.

Use --force to overwrite an existing perch.yml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := scaffold.Initialize(dir, force); err != nil {
				return printer.Error(
					"initialization failed",
					err.Error(),
					nil,
				)
			}

			out := cmd.OutOrStdout()
			printer.Success(out, "Created %s\n", scaffold.ConfigFileName)
			fmt.Fprintln(out, "\nNext steps:")
			fmt.Fprintln(out, "  1. Edit registrations to add your own components")
			fmt.Fprintln(out, "  2. Run 'perch validate' to check the configuration")
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing perch.yml")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write perch.yml into")

	return cmd
}
