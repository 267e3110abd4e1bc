package commands

import (
	"fmt"
	"os"

	"github.com/dyluth/perch/internal/config"
	"github.com/dyluth/perch/internal/printer"
	"github.com/spf13/cobra"
)

var versionString = "dev"

// globalOptions holds flags shared by every subcommand
type globalOptions struct {
	configPath string
}

// NewRootCmd builds the perch command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "perch",
		Short: "perch - event renderer dispatch and replaceable event reconciliation",
		Long: `perch decides which renderer displays a Nostr event for each rendering
category (full-card, compact-card, embedded, hashtag, mention, link, media),
and which of two copies of a replaceable event is kept.

Handlers are registered from the built-in catalog and from perch.yml.
For each (kind, category) the highest priority wins; on equal priority the
most recent registration wins.`,
		Version: versionString,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		// Unknown flags are an error
		FParseErrWhitelist: cobra.FParseErrWhitelist{},
		SilenceErrors:      true,
		SilenceUsage:       true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultPath, "Path to perch.yml")

	rootCmd.AddCommand(
		newInitCmd(),
		newValidateCmd(opts),
		newResolveCmd(opts),
		newExplainCmd(opts),
		newRegistrationsCmd(opts),
		newNewerCmd(),
		newCacheCmd(opts),
	)

	return rootCmd
}

// Execute runs the perch command tree. Called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	versionString = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

// loadConfig loads the configured perch.yml. A missing file at the default
// path falls back to the built-in catalog; a missing file at an explicit path is an error.
func loadConfig(cmd *cobra.Command, opts *globalOptions) (*config.PerchConfig, error) {
	explicit := cmd.Flags().Changed("config")

	if _, err := os.Stat(opts.configPath); os.IsNotExist(err) && !explicit {
		return config.Default(), nil
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, printer.ErrorWithContext(
			"failed to load configuration",
			err.Error(),
			map[string]string{"Config": opts.configPath},
			[]string{"Create a starter configuration:\n  perch init"},
		)
	}

	return cfg, nil
}
