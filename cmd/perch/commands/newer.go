package commands

import (
	"errors"

	"github.com/dyluth/perch/internal/printer"
	"github.com/dyluth/perch/pkg/event"
	"github.com/spf13/cobra"
)

func newNewerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "newer FILE_A FILE_B",
		Short: "Print whichever of two event copies is kept",
		Long: `Print whichever of two copies of the same replaceable event is kept.

The copy with the greater created_at wins. On equal created_at the second
file wins. Both files must describe the same logical event; this command does
not check that.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := readEvent(cmd, args[0])
			if err != nil {
				return printer.Error("failed to read event", err.Error(), nil)
			}

			b, err := readEvent(cmd, args[1])
			if err != nil {
				return printer.Error("failed to read event", err.Error(), nil)
			}

			kept, err := event.PickNewer(a, b)
			if err != nil {
				var mte *event.MissingTimestampError
				if errors.As(err, &mte) {
					file := args[0]
					if mte.Position == "second" {
						file = args[1]
					}
					return printer.ErrorWithContext(
						"cannot compare events",
						err.Error(),
						map[string]string{"File": file},
						[]string{"Both events need a created_at timestamp"},
					)
				}
				return err
			}

			return writeEventJSON(cmd.OutOrStdout(), kept)
		},
	}
}
