package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dyluth/perch/pkg/event"
	"github.com/spf13/cobra"
)

// readEvent reads one event as JSON from path, or from stdin when path is "-".
func readEvent(cmd *cobra.Command, path string) (*event.Event, error) {
	var r io.Reader
	if path == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open event file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var ev event.Event
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return nil, fmt.Errorf("failed to parse event JSON from %s: %w", path, err)
	}

	if err := ev.Validate(); err != nil {
		return nil, fmt.Errorf("invalid event in %s: %w", path, err)
	}

	return &ev, nil
}

// writeEventJSON writes an event as pretty-printed JSON.
func writeEventJSON(w io.Writer, ev *event.Event) error {
	data, err := json.MarshalIndent(ev, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
