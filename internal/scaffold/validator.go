package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// CheckExisting returns an error if dir already contains perch.yml.
func CheckExisting(dir string) error {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("project already initialized\n\nFound existing: %s\n\nUse 'perch init --force' to reinitialize (this will overwrite existing configuration)", path)
	}
	return nil
}
