package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/perch/internal/config"
)

//go:embed templates/*
var templatesFS embed.FS

// ConfigFileName is the file written by Initialize.
const ConfigFileName = "perch.yml"

// Initialize writes a starter perch.yml into dir.
// If force is true, an existing perch.yml is replaced.
func Initialize(dir string, force bool) error {
	if !force {
		if err := CheckExisting(dir); err != nil {
			return err
		}
	}

	content, err := templatesFS.ReadFile("templates/perch.yml.tmpl")
	if err != nil {
		return fmt.Errorf("failed to read perch.yml template: %w", err)
	}

	return writeConfig(dir, content)
}

// writeConfig validates content as a perch configuration and writes it into
// dir. Nothing touches the disk unless the content loads cleanly.
func writeConfig(dir string, content []byte) error {
	if _, err := config.Parse(content); err != nil {
		return fmt.Errorf("%s template is not a valid configuration: %w", ConfigFileName, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
