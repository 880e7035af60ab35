package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fily/internal/config"
)

// CheckExisting checks if dir already holds a fily.yml
// Returns an error if it does, nil otherwise
func CheckExisting(dir string) error {
	if _, err := os.Stat(filepath.Join(dir, config.DefaultPath)); err == nil {
		return fmt.Errorf("project already initialized\n\nFound existing: %s\n\nUse 'fily init --force' to reinitialize (this will overwrite existing configuration, data files are kept)", config.DefaultPath)
	}
	return nil
}
