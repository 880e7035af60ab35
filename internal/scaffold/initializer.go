package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/fily/internal/config"
	"github.com/dyluth/fily/internal/printer"
	"github.com/dyluth/fily/internal/store"
	"gopkg.in/yaml.v3"
)

//go:embed templates/*
var templatesFS embed.FS

// ImagesDir is the directory created for product pictures
const ImagesDir = "images"

// Initialize creates the fily project structure in dir and returns the paths
// it created. If force is true an existing fily.yml is replaced, with a
// warning printed to p; ledger data files are never overwritten.
func Initialize(p *printer.Printer, dir string, force bool) ([]string, error) {
	configPath := filepath.Join(dir, config.DefaultPath)

	// Handle --force flag
	if force {
		if err := handleForce(p, configPath); err != nil {
			return nil, err
		}
	}

	content, err := templatesFS.ReadFile("templates/fily.yml.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to read fily.yml template: %w", err)
	}

	imagesDir := filepath.Join(dir, ImagesDir)
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", imagesDir, err)
	}

	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	created := []string{configPath, imagesDir + string(filepath.Separator)}

	dataFiles, err := store.NewCSV(dir).Bootstrap()
	if err != nil {
		return nil, err
	}
	created = append(created, dataFiles...)

	// Validate created files
	if err := validateCreatedFiles(configPath); err != nil {
		return nil, err
	}

	return created, nil
}

// handleForce removes an existing fily.yml
func handleForce(p *printer.Printer, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		p.Warning("Removing existing %s...\n", config.DefaultPath)
		if err := os.Remove(configPath); err != nil {
			return fmt.Errorf("failed to remove %s: %w", config.DefaultPath, err)
		}
	}
	return nil
}

// validateCreatedFiles checks that the written fily.yml parses and validates
func validateCreatedFiles(configPath string) error {
	content, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read created %s: %w", config.DefaultPath, err)
	}

	var cfg config.FilyConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return fmt.Errorf("created %s is not valid YAML: %w", config.DefaultPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("created %s is invalid: %w", config.DefaultPath, err)
	}

	return nil
}

// PrintSuccess prints the success message with created files
func PrintSuccess(p *printer.Printer, dir string, created []string) {
	p.Success("Successfully initialized fily project!\n")
	p.Info("\nCreated:\n")
	for _, path := range created {
		if rel, err := filepath.Rel(dir, path); err == nil {
			path = rel
		}
		p.Info("  ✓ %s\n", path)
	}
	p.Info("\nNext steps:\n")
	p.Info("  1. Set publish.public.remote and publish.private.remote in fily.yml\n")
	p.Info("  2. Put product pictures in images/ named after the product ID (SM01.jpg)\n")
	p.Info("  3. Run 'fily menu' to start adding products\n")
}
