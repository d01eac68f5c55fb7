package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/satpass.yaml
var configTemplate embed.FS

// configFileName is the default configuration file name.
const configFileName = ".satpass"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new satpass configuration file",
		Long: `Initialize creates a new .satpass configuration file in the current directory.

The generated file includes:
- A commented ground-station section to fill in
- Example satellite entries with display colors
- Documentation for all available options

Examples:
  # Create .satpass in current directory
  satpass init

  # Create config file at a specific path
  satpass init -o /etc/satpass.yaml

  # Force overwrite existing file
  satpass init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/satpass.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// The file holds the API key, so keep it owner-readable only
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	fmt.Printf("Created configuration file: %s\n", outputPath)
	fmt.Println("\nEdit this file and set:")
	fmt.Println("  - Your N2YO API key (https://www.n2yo.com/api/)")
	fmt.Println("  - Your ground-station coordinates")
	fmt.Println("  - The satellites you want pass predictions for")

	return nil
}
