package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/f3rmion/flesch/internal/config"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize flesch configuration",
	Long: `Initialize flesch configuration in your config directory.

This creates config.yaml with the default scoring endpoint:

  endpoint:   http://localhost:8080
  path:       /flesh
  timeout_ms: 3000

Edit the file to point flesch at your scoring service. Flags and
FLESCH_* environment variables override it.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path, err := writeDefaultConfig(getConfigDir(), force)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Set 'endpoint' to the base URL of your scoring service")
	fmt.Fprintln(out, "  2. Run 'flesch score \"Some text.\"' to check the connection")
	fmt.Fprintln(out, "  3. Run 'flesch' to open the interactive form")

	return nil
}

// writeDefaultConfig writes the default config.yaml into dir.
func writeDefaultConfig(dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.FileName)

	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	if err := config.EnsureDir(dir); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	if err := config.Save(path, config.Default()); err != nil {
		return "", err
	}

	return path, nil
}
