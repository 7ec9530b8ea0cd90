package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cbueth/conjugateur-fr/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to the config directory.

The file records the dataset directory, the rendering palette, the Anki
deck name and the server address. Edit it directly, or override single
values with CONJUGATEUR_* environment variables.

Example:
  conjugateur init
  conjugateur init --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		if _, err := config.EnsureConfigDir(); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}

	cfg := config.Default()
	if err := config.Save(path, cfg); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Build the dataset: conjugateur build --extract fr-extract.jsonl.gz --lexique Lexique383.tsv --out %s\n", cfg.DataDir)
	fmt.Println("  2. Try a verb: conjugateur show parler")
	fmt.Println("  3. Launch the TUI: conjugateur")
	return nil
}
