package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cbueth/conjugateur-fr/internal/render"
)

var showDataDir string

var showCmd = &cobra.Command{
	Use:   "show <infinitive>...",
	Short: "Show the colored conjugation tables for one or more verbs",
	Long: `Show renders the conjugation tables of the given verbs on the terminal:
présent, imparfait, passé simple and futur simple, with the stem in bold,
regular endings in the tense color and deviations from the regular form
highlighted.

Example:
  conjugateur show parler
  conjugateur show être avoir aller`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showDataDir, "data", "", "dataset directory (default from config)")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.DataDir
	if showDataDir != "" {
		dir = showDataDir
	}
	store, err := openStore(dir)
	if err != nil {
		return err
	}

	r := render.NewTermRenderer(cfg.Palette)
	for i, word := range args {
		rec, ok := store.Lookup(word)
		if !ok {
			if sugg := store.Suggest(word, 3); len(sugg) > 0 {
				return fmt.Errorf("verb %q not found, closest matches: %s", word, strings.Join(sugg, ", "))
			}
			return fmt.Errorf("verb %q not found", word)
		}
		if i > 0 {
			fmt.Println()
		}
		fmt.Println(r.Render(render.NewVerbView(rec)))
	}
	return nil
}
