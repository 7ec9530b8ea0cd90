package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cbueth/conjugateur-fr/internal/anki"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

var (
	ankiOut     string
	ankiDataDir string
	ankiDeck    string
	ankiAll     bool
	ankiInspect string
)

var ankiCmd = &cobra.Command{
	Use:   "anki [infinitive]...",
	Short: "Export verbs as an Anki flashcard deck",
	Long: `Anki writes a .apkg deck with one note per verb form: the front asks for
a person and tense, the back shows the form with its IPA and the verb's
irregularity marker.

With --inspect the command opens an existing .apkg and prints a summary
instead of exporting.

Example:
  conjugateur anki être avoir aller --out verbes.apkg
  conjugateur anki --all
  conjugateur anki --inspect verbes.apkg`,
	RunE: runAnki,
}

func init() {
	rootCmd.AddCommand(ankiCmd)

	ankiCmd.Flags().StringVar(&ankiOut, "out", "conjugaison.apkg", "output file")
	ankiCmd.Flags().StringVar(&ankiDataDir, "data", "", "dataset directory (default from config)")
	ankiCmd.Flags().StringVar(&ankiDeck, "deck", "", "deck name (default from config)")
	ankiCmd.Flags().BoolVar(&ankiAll, "all", false, "export every verb in the dataset")
	ankiCmd.Flags().StringVar(&ankiInspect, "inspect", "", "print a summary of an existing .apkg and exit")
}

func runAnki(cmd *cobra.Command, args []string) error {
	if ankiInspect != "" {
		pkg, err := anki.OpenPackage(ankiInspect)
		if err != nil {
			return fmt.Errorf("opening package: %w", err)
		}
		defer pkg.Close()
		fmt.Print(pkg.Summary())
		return nil
	}

	if len(args) == 0 && !ankiAll {
		return fmt.Errorf("no verbs given, pass infinitives or --all")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.DataDir
	if ankiDataDir != "" {
		dir = ankiDataDir
	}
	store, err := openStore(dir)
	if err != nil {
		return err
	}

	words := args
	if ankiAll {
		words = store.Suggest("", store.Len())
	}

	recs := make([]*verbdata.Record, 0, len(words))
	for _, word := range words {
		rec, ok := store.Lookup(word)
		if !ok {
			return fmt.Errorf("verb %q not found", word)
		}
		recs = append(recs, rec)
	}

	deck := cfg.DeckName
	if ankiDeck != "" {
		deck = ankiDeck
	}

	notes, err := anki.ExportDeck(ankiOut, deck, recs)
	if err != nil {
		return fmt.Errorf("exporting deck: %w", err)
	}

	logger.Info("exported Anki deck",
		zap.String("file", ankiOut),
		zap.String("deck", deck),
		zap.Int("notes", notes))
	fmt.Printf("Exported %d notes to %s\n", notes, ankiOut)
	return nil
}
