package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cbueth/conjugateur-fr/internal/render"
)

var (
	exportOut     string
	exportDataDir string
	exportAll     bool
	exportAudio   bool
)

var exportCmd = &cobra.Command{
	Use:   "export [infinitive]...",
	Short: "Export verbs as a static HTML page",
	Long: `Export writes a self-contained HTML page with the colored conjugation
tables of the given verbs, or of the whole dataset with --all. The page
keeps the same color semantics as the terminal output and optionally
wraps forms in AudioFrench.com pronunciation links.

Example:
  conjugateur export être avoir aller --out verbes.html
  conjugateur export --all --audio-links`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportOut, "out", "conjugaison.html", "output file")
	exportCmd.Flags().StringVar(&exportDataDir, "data", "", "dataset directory (default from config)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "export every verb in the dataset")
	exportCmd.Flags().BoolVar(&exportAudio, "audio-links", false, "wrap forms in AudioFrench.com audio links")
}

func runExport(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !exportAll {
		return fmt.Errorf("no verbs given, pass infinitives or --all")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dir := cfg.DataDir
	if exportDataDir != "" {
		dir = exportDataDir
	}
	store, err := openStore(dir)
	if err != nil {
		return err
	}

	words := args
	if exportAll {
		words = store.Suggest("", store.Len())
	}

	views := make([]*render.VerbView, 0, len(words))
	for _, word := range words {
		rec, ok := store.Lookup(word)
		if !ok {
			return fmt.Errorf("verb %q not found", word)
		}
		views = append(views, render.NewVerbView(rec))
	}

	audio := cfg.EnableAudioLinks
	if cmd.Flags().Changed("audio-links") {
		audio = exportAudio
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	if err := render.NewHTMLExporter(cfg.Palette, audio).Write(f, views); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}

	logger.Info("exported HTML page",
		zap.String("file", exportOut),
		zap.Int("verbs", len(views)))
	fmt.Printf("Exported %d verbs to %s\n", len(views), exportOut)
	return nil
}
