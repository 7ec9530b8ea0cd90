package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cbueth/conjugateur-fr/internal/builder"
)

var (
	buildExtract string
	buildLexique string
	buildOut     string
	buildRepoURL string
	buildIssues  string
	buildWatch   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the verb dataset from a wiktextract dump and Lexique",
	Long: `Build streams a kaikki.org French wiktextract dump (.jsonl or .jsonl.gz),
keeps the verbs that carry full conjugation tables, ranks them by Lexique
film frequency and writes tiered gzip chunks plus a manifest to the
output directory.

With --watch the command keeps running and rebuilds whenever an input
file changes.

Example:
  conjugateur build --extract kaikki-fr.jsonl.gz --lexique Lexique383.tsv
  conjugateur build --extract kaikki-fr.jsonl.gz --lexique Lexique383.tsv --watch`,
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildExtract, "extract", "", "wiktextract dump (.jsonl or .jsonl.gz)")
	buildCmd.Flags().StringVar(&buildLexique, "lexique", "", "Lexique TSV file")
	buildCmd.Flags().StringVar(&buildOut, "out", "", "output directory (default from config)")
	buildCmd.Flags().StringVar(&buildRepoURL, "repo-url",
		"https://github.com/cbueth/conjugateur-fr", "repository URL recorded in the manifest")
	buildCmd.Flags().StringVar(&buildIssues, "issues-url", "",
		"issue tracker URL (default is repo-url + /issues)")
	buildCmd.Flags().BoolVar(&buildWatch, "watch", false, "rebuild when an input file changes")

	buildCmd.MarkFlagRequired("extract")
	buildCmd.MarkFlagRequired("lexique")
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cfg.DataDir
	if buildOut != "" {
		out = buildOut
	}

	opts := builder.Options{
		ExtractPath: buildExtract,
		LexiquePath: buildLexique,
		OutDir:      out,
		RepoURL:     buildRepoURL,
		IssuesURL:   buildIssues,
		Logger:      logger,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manifest, err := builder.Build(ctx, opts)
	if err != nil {
		return err
	}
	fmt.Printf("Built %d verbs into %s\n", manifest.TotalVerbs, out)

	if !buildWatch {
		return nil
	}

	w, err := builder.NewWatcher(opts)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	fmt.Println("Watching for changes, Ctrl+C to stop")
	<-ctx.Done()
	return nil
}
