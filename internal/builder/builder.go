// Package builder assembles the tiered verb dataset from a Wiktionary
// extract and a Lexique frequency table.
package builder

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cbueth/conjugateur-fr/internal/lexique"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
	"github.com/cbueth/conjugateur-fr/internal/wiktextract"
)

// Tier sizes for the always-loaded chunks. Everything past them is
// grouped by first letter.
const (
	mostCommonCount = 200
	commonCount     = 2300
	totalCommon     = mostCommonCount + commonCount
)

// Options configure a dataset build.
type Options struct {
	ExtractPath string // kaikki.org fr extract, .jsonl or .jsonl.gz
	LexiquePath string // Lexique TSV
	OutDir      string
	RepoURL     string
	IssuesURL   string // defaults to RepoURL + "/issues"
	Logger      *zap.Logger
}

type scored struct {
	freq float64
	rec  verbdata.Record
}

// Build runs the full pipeline and returns the written manifest.
func Build(ctx context.Context, opts Options) (*verbdata.Manifest, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	freqs, err := lexique.Load(opts.LexiquePath)
	if err != nil {
		return nil, err
	}
	log.Info("loaded frequencies", zap.Int("verbs", len(freqs)))

	var all []scored
	err = wiktextract.Stream(opts.ExtractPath, func(e *wiktextract.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec, ok := Record(e)
		if !ok {
			return nil
		}
		all = append(all, scored{freq: freqs[strings.ToLower(rec.Word)], rec: rec})
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("collected verbs", zap.Int("count", len(all)))

	sort.SliceStable(all, func(i, j int) bool { return all[i].freq > all[j].freq })
	recs := make([]verbdata.Record, len(all))
	for i := range all {
		recs[i] = all[i].rec
	}

	most, common, rest := splitTiers(recs, mostCommonCount, totalCommon)
	if indexWord(most, "avoir") < 0 {
		log.Warn("avoir missing from dataset")
	}

	letterDir := filepath.Join(opts.OutDir, verbdata.LetterChunksDir)
	if err := os.RemoveAll(letterDir); err != nil {
		return nil, fmt.Errorf("cleaning letter chunks: %w", err)
	}
	if err := os.MkdirAll(letterDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dirs: %w", err)
	}

	mostSize, err := verbdata.WriteChunk(filepath.Join(opts.OutDir, verbdata.MostCommonFile), most)
	if err != nil {
		return nil, fmt.Errorf("writing most common chunk: %w", err)
	}
	commonSize, err := verbdata.WriteChunk(filepath.Join(opts.OutDir, verbdata.CommonFile), common)
	if err != nil {
		return nil, fmt.Errorf("writing common chunk: %w", err)
	}

	files, letters, letterTotal, err := writeLetterChunks(ctx, letterDir, groupByLetter(rest))
	if err != nil {
		return nil, err
	}

	issuesURL := opts.IssuesURL
	if issuesURL == "" && opts.RepoURL != "" {
		issuesURL = strings.TrimRight(opts.RepoURL, "/") + "/issues"
	}

	manifest := &verbdata.Manifest{
		Version:     verbdata.ManifestVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Meta: verbdata.Meta{
			RepoURL:               opts.RepoURL,
			IssuesURL:             issuesURL,
			WiktionaryExtractDate: extractDate(opts.ExtractPath),
		},
		Strategy: verbdata.StrategyTiered,
		MostCommonVerbs: verbdata.TierInfo{
			Count:     len(most),
			File:      verbdata.MostCommonFile,
			SizeBytes: mostSize,
		},
		CommonVerbs: verbdata.TierInfo{
			Count:     len(common),
			File:      verbdata.CommonFile,
			SizeBytes: commonSize,
		},
		LetterChunks: verbdata.LetterChunkInfo{
			Files:          files,
			Letters:        letters,
			TotalSizeBytes: letterTotal,
			TotalSizeMB:    math.Round(float64(letterTotal)/(1024*1024)*10) / 10,
		},
		TotalVerbs: len(recs),
	}
	if err := verbdata.WriteManifest(filepath.Join(opts.OutDir, verbdata.ManifestFile), manifest); err != nil {
		return nil, err
	}

	log.Info("build complete",
		zap.Int("most_common", len(most)),
		zap.Int("common", len(common)),
		zap.Int("letter_chunks", len(letters)),
		zap.Int("total_verbs", len(recs)))
	return manifest, nil
}

// splitTiers cuts frequency-ordered records into the two always-loaded
// tiers and the remainder. When avoir lands below the top tier it moves
// to the end of the top tier.
func splitTiers(recs []verbdata.Record, mostN, totalN int) (most, common, rest []verbdata.Record) {
	for i, rec := range recs {
		switch {
		case i < mostN:
			most = append(most, rec)
		case i < totalN:
			common = append(common, rec)
		default:
			rest = append(rest, rec)
		}
	}
	if indexWord(most, "avoir") >= 0 {
		return most, common, rest
	}
	if i := indexWord(common, "avoir"); i >= 0 {
		most = append(most, common[i])
		common = append(common[:i], common[i+1:]...)
	} else if i := indexWord(rest, "avoir"); i >= 0 {
		most = append(most, rest[i])
		rest = append(rest[:i], rest[i+1:]...)
	}
	return most, common, rest
}

func indexWord(recs []verbdata.Record, word string) int {
	for i, rec := range recs {
		if strings.ToLower(rec.Word) == word {
			return i
		}
	}
	return -1
}

func groupByLetter(recs []verbdata.Record) map[string][]verbdata.Record {
	groups := make(map[string][]verbdata.Record)
	for _, rec := range recs {
		runes := []rune(rec.Word)
		if len(runes) == 0 {
			continue
		}
		letter := string(unicode.ToLower(runes[0]))
		groups[letter] = append(groups[letter], rec)
	}
	return groups
}

// writeLetterChunks writes one chunk per letter in parallel and returns
// the manifest-relative file names, the sorted letters, and the total
// compressed size.
func writeLetterChunks(ctx context.Context, letterDir string, groups map[string][]verbdata.Record) ([]string, []string, int64, error) {
	letters := make([]string, 0, len(groups))
	for letter := range groups {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	sizes := make([]int64, len(letters))
	g, gctx := errgroup.WithContext(ctx)
	for i, letter := range letters {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			size, err := verbdata.WriteChunk(filepath.Join(letterDir, letter+".json.gz"), groups[letter])
			if err != nil {
				return fmt.Errorf("writing letter chunk %s: %w", letter, err)
			}
			sizes[i] = size
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, 0, err
	}

	files := make([]string, len(letters))
	var total int64
	for i, letter := range letters {
		files[i] = verbdata.LetterChunksDir + "/" + letter + ".json.gz"
		total += sizes[i]
	}
	return files, letters, total, nil
}

func extractDate(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return ""
	}
	return info.ModTime().UTC().Format("2006-01-02")
}
