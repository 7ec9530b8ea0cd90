// Package lexique loads verb frequencies from a Lexique TSV export.
package lexique

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Load reads the tab-separated Lexique table at path and returns
// infinitive -> combined corpus frequency (film subtitles + books). Only
// rows with cgram VER count; when a lemma appears on several rows the
// highest combined frequency wins.
func Load(path string) (map[string]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening lexique table: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading lexique header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, name := range []string{"ortho", "cgram"} {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("lexique table missing %q column", name)
		}
	}

	freqs := make(map[string]float64)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading lexique table: %w", err)
		}
		if field(row, col, "cgram") != "VER" {
			continue
		}
		infinitive := strings.ToLower(strings.TrimSpace(field(row, col, "ortho")))
		if infinitive == "" {
			continue
		}
		combined := fieldFloat(row, col, "freqlemfilms2") + fieldFloat(row, col, "freqlemlivres")
		if prev, ok := freqs[infinitive]; !ok || combined > prev {
			freqs[infinitive] = combined
		}
	}
	return freqs, nil
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func fieldFloat(row []string, col map[string]int, name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(field(row, col, name)), 64)
	if err != nil {
		return 0
	}
	return v
}
