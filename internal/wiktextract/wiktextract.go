// Package wiktextract reads French verb entries from a wiktextract JSONL
// dump (kaikki.org fr-extract) and pulls the conjugated forms, IPA and
// audio metadata out of them.
package wiktextract

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Form is one inflected form of a dump entry.
type Form struct {
	Form string   `json:"form"`
	Tags []string `json:"tags"`
	IPAs []string `json:"ipas"`
}

// Sound is one pronunciation record of a dump entry.
type Sound struct {
	IPA     string `json:"ipa"`
	MP3URL  string `json:"mp3_url"`
	OpusURL string `json:"opus_url"`
	OggURL  string `json:"ogg_url"`
	OgaURL  string `json:"oga_url"`
	WavURL  string `json:"wav_url"`
	FlacURL string `json:"flac_url"`
}

// Entry is one wiktextract dump entry, reduced to the fields the verb
// pipeline consumes.
type Entry struct {
	Word     string   `json:"word"`
	Pos      string   `json:"pos"`
	LangCode string   `json:"lang_code"`
	Tags     []string `json:"tags"`
	RawTags  []string `json:"raw_tags"`
	Forms    []Form   `json:"forms"`
	Sounds   []Sound  `json:"sounds"`
}

// TextIPA returns the form text with its first IPA, brackets and
// backslashes trimmed. Both are empty when the form has no text.
func (f Form) TextIPA() (string, string) {
	if f.Form == "" {
		return "", ""
	}
	if len(f.IPAs) > 0 && f.IPAs[0] != "" {
		return f.Form, strings.Trim(f.IPAs[0], "[]\\")
	}
	return f.Form, ""
}

// Stream decodes the dump at path line by line and hands each entry to
// fn, stopping at the first error fn returns. Files ending in .gz are
// decompressed on the fly. Malformed lines are skipped.
func Stream(path string, fn func(*Entry) error) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening extract: %w", err)
	}
	defer file.Close()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return fmt.Errorf("opening extract: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	scanner := bufio.NewScanner(reader)
	// Entries with full conjugation tables overflow the default token size.
	scanner.Buffer(make([]byte, 1024*1024), 64*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(line, &entry); err != nil {
			// Skip malformed entries
			continue
		}
		if err := fn(&entry); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading extract: %w", err)
	}
	return nil
}
