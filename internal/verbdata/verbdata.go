// Package verbdata defines the verb dataset formats: per-verb records,
// gzip-compressed chunk files and the tiered manifest tying them
// together, plus an in-memory store over a built dataset directory.
package verbdata

import (
	"github.com/cbueth/conjugateur-fr/internal/conjug"
)

// Dataset layout inside a data directory.
const (
	ManifestFile    = "manifest.json"
	MostCommonFile  = "most_common_verbs.json.gz"
	CommonFile      = "common_verbs.json.gz"
	LetterChunksDir = "letter_chunks"

	ManifestVersion = 3
	StrategyTiered  = "tiered"
)

// FormIPA is one conjugated form with its IPA.
type FormIPA struct {
	Form string `json:"f"`
	IPA  string `json:"ipa"`
}

// Texts returns just the form strings of a tense table.
func Texts(forms []FormIPA) []string {
	out := make([]string, len(forms))
	for i, f := range forms {
		out[i] = f.Form
	}
	return out
}

// Participles carries the two participles of a record.
type Participles struct {
	Present FormIPA `json:"pres"`
	Past    FormIPA `json:"past"`
}

// Tenses holds the four simple-tense tables, each six forms in person
// order or empty when the source had no complete table.
type Tenses struct {
	Present     []FormIPA `json:"pr"`
	Imparfait   []FormIPA `json:"imp"`
	PasseSimple []FormIPA `json:"ps"`
	Futur       []FormIPA `json:"fut"`
}

// Record is one verb of a dataset chunk.
type Record struct {
	Word          string      `json:"w"`
	IPA           string      `json:"ipa"`
	Audio         string      `json:"audio"`
	Irregularity  string      `json:"irr"`
	HasAlternates bool        `json:"alt"`
	Participles   Participles `json:"part"`
	Tenses        Tenses      `json:"t"`
}

// TenseForms returns the table for one tense.
func (r *Record) TenseForms(tense conjug.Tense) []FormIPA {
	switch tense {
	case conjug.Present:
		return r.Tenses.Present
	case conjug.Imparfait:
		return r.Tenses.Imparfait
	case conjug.PasseSimple:
		return r.Tenses.PasseSimple
	case conjug.Futur:
		return r.Tenses.Futur
	}
	return nil
}

// Stems derives the attested stems used by the regular model.
func (r *Record) Stems() conjug.Stems {
	return conjug.DeriveStems(r.Word, Texts(r.Tenses.Present))
}

// Chunk is the payload of one chunk file.
type Chunk struct {
	Verbs []Record `json:"verbs"`
}

// TierInfo describes one always-loaded tier file.
type TierInfo struct {
	Count     int    `json:"count"`
	File      string `json:"file"`
	SizeBytes int64  `json:"size_bytes"`
}

// LetterChunkInfo describes the on-demand per-letter tier.
type LetterChunkInfo struct {
	Files          []string `json:"files"`
	Letters        []string `json:"letters"`
	TotalSizeBytes int64    `json:"total_size_bytes"`
	TotalSizeMB    float64  `json:"total_size_mb"`
}

// Meta carries provenance for the dataset consumers.
type Meta struct {
	RepoURL               string `json:"repo_url"`
	IssuesURL             string `json:"issues_url"`
	WiktionaryExtractDate string `json:"wiktionary_extract_date"`
}

// Manifest indexes a built dataset directory.
type Manifest struct {
	Version         int             `json:"version"`
	GeneratedAt     string          `json:"generated_at"`
	Meta            Meta            `json:"meta"`
	Strategy        string          `json:"strategy"`
	MostCommonVerbs TierInfo        `json:"most_common_verbs"`
	CommonVerbs     TierInfo        `json:"common_verbs"`
	LetterChunks    LetterChunkInfo `json:"letter_chunks"`
	TotalVerbs      int             `json:"total_verbs"`
}
