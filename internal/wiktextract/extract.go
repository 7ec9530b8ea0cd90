package wiktextract

import (
	"slices"
	"strings"

	"github.com/cbueth/conjugateur-fr/internal/conjug"
)

// FormIPA pairs a form text with its IPA.
type FormIPA struct {
	Text string
	IPA  string
}

var tenseTags = map[conjug.Tense]struct{ include, exclude []string }{
	conjug.Present:     {include: []string{"indicative", "present"}},
	conjug.Imparfait:   {include: []string{"indicative", "imperfect"}},
	conjug.PasseSimple: {include: []string{"indicative", "past"}, exclude: []string{"multiword-construction", "anterior"}},
	conjug.Futur:       {include: []string{"indicative", "future"}},
}

// ExtractTense returns up to six {form, ipa} pairs whose tags contain all
// include tags and none of the exclude tags, in dump order. Placeholder
// forms ("-") are dropped.
func ExtractTense(forms []Form, include, exclude []string) []FormIPA {
	var out []FormIPA
	for _, f := range forms {
		if !hasAll(f.Tags, include) || !hasNone(f.Tags, exclude) {
			continue
		}
		text, ipa := f.TextIPA()
		if text == "" || text == "-" {
			continue
		}
		out = append(out, FormIPA{Text: text, IPA: ipa})
		if len(out) == conjug.PersonCount {
			break
		}
	}
	return out
}

// TenseForms extracts the six person-forms of one simple indicative tense.
// The passé simple excludes the multiword passé antérieur rows sharing its
// "past" tag.
func TenseForms(forms []Form, tense conjug.Tense) []FormIPA {
	tt, ok := tenseTags[tense]
	if !ok {
		return nil
	}
	return ExtractTense(forms, tt.include, tt.exclude)
}

// CleanTense extracts one tense with pronouns stripped, " ou " alternates
// reduced to their first spelling. alt reports whether any person carried
// alternates.
func CleanTense(forms []Form, tense conjug.Tense) (out []FormIPA, alt bool) {
	for _, p := range TenseForms(forms, tense) {
		raw := p.Text
		if before, _, found := strings.Cut(raw, " ou "); found {
			raw = before
			alt = true
		}
		out = append(out, FormIPA{Text: conjug.CleanForm(raw), IPA: p.IPA})
	}
	return out, alt
}

// Participle returns the first form matching tags, cleaned, with the IPA
// the dump carries for the cleaned text.
func Participle(forms []Form, tags []string) (string, string) {
	var text string
	for _, f := range forms {
		if hasAll(f.Tags, tags) && f.Form != "" && f.Form != "-" {
			text = f.Form
			break
		}
	}
	if text == "" {
		return "", ""
	}
	if before, _, found := strings.Cut(text, " ou "); found {
		text = before
	}
	text = conjug.CleanForm(text)
	for _, f := range forms {
		if t, ipa := f.TextIPA(); t == text && ipa != "" {
			return text, ipa
		}
	}
	return text, ""
}

// LemmaIPAAudio returns the infinitive's own IPA, preferring its
// infinitive form row and falling back to the sounds list, plus a
// playable audio URL.
func LemmaIPAAudio(word string, forms []Form, sounds []Sound) (string, string) {
	ipa := ""
	for _, f := range forms {
		if f.Form == word && slices.Contains(f.Tags, "infinitive") {
			if _, p := f.TextIPA(); p != "" {
				ipa = p
				break
			}
		}
	}
	if ipa == "" {
		for _, s := range sounds {
			if p := strings.TrimSpace(s.IPA); p != "" {
				ipa = strings.Trim(strings.Trim(p, "[]"), "\\")
				break
			}
		}
	}
	return ipa, PickAudioURL(sounds)
}

// PickAudioURL picks the first playable URL in format preference order.
func PickAudioURL(sounds []Sound) string {
	for _, s := range sounds {
		for _, url := range []string{s.MP3URL, s.OpusURL, s.OggURL, s.OgaURL, s.WavURL, s.FlacURL} {
			if u := strings.TrimSpace(url); u != "" {
				return u
			}
		}
	}
	return ""
}

// Verbs that take a reflexive construction often enough for the dump to
// tag them pronominal but that conjugate as plain lemmas.
var pronominalExceptions = map[string]bool{
	"faire":     true,
	"aller":     true,
	"venir":     true,
	"partir":    true,
	"sortir":    true,
	"entrer":    true,
	"retourner": true,
}

// IsLemmaCandidate reports whether the entry is a French verb lemma the
// dataset keeps: not pronominal (bar the reflexive-capable exceptions),
// not a se/s' headword, declaring itself as infinitive or at least a
// verb-like suffix, with all four simple tenses at exactly six forms.
func IsLemmaCandidate(e *Entry) bool {
	if e.LangCode != "fr" || e.Pos != "verb" {
		return false
	}
	w := strings.ToLower(strings.TrimSpace(e.Word))
	if !pronominalExceptions[w] && (hasTag(e.Tags, "pronominal") || hasTag(e.RawTags, "pronominal")) {
		return false
	}
	if strings.HasPrefix(w, "se ") || strings.HasPrefix(w, "s'") || strings.HasPrefix(w, "s’") {
		return false
	}
	selfInfinitive := false
	for _, f := range e.Forms {
		if f.Form == e.Word && slices.Contains(f.Tags, "infinitive") {
			selfInfinitive = true
			break
		}
	}
	if !selfInfinitive && !hasVerbSuffix(e.Word) {
		return false
	}
	for _, tense := range conjug.Tenses {
		if len(TenseForms(e.Forms, tense)) != conjug.PersonCount {
			return false
		}
	}
	return true
}

func hasVerbSuffix(w string) bool {
	return strings.HasSuffix(w, "er") || strings.HasSuffix(w, "ir") ||
		strings.HasSuffix(w, "re") || strings.HasSuffix(w, "oir")
}

func hasAll(tags, required []string) bool {
	for _, r := range required {
		if !slices.Contains(tags, r) {
			return false
		}
	}
	return true
}

func hasNone(tags, excluded []string) bool {
	for _, x := range excluded {
		if slices.Contains(tags, x) {
			return false
		}
	}
	return true
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, want) {
			return true
		}
	}
	return false
}
