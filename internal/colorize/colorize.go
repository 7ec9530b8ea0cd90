// Package colorize turns attested conjugated forms into per-character
// classifications for rendering: characters belonging to the verb's stem,
// characters deviating from the regular model, and everything else.
//
// Classification merges two independent stem heuristics, the shared prefix
// across a tense's six person-forms and a greedy scan of the linguistic
// stem, with the deviation mask from the edit-distance aligner. Stem always
// wins over irregular, irregular over normal.
package colorize

import (
	"strings"
	"unicode"

	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/editdist"
)

// CharClass tags one rune of an attested form.
type CharClass int

const (
	ClassNormal CharClass = iota
	ClassStem
	ClassIrregular
)

func (c CharClass) String() string {
	switch c {
	case ClassStem:
		return "stem"
	case ClassIrregular:
		return "irregular"
	default:
		return "normal"
	}
}

// SharedPrefix returns the case-insensitive run of characters all forms
// share from the start, spelled with the first form's characters. It is
// empty when forms is empty, when any form is empty, or when two forms
// disagree at the first position.
func SharedPrefix(forms []string) string {
	if len(forms) == 0 {
		return ""
	}
	prefix := []rune(forms[0])
	for _, form := range forms[1:] {
		next := []rune(form)
		keep := 0
		for keep < len(prefix) && keep < len(next) {
			if !foldEq(prefix[keep], next[keep]) {
				break
			}
			keep++
		}
		prefix = prefix[:keep]
		if len(prefix) == 0 {
			break
		}
	}
	return string(prefix)
}

// Classify tags each rune of form. Stem coverage is the union of a greedy
// first-occurrence scan of the linguistic stem (each stem letter consumes
// the next matching rune after the previously consumed index; a missing
// letter stops the scan) and the contiguous shared prefix from index 0.
// Unmarked runes become irregular where the deviation mask flags them,
// normal otherwise. mask may be nil when no prediction was available.
func Classify(form, sharedPrefix, stem string, mask []bool) []CharClass {
	runes := []rune(form)
	if len(runes) == 0 {
		return nil
	}
	classes := make([]CharClass, len(runes))

	lower := make([]rune, len(runes))
	for i, r := range runes {
		lower[i] = unicode.ToLower(r)
	}
	last := -1
	for _, sc := range strings.ToLower(stem) {
		idx := indexRuneFrom(lower, sc, last+1)
		if idx < 0 {
			break
		}
		classes[idx] = ClassStem
		last = idx
	}

	for i, pc := range []rune(sharedPrefix) {
		if i >= len(runes) || !foldEq(runes[i], pc) {
			break
		}
		classes[i] = ClassStem
	}

	for i := range classes {
		if classes[i] == ClassStem {
			continue
		}
		if i < len(mask) && mask[i] {
			classes[i] = ClassIrregular
		}
	}
	return classes
}

// FormAnalysis is the classification of one attested person-form.
type FormAnalysis struct {
	Form    string      // pronoun-stripped form
	Classes []CharClass // one tag per rune of Form
	Cost    int         // edit cost against the closest regular variant, -1 without a prediction
}

// AnalyzeTense classifies the attested forms of one tense, given in fixed
// person order. The shared prefix is computed across the cleaned forms
// first, then each form is aligned against its regular variants and
// classified. A cell with fewer than six forms keeps its per-form deviation
// analysis but the shared prefix is skipped. ok is false only when forms is
// empty.
func AnalyzeTense(infinitive string, tense conjug.Tense, forms []string, stems conjug.Stems) ([]FormAnalysis, bool) {
	if len(forms) == 0 {
		return nil, false
	}
	n := len(forms)
	if n > conjug.PersonCount {
		n = conjug.PersonCount
	}
	cleaned := make([]string, n)
	for i := range cleaned {
		cleaned[i] = conjug.CleanForm(forms[i])
	}
	stem := conjug.LinguisticStem(infinitive)

	// The shared prefix needs the full six-person paradigm.
	var prefix string
	if n == conjug.PersonCount {
		prefix = SharedPrefix(cleaned)
	}

	out := make([]FormAnalysis, n)
	for i := range out {
		variants := conjug.RegularVariants(infinitive, tense, conjug.Person(i), stems)
		cost, mask, ok := editdist.BestMask(cleaned[i], variants)
		if !ok {
			cost = -1
		}
		out[i] = FormAnalysis{
			Form:    cleaned[i],
			Classes: Classify(cleaned[i], prefix, stem, mask),
			Cost:    cost,
		}
	}
	return out, true
}

func indexRuneFrom(runes []rune, r rune, from int) int {
	for i := from; i < len(runes); i++ {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func foldEq(a, b rune) bool {
	return unicode.ToLower(a) == unicode.ToLower(b)
}
