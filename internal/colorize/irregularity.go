package colorize

import (
	"unicode/utf8"

	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/editdist"
)

// Marker glyphs for the irregularity rating. Rate returns the empty string
// for a fully regular verb; renderers show MarkerNone in that case.
const (
	MarkerHigh   = "🔴"
	MarkerMedium = "🟡"
	MarkerStem   = "🟠"
	MarkerNone   = "🟢"
)

// HintFR returns the French legend text for a marker.
func HintFR(marker string) string {
	switch marker {
	case MarkerHigh:
		return "Très irrégulier"
	case MarkerMedium:
		return "Irrégularité moyenne"
	case MarkerStem:
		return "Radical irrégulier / changement de radical"
	case MarkerNone, "":
		return "Régulier"
	}
	return ""
}

// DisplayMarker maps Rate's result to the glyph renderers show.
func DisplayMarker(marker string) string {
	if marker == "" {
		return MarkerNone
	}
	return marker
}

// Rate scores how far the attested forms deviate from the regular model
// across the four simple tenses and returns a marker glyph, or "" when
// nothing deviates. Tenses with fewer than six forms and persons with an
// empty cleaned form or no regular prediction are skipped; a verb where
// nothing could be compared rates as regular.
func Rate(infinitive string, byTense map[conjug.Tense][]string, stems conjug.Stems) string {
	totalScore := 0
	totalChars := 0
	stemMismatchForms := 0
	comparedForms := 0

	for _, tense := range conjug.Tenses {
		forms := byTense[tense]
		if len(forms) < conjug.PersonCount {
			continue
		}
		for p := 0; p < conjug.PersonCount; p++ {
			attested := conjug.CleanForm(forms[p])
			if attested == "" {
				continue
			}
			variants := conjug.RegularVariants(infinitive, tense, conjug.Person(p), stems)
			if len(variants) == 0 {
				continue
			}
			ending := conjug.Ending(infinitive, tense, conjug.Person(p))
			score, mismatch := bestDeviation(attested, variants, ending)

			comparedForms++
			totalScore += score
			totalChars += max(1, utf8.RuneCountInString(attested))
			if score > 0 && mismatch {
				stemMismatchForms++
			}
		}
	}

	if comparedForms == 0 || totalScore == 0 {
		return ""
	}
	ratio := float64(totalScore) / float64(max(1, totalChars))
	switch {
	case stemMismatchForms >= 6 || ratio >= 0.18:
		return MarkerHigh
	case stemMismatchForms >= 1:
		return MarkerStem
	}
	return MarkerMedium
}

// bestDeviation aligns attested against each variant in order and keeps
// the score and stem-mismatch flag of the cheapest one, first minimum
// winning, with an exact match short-circuiting.
func bestDeviation(attested string, variants []string, ending string) (int, bool) {
	best := -1
	mismatch := false
	for _, expected := range variants {
		s, m := deviation(attested, expected, ending)
		if best < 0 || s < best {
			best, mismatch = s, m
			if s == 0 {
				break
			}
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, mismatch
}

// deviation returns the edit cost between attested and expected plus
// whether any edit touches the stem, the region before the regular ending
// on either side.
func deviation(attested, expected, ending string) (int, bool) {
	cost, ops := editdist.Ops(attested, expected)
	if cost == 0 {
		return 0, false
	}
	endLen := utf8.RuneCountInString(ending)
	boundaryExpected := max(0, utf8.RuneCountInString(expected)-endLen)
	boundaryAttested := max(0, utf8.RuneCountInString(attested)-endLen)
	for _, op := range ops {
		if op.Expected < boundaryExpected || op.Attested < boundaryAttested {
			return cost, true
		}
	}
	return cost, false
}
