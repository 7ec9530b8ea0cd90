// Package render turns analyzed verb records into terminal and HTML
// output.
package render

import (
	"strings"

	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/config"
	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

// FormView is one conjugated form prepared for display.
type FormView struct {
	Person    string
	Text      string // cleaned form
	Raw       string // attested text, pronoun included
	IPA       string
	IPAEnding string
	Classes   []colorize.CharClass
}

// TenseView groups the six analyzed forms of a tense.
type TenseView struct {
	Tense conjug.Tense
	Forms []FormView
}

// ParticipleView carries one analyzed participle.
type ParticipleView struct {
	Text    string
	IPA     string
	Classes []colorize.CharClass
}

// VerbView is a record with its per-character analyses, ready for the
// renderers. Tenses without attested forms are left out.
type VerbView struct {
	Word        string
	IPA         string
	Audio       string
	Marker      string // display marker, 🟢 for regular verbs
	Hint        string
	Tenses      []TenseView
	Participles []ParticipleView
}

// NewVerbView analyzes rec for display.
func NewVerbView(rec *verbdata.Record) *VerbView {
	stems := rec.Stems()
	view := &VerbView{
		Word:   rec.Word,
		IPA:    rec.IPA,
		Audio:  rec.Audio,
		Marker: colorize.DisplayMarker(rec.Irregularity),
		Hint:   colorize.HintFR(rec.Irregularity),
	}

	for _, tense := range conjug.Tenses {
		forms := rec.TenseForms(tense)
		analyses, ok := colorize.AnalyzeTense(rec.Word, tense, verbdata.Texts(forms), stems)
		if !ok {
			continue
		}
		tv := TenseView{Tense: tense}
		for i, a := range analyses {
			tv.Forms = append(tv.Forms, FormView{
				Person:    conjug.Person(i).Label(),
				Text:      a.Form,
				Raw:       forms[i].Form,
				IPA:       forms[i].IPA,
				IPAEnding: ExtractIPAEnding(forms[i].IPA),
				Classes:   a.Classes,
			})
		}
		view.Tenses = append(view.Tenses, tv)
	}

	view.Participles = participleViews(rec)
	return view
}

func participleViews(rec *verbdata.Record) []ParticipleView {
	pair := []verbdata.FormIPA{rec.Participles.Present, rec.Participles.Past}

	var texts []string
	for _, p := range pair {
		if p.Form != "" {
			texts = append(texts, p.Form)
		}
	}
	prefix := colorize.SharedPrefix(texts)
	stem := conjug.LinguisticStem(rec.Word)

	var views []ParticipleView
	for _, p := range pair {
		if p.Form == "" {
			continue
		}
		views = append(views, ParticipleView{
			Text:    p.Form,
			IPA:     p.IPA,
			Classes: colorize.Classify(p.Form, prefix, stem, nil),
		})
	}
	return views
}

// ExtractIPAEnding returns the pronounced ending of a form's IPA: the
// part after the pronoun's space, from the liaison mark when the IPA is
// unsegmented, or the last two characters as a fallback.
func ExtractIPAEnding(ipa string) string {
	if ipa == "" {
		return ""
	}
	ipa = strings.TrimRight(ipa, "]")
	if _, after, ok := strings.Cut(ipa, " "); ok {
		return after
	}
	if i := strings.Index(ipa, "‿"); i >= 0 {
		return ipa[i:]
	}
	runes := []rune(ipa)
	if len(runes) > 2 {
		return string(runes[len(runes)-2:])
	}
	return ipa
}

// classRun is a maximal run of characters sharing one classification.
type classRun struct {
	Text  string
	Class colorize.CharClass
}

func classRuns(text string, classes []colorize.CharClass) []classRun {
	runes := []rune(text)
	var runs []classRun
	for start := 0; start < len(runes); {
		class := classAt(classes, start)
		end := start + 1
		for end < len(runes) && classAt(classes, end) == class {
			end++
		}
		runs = append(runs, classRun{Text: string(runes[start:end]), Class: class})
		start = end
	}
	return runs
}

func classAt(classes []colorize.CharClass, i int) colorize.CharClass {
	if i < len(classes) {
		return classes[i]
	}
	return colorize.ClassNormal
}

// tenseColors maps a tense to its base and highlight hex colors.
func tenseColors(p config.Palette, t conjug.Tense) (string, string) {
	switch t {
	case conjug.Present:
		return p.Red, p.RedHi
	case conjug.Imparfait:
		return p.Blue, p.BlueHi
	case conjug.PasseSimple:
		return p.Green, p.GreenHi
	default:
		return p.Purple, p.PurpleHi
	}
}
