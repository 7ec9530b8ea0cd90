package builder

import (
	"github.com/cbueth/conjugateur-fr/internal/colorize"
	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
	"github.com/cbueth/conjugateur-fr/internal/wiktextract"
)

// Record converts a dump entry into a dataset record. ok is false for
// entries that are not plain verb lemmas with four complete tenses.
func Record(e *wiktextract.Entry) (verbdata.Record, bool) {
	if !wiktextract.IsLemmaCandidate(e) {
		return verbdata.Record{}, false
	}

	pr, prAlt := wiktextract.CleanTense(e.Forms, conjug.Present)
	imp, impAlt := wiktextract.CleanTense(e.Forms, conjug.Imparfait)
	ps, psAlt := wiktextract.CleanTense(e.Forms, conjug.PasseSimple)
	fut, futAlt := wiktextract.CleanTense(e.Forms, conjug.Futur)

	tenses := verbdata.Tenses{
		Present:     formIPAs(pr),
		Imparfait:   formIPAs(imp),
		PasseSimple: formIPAs(ps),
		Futur:       formIPAs(fut),
	}
	stems := conjug.DeriveStems(e.Word, verbdata.Texts(tenses.Present))
	irr := colorize.Rate(e.Word, map[conjug.Tense][]string{
		conjug.Present:     verbdata.Texts(tenses.Present),
		conjug.Imparfait:   verbdata.Texts(tenses.Imparfait),
		conjug.PasseSimple: verbdata.Texts(tenses.PasseSimple),
		conjug.Futur:       verbdata.Texts(tenses.Futur),
	}, stems)

	presPart, presPartIPA := wiktextract.Participle(e.Forms, []string{"participle", "present"})
	pastPart, pastPartIPA := wiktextract.Participle(e.Forms, []string{"participle", "past"})
	ipa, audio := wiktextract.LemmaIPAAudio(e.Word, e.Forms, e.Sounds)

	return verbdata.Record{
		Word:          e.Word,
		IPA:           ipa,
		Audio:         audio,
		Irregularity:  irr,
		HasAlternates: prAlt || impAlt || psAlt || futAlt,
		Participles: verbdata.Participles{
			Present: verbdata.FormIPA{Form: presPart, IPA: presPartIPA},
			Past:    verbdata.FormIPA{Form: pastPart, IPA: pastPartIPA},
		},
		Tenses: tenses,
	}, true
}

func formIPAs(pairs []wiktextract.FormIPA) []verbdata.FormIPA {
	out := make([]verbdata.FormIPA, len(pairs))
	for i, p := range pairs {
		out[i] = verbdata.FormIPA{Form: p.Text, IPA: p.IPA}
	}
	return out
}
