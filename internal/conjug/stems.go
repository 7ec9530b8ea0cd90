package conjug

import "strings"

// CleanForm removes the subject pronoun from an attested form: a leading
// j’ (curly apostrophe, as wiktextract emits it), then everything up to
// the first space ("nous mangeons" -> "mangeons").
func CleanForm(form string) string {
	text := form
	if strings.HasPrefix(text, "j’") {
		text = text[len("j’"):]
	} else if strings.HasPrefix(text, "J’") {
		text = text[len("J’"):]
	}
	if i := strings.IndexByte(text, ' '); i >= 0 {
		return text[i+1:]
	}
	return text
}

// Stems carries stems recovered from attested forms. The imparfait stem is
// the attested present nous form minus -ons (Wikipedia-style derivation);
// it is empty when the nous form is missing or does not end in -ons.
type Stems struct {
	PresentNous string
	Imparfait   string
}

// DeriveStems recovers stems from the attested present-tense forms.
func DeriveStems(infinitive string, presentForms []string) Stems {
	var s Stems
	if len(presentForms) >= 4 {
		nous := CleanForm(presentForms[Nous])
		s.PresentNous = nous
		if strings.HasSuffix(nous, "ons") {
			s.Imparfait = strings.TrimSuffix(nous, "ons")
		}
	}
	return s
}
