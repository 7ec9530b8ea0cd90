package conjug

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Stem alternations that count as regular spelling, not irregularity:
// -é.er and -e.er verbs lower the last stem vowel to è before a silent e.
var (
	acuteSyllableER = regexp.MustCompile(`é[^aeiouy]*er$`)
	plainSyllableER = regexp.MustCompile(`e[^aeiouy]*er$`)
)

// RegularVariants returns the acceptable regular spellings for the verb,
// tense and person: the plain base form first, then spelling-change
// variants in rule order, deduplicated. An empty result means no
// prediction is available, not an error.
func RegularVariants(infinitive string, tense Tense, person Person, stems Stems) []string {
	if person < 0 || person >= PersonCount {
		return nil
	}
	group := GroupOf(infinitive)
	base := baseForm(infinitive, tense, person, stems)
	if base == "" {
		return nil
	}
	if group == GroupOther {
		return []string{base}
	}

	variants := cerGerVariants(base, infinitive, Ending(infinitive, tense, person))

	if tense == Present {
		inf := strings.ToLower(infinitive)
		stem := infinitive[:len(infinitive)-2]
		end := presentEndings[group][person]
		for _, st := range yerStems(stem, inf, tense, person) {
			for _, st2 := range eerStems(st, inf, tense, person) {
				for _, st3 := range elerEterStems(st2, inf, tense, person) {
					variants = appendUnique(variants, st3+end)
				}
			}
		}
	}

	out := make([]string, 0, len(variants))
	for _, v := range variants {
		if v != "" && !contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

// baseForm builds stem+ending for the regular paradigm. The imparfait
// prefers the stem derived from the attested present nous form; the futur
// builds on the infinitive itself (-re drops its trailing e).
func baseForm(infinitive string, tense Tense, person Person, stems Stems) string {
	group := GroupOf(infinitive)
	stem := infinitive
	if group != GroupOther {
		stem = infinitive[:len(infinitive)-2]
	}

	switch tense {
	case Present:
		ends, ok := presentEndings[group]
		if !ok {
			return ""
		}
		return stem + ends[person]
	case Imparfait:
		base := stems.Imparfait
		if base == "" {
			base = stem
			if group == GroupIR {
				base = stem + "iss"
			}
		}
		return base + imparfaitEndings[person]
	case Futur:
		base := infinitive
		if group == GroupRE {
			base = infinitive[:len(infinitive)-1]
		}
		return base + futurEndings[person]
	case PasseSimple:
		switch group {
		case GroupER:
			return stem + passeSimpleERends[person]
		case GroupIR, GroupRE:
			return stem + passeSimpleIRends[person]
		}
		return ""
	}
	return ""
}

// silentE reports whether the present ending for the person is a silent e
// (je, tu, il, ils), which triggers the stem alternation rules.
func silentE(person Person) bool {
	return person == Je || person == Tu || person == Il || person == Ils
}

// cerGerVariants keeps the form as-is plus the ç/ge respelling when the
// infinitive ends -cer/-ger and the ending opens with a, â or o.
func cerGerVariants(form, infinitive, ending string) []string {
	variants := []string{form}
	inf := strings.ToLower(infinitive)
	if ending != "" {
		first, _ := utf8.DecodeRuneInString(ending)
		if first == 'a' || first == 'â' || first == 'o' {
			if strings.HasSuffix(inf, "cer") {
				variants = append(variants, respellBefore(form, 'c', "ç"))
			}
			if strings.HasSuffix(inf, "ger") {
				variants = append(variants, respellBefore(form, 'g', "ge"))
			}
		}
	}
	out := make([]string, 0, len(variants))
	for _, v := range variants {
		out = appendUnique(out, v)
	}
	return out
}

// respellBefore rewrites target everywhere its next rune is a, â or o.
func respellBefore(form string, target rune, repl string) string {
	runes := []rune(form)
	var b strings.Builder
	for i, r := range runes {
		if r == target && i+1 < len(runes) && beforeAO(runes[i+1]) {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func beforeAO(r rune) bool {
	return r == 'a' || r == 'â' || r == 'o'
}

// yToI swaps the last y of the stem for i (envoyer -> envoi-). Optional
// rules keep both spellings, mandatory ones only the changed stem.
func yToI(stem string, optional bool) []string {
	idx := strings.LastIndex(stem, "y")
	if idx < 0 {
		return []string{stem}
	}
	changed := stem[:idx] + "i" + stem[idx+1:]
	if optional {
		return []string{stem, changed}
	}
	return []string{changed}
}

// yerStems applies the -yer rules in the present silent-e persons:
// mandatory for -oyer/-uyer, optional for -ayer.
func yerStems(stem, inf string, tense Tense, person Person) []string {
	if tense != Present || !silentE(person) {
		return []string{stem}
	}
	switch {
	case strings.HasSuffix(inf, "oyer"), strings.HasSuffix(inf, "uyer"):
		return yToI(stem, false)
	case strings.HasSuffix(inf, "ayer"):
		return yToI(stem, true)
	}
	return []string{stem}
}

// lastToGrave turns the last occurrence of target (e or é) into è.
func lastToGrave(stem, target string) string {
	idx := strings.LastIndex(stem, target)
	if idx < 0 {
		return stem
	}
	return stem[:idx] + "è" + stem[idx+len(target):]
}

// eerStems applies é->è (priority) or e->è for -é.er / -e.er infinitives
// in the present silent-e persons, keeping the plain stem first.
func eerStems(stem, inf string, tense Tense, person Person) []string {
	if tense != Present || !silentE(person) {
		return []string{stem}
	}
	variants := []string{stem}
	if acuteSyllableER.MatchString(inf) {
		variants = appendUnique(variants, lastToGrave(stem, "é"))
	} else if plainSyllableER.MatchString(inf) {
		variants = appendUnique(variants, lastToGrave(stem, "e"))
	}
	return variants
}

// elerEterStems emits the -eler/-eter alternatives: grave accent, doubled
// consonant, and the doubled stem with the accent as well.
func elerEterStems(stem, inf string, tense Tense, person Person) []string {
	if tense != Present || !silentE(person) {
		return []string{stem}
	}
	if !strings.HasSuffix(inf, "eler") && !strings.HasSuffix(inf, "eter") {
		return []string{stem}
	}

	variants := []string{stem}
	variants = appendUnique(variants, lastToGrave(stem, "e"))
	if strings.HasSuffix(inf, "eler") && strings.HasSuffix(stem, "el") {
		doubled := stem[:len(stem)-1] + "ll"
		variants = appendUnique(variants, doubled)
		variants = appendUnique(variants, lastToGrave(doubled, "e"))
	}
	if strings.HasSuffix(inf, "eter") && strings.HasSuffix(stem, "et") {
		doubled := stem[:len(stem)-1] + "tt"
		variants = appendUnique(variants, doubled)
		variants = appendUnique(variants, lastToGrave(doubled, "e"))
	}
	return variants
}

func appendUnique(list []string, v string) []string {
	if contains(list, v) {
		return list
	}
	return append(list, v)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
