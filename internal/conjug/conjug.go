// Package conjug holds the French conjugation rule tables: verb groups,
// tense and person endings, stem derivation, and the generator for the
// regular spelling variants a conjugated form may take.
package conjug

import "strings"

// Group classifies an infinitive by its ending.
type Group string

const (
	GroupER    Group = "er"
	GroupIR    Group = "ir"
	GroupRE    Group = "re"
	GroupOther Group = "other" // no present/passé simple paradigm
)

// GroupOf derives the verb group from the infinitive's suffix.
func GroupOf(infinitive string) Group {
	switch {
	case strings.HasSuffix(infinitive, "er"):
		return GroupER
	case strings.HasSuffix(infinitive, "ir"):
		return GroupIR
	case strings.HasSuffix(infinitive, "re"):
		return GroupRE
	}
	return GroupOther
}

// Tense identifies one of the four simple indicative tenses.
type Tense string

const (
	Present     Tense = "present"
	Imparfait   Tense = "imparfait"
	PasseSimple Tense = "passe_simple"
	Futur       Tense = "futur"
)

// Tenses lists the tenses in display order.
var Tenses = []Tense{Present, Imparfait, PasseSimple, Futur}

// French returns the display name of the tense.
func (t Tense) French() string {
	switch t {
	case Present:
		return "Présent"
	case Imparfait:
		return "Imparfait"
	case PasseSimple:
		return "Passé simple"
	case Futur:
		return "Futur simple"
	}
	return string(t)
}

// Person indexes the six grammatical persons in fixed order.
type Person int

const (
	Je Person = iota
	Tu
	Il // il/elle/on
	Nous
	Vous
	Ils // ils/elles
)

// PersonCount is the number of persons a complete tense carries.
const PersonCount = 6

var personLabels = [PersonCount]string{"je", "tu", "il/elle/on", "nous", "vous", "ils/elles"}

// Label returns the subject pronoun for the person.
func (p Person) Label() string {
	if p < 0 || p >= PersonCount {
		return ""
	}
	return personLabels[p]
}

// LinguisticStem strips the infinitive's group ending, first match of
// re/ir/er. It is the coarse "part of the stem" signal used by the
// colorizer, independent of the shared-prefix computation.
func LinguisticStem(infinitive string) string {
	for _, end := range []string{"re", "ir", "er"} {
		if strings.HasSuffix(infinitive, end) {
			return infinitive[:len(infinitive)-len(end)]
		}
	}
	return infinitive
}
