package conjug

// Regular ending tables per tense. Present and passé simple depend on the
// verb group; imparfait and futur are group-independent.
var (
	presentEndings = map[Group][PersonCount]string{
		GroupER: {"e", "es", "e", "ons", "ez", "ent"},
		GroupIR: {"is", "is", "it", "issons", "issez", "issent"},
		GroupRE: {"s", "s", "", "ons", "ez", "ent"},
	}
	imparfaitEndings  = [PersonCount]string{"ais", "ais", "ait", "ions", "iez", "aient"}
	futurEndings      = [PersonCount]string{"ai", "as", "a", "ons", "ez", "ont"}
	passeSimpleERends = [PersonCount]string{"ai", "as", "a", "âmes", "âtes", "èrent"}
	passeSimpleIRends = [PersonCount]string{"is", "is", "it", "îmes", "îtes", "irent"}
)

// Ending returns the regular tense/person ending for the infinitive's
// group, or "" when the group has no paradigm for the tense.
func Ending(infinitive string, tense Tense, person Person) string {
	if person < 0 || person >= PersonCount {
		return ""
	}
	group := GroupOf(infinitive)
	switch tense {
	case Present:
		ends, ok := presentEndings[group]
		if !ok {
			return ""
		}
		return ends[person]
	case Imparfait:
		return imparfaitEndings[person]
	case Futur:
		return futurEndings[person]
	case PasseSimple:
		switch group {
		case GroupER:
			return passeSimpleERends[person]
		case GroupIR, GroupRE:
			return passeSimpleIRends[person]
		}
	}
	return ""
}
