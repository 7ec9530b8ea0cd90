package colorize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbueth/conjugateur-fr/internal/conjug"
)

// classString compresses a classification to one letter per rune: S for
// stem, I for irregular, N for normal.
func classString(classes []CharClass) string {
	var b strings.Builder
	for _, c := range classes {
		switch c {
		case ClassStem:
			b.WriteByte('S')
		case ClassIrregular:
			b.WriteByte('I')
		default:
			b.WriteByte('N')
		}
	}
	return b.String()
}

func TestSharedPrefix(t *testing.T) {
	tests := []struct {
		name  string
		forms []string
		want  string
	}{
		{"parler present", []string{"parle", "parles", "parle", "parlons", "parlez", "parlent"}, "parl"},
		{"acheter alternation stops at accent", []string{"achète", "achètes", "achète", "achetons", "achetez", "achètent"}, "ach"},
		{"first form casing kept", []string{"Parle", "parlons"}, "Parl"},
		{"disagree at first rune", []string{"suis", "es"}, ""},
		{"empty member", []string{"parle", ""}, ""},
		{"no forms", nil, ""},
		{"single form", []string{"parle"}, "parle"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SharedPrefix(tt.forms))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		form   string
		prefix string
		stem   string
		mask   []bool
		want   string
	}{
		{"stem and prefix agree", "parle", "parl", "parl", nil, "SSSSN"},
		{"doubled consonant stays greedy", "appelle", "appel", "appel", nil, "SSSSSNN"},
		{"greedy scan marks first letters only", "pelle", "", "pel", nil, "SSSNN"},
		{"scan stops at missing letter", "vais", "", "êt", []bool{false, true, true, false}, "NIIN"},
		{"prefix stops at mismatch", "paie", "payo", "", nil, "SSNN"},
		{"case insensitive marking", "Achète", "achè", "", nil, "SSSSNN"},
		{"stem wins over mask", "parle", "", "parl", []bool{true, true, true, true, true}, "SSSSI"},
		{"short mask ignored past its end", "parle", "", "", []bool{true}, "INNNN"},
		{"empty form", "", "parl", "parl", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.form, tt.prefix, tt.stem, tt.mask)
			assert.Equal(t, tt.want, classString(got))
		})
	}
}

func TestAnalyzeTenseRegular(t *testing.T) {
	forms := []string{"je parle", "tu parles", "il/elle/on parle", "nous parlons", "vous parlez", "ils/elles parlent"}
	analyses, ok := AnalyzeTense("parler", conjug.Present, forms, conjug.Stems{})
	require.True(t, ok)
	require.Len(t, analyses, conjug.PersonCount)

	wantForms := []string{"parle", "parles", "parle", "parlons", "parlez", "parlent"}
	for i, a := range analyses {
		assert.Equal(t, wantForms[i], a.Form)
		assert.Zero(t, a.Cost, a.Form)
		for _, c := range a.Classes {
			assert.NotEqual(t, ClassIrregular, c, a.Form)
		}
	}
	assert.Equal(t, "SSSSN", classString(analyses[conjug.Je].Classes))
	assert.Equal(t, "SSSSNNN", classString(analyses[conjug.Nous].Classes))
}

// A paradigm built purely from the regular tables must never be marked
// irregular, whatever the tense.
func TestRegularParadigmsNeverIrregular(t *testing.T) {
	for _, tense := range conjug.Tenses {
		forms := make([]string, conjug.PersonCount)
		for p := 0; p < conjug.PersonCount; p++ {
			variants := conjug.RegularVariants("parler", tense, conjug.Person(p), conjug.Stems{})
			require.NotEmpty(t, variants, tense)
			forms[p] = variants[0]
		}
		analyses, ok := AnalyzeTense("parler", tense, forms, conjug.Stems{})
		require.True(t, ok, tense)
		for _, a := range analyses {
			assert.Zero(t, a.Cost, "%s %s", tense, a.Form)
			for _, c := range a.Classes {
				assert.NotEqual(t, ClassIrregular, c, "%s %s", tense, a.Form)
			}
		}
	}
}

func TestAnalyzeTenseIrregular(t *testing.T) {
	forms := []string{"je vais", "tu vas", "il/elle/on va", "nous allons", "vous allez", "ils/elles vont"}
	analyses, ok := AnalyzeTense("aller", conjug.Present, forms, conjug.Stems{})
	require.True(t, ok)

	// No shared prefix (vais vs allons), stem scan only finds the a of
	// "all", everything else deviates from the regular model.
	je := analyses[conjug.Je]
	assert.Equal(t, "vais", je.Form)
	assert.Equal(t, 4, je.Cost)
	assert.Equal(t, "ISII", classString(je.Classes))
}

func TestAnalyzeTensePartialCell(t *testing.T) {
	full := []string{"j’irai", "tu iras", "il/elle/on ira", "nous irons", "vous irez", "ils/elles iront"}
	analyses, ok := AnalyzeTense("aller", conjug.Futur, full, conjug.Stems{})
	require.True(t, ok)
	assert.Equal(t, "SSSN", classString(analyses[conjug.Je].Classes))

	// A cell missing a person loses the shared prefix, so "ir" is no
	// longer stem-marked, but each form keeps its deviation analysis.
	partial, ok := AnalyzeTense("aller", conjug.Futur, full[:5], conjug.Stems{})
	require.True(t, ok)
	require.Len(t, partial, 5)
	assert.Equal(t, "INSN", classString(partial[conjug.Je].Classes))
	assert.Equal(t, analyses[conjug.Je].Cost, partial[conjug.Je].Cost)

	empty, ok := AnalyzeTense("aller", conjug.Futur, nil, conjug.Stems{})
	assert.False(t, ok)
	assert.Nil(t, empty)
}
