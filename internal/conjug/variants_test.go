package conjug

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestRegularVariantsPresent(t *testing.T) {
	tests := []struct {
		name       string
		infinitive string
		person     Person
		want       []string
	}{
		{"plain er je", "parler", Je, []string{"parle"}},
		{"plain er nous", "parler", Nous, []string{"parlons"}},
		{"ir nous", "finir", Nous, []string{"finissons"}},
		{"re il drops ending", "vendre", Il, []string{"vend"}},
		{"ger before o", "manger", Nous, []string{"mangons", "mangeons"}},
		{"cer before o", "commencer", Nous, []string{"commencons", "çommençons"}},
		{"eler accent and doubling", "appeler", Je, []string{"appele", "appèle", "appelle", "appèlle"}},
		{"eter accent and doubling", "acheter", Je, []string{"achete", "achète", "achette", "achètte"}},
		{"ayer keeps both spellings", "payer", Je, []string{"paye", "paie"}},
		{"oyer mandatory i", "employer", Je, []string{"employe", "emploie"}},
		{"uyer mandatory i", "essuyer", Tu, []string{"essuyes", "essuies"}},
		{"e-consonant-er lowering", "lever", Je, []string{"leve", "lève"}},
		{"acute lowering", "céder", Je, []string{"céde", "cède"}},
		{"silent rules off for nous", "appeler", Nous, []string{"appelons"}},
		{"silent rules off for vous", "payer", Vous, []string{"payez"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegularVariants(tt.infinitive, Present, tt.person, Stems{})
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RegularVariants mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegularVariantsOtherTenses(t *testing.T) {
	tests := []struct {
		name       string
		infinitive string
		tense      Tense
		person     Person
		stems      Stems
		want       []string
	}{
		{"futur er", "parler", Futur, Je, Stems{}, []string{"parlerai"}},
		{"futur re drops e", "vendre", Futur, Il, Stems{}, []string{"vendra"}},
		{"passe simple er", "parler", PasseSimple, Nous, Stems{}, []string{"parlâmes"}},
		{"passe simple ger", "manger", PasseSimple, Je, Stems{}, []string{"mangai", "mangeai"}},
		{"passe simple ir", "finir", PasseSimple, Ils, Stems{}, []string{"finirent"}},
		{"imparfait naive stem", "manger", Imparfait, Je, Stems{}, []string{"mangais", "mangeais"}},
		{"imparfait attested stem", "manger", Imparfait, Je, Stems{Imparfait: "mange"}, []string{"mangeais"}},
		{"imparfait ir doubles iss", "finir", Imparfait, Nous, Stems{}, []string{"finissions"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RegularVariants(tt.infinitive, tt.tense, tt.person, tt.stems)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("RegularVariants mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRegularVariantsOtherGroup(t *testing.T) {
	// No paradigm for present/passé simple, but imparfait and futur still
	// build on the infinitive itself.
	assert.Empty(t, RegularVariants("xyz", Present, Je, Stems{}))
	assert.Empty(t, RegularVariants("xyz", PasseSimple, Je, Stems{}))
	assert.Equal(t, []string{"xyzais"}, RegularVariants("xyz", Imparfait, Je, Stems{}))
	assert.Equal(t, []string{"xyzai"}, RegularVariants("xyz", Futur, Je, Stems{}))
}

func TestRegularVariantsStable(t *testing.T) {
	first := RegularVariants("appeler", Present, Je, Stems{})
	second := RegularVariants("appeler", Present, Je, Stems{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("successive calls disagree (-first +second):\n%s", diff)
	}
}

func TestRegularVariantsNonEmpty(t *testing.T) {
	// Every emitted variant is non-empty and the base form comes first.
	for _, tense := range Tenses {
		for p := Je; p <= Ils; p++ {
			got := RegularVariants("nettoyer", tense, p, Stems{})
			for _, v := range got {
				assert.NotEmpty(t, v)
			}
			if len(got) > 0 && tense == Present {
				assert.Equal(t, "nettoy"+presentEndings[GroupER][p], got[0])
			}
		}
	}
}
