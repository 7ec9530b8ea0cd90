package audiofrench

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "parler", "parler"},
		{"accents stripped", "être", "etre"},
		{"cedilla", "çà et là", "ca et la"},
		{"oe ligature", "cœur", "coeur"},
		{"capital ligature", "Œuvre", "Oeuvre"},
		{"curly apostrophe", "j’ai", "j'ai"},
		{"nbsp", "il mange", "il mange"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "etre", Slug(" Être "))
	assert.Equal(t, "payer", Slug("payer"))
	assert.Equal(t, "oeuvrer", Slug("œuvrer"))
}

func TestFormFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"merged singular pronoun", "il/elle/on parle", "il_parle"},
		{"merged plural pronoun", "ils/elles  parlèrent", "ils_parlerent"},
		{"accented form", "nous mangeâmes", "nous_mangeames"},
		{"elided pronoun", "j’achète", "j'achete"},
		{"extra whitespace", "  vous \t parlez ", "vous_parlez"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormFilename(tt.in))
		})
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t,
		"http://www.audiofrench.com/verbs/sounds/payer/je_paye.mp3",
		URL("payer", "je paye"))
	assert.Equal(t,
		"http://www.audiofrench.com/verbs/sounds/etre/vous_etes.mp3",
		URL("être", "vous êtes"))
	assert.Equal(t,
		"http://www.audiofrench.com/verbs/sounds/acheter/j'achete.mp3",
		URL("acheter", "j’achète"))
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "j'ai%20(eu)!", escape("j'ai (eu)!", "'!()"))
	assert.Equal(t, "a%2Fb%20c", escape("a/b c", ""))
	assert.Equal(t, "%C3%A9t%C3%A9", escape("été", ""))
	assert.Equal(t, "il_parle-2.mp3~", escape("il_parle-2.mp3~", ""))
}
