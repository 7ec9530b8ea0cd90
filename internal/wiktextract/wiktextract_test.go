package wiktextract

import (
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbueth/conjugateur-fr/internal/conjug"
)

func taggedForms(tags []string, texts ...string) []Form {
	forms := make([]Form, 0, len(texts))
	for _, t := range texts {
		forms = append(forms, Form{Form: t, Tags: tags})
	}
	return forms
}

func parlerEntry() *Entry {
	forms := []Form{{Form: "parler", Tags: []string{"infinitive"}, IPAs: []string{`\paʁ.le\`}}}
	// Passé antérieur rows share the "past" tag and must be excluded.
	forms = append(forms, taggedForms([]string{"indicative", "past", "multiword-construction"},
		"j’eus parlé", "tu eus parlé", "il eut parlé", "nous eûmes parlé", "vous eûtes parlé", "ils eurent parlé")...)
	forms = append(forms, taggedForms([]string{"indicative", "present"},
		"je parle", "tu parles", "il/elle/on parle", "nous parlons", "vous parlez", "ils/elles parlent")...)
	forms = append(forms, taggedForms([]string{"indicative", "imperfect"},
		"je parlais", "tu parlais", "il parlait", "nous parlions", "vous parliez", "ils parlaient")...)
	forms = append(forms, taggedForms([]string{"indicative", "past"},
		"je parlai", "tu parlas", "il parla", "nous parlâmes", "vous parlâtes", "ils parlèrent")...)
	forms = append(forms, taggedForms([]string{"indicative", "future"},
		"je parlerai", "tu parleras", "il parlera", "nous parlerons", "vous parlerez", "ils parleront")...)
	forms = append(forms,
		Form{Form: "parlant", Tags: []string{"participle", "present"}, IPAs: []string{"[paʁ.lɑ̃]"}},
		Form{Form: "parlé", Tags: []string{"participle", "past"}},
	)
	return &Entry{
		Word:     "parler",
		Pos:      "verb",
		LangCode: "fr",
		Forms:    forms,
		Sounds:   []Sound{{IPA: `\paʁ.le\`, MP3URL: "https://upload.example.org/parler.mp3"}},
	}
}

func TestTenseForms(t *testing.T) {
	e := parlerEntry()

	present := TenseForms(e.Forms, conjug.Present)
	require.Len(t, present, 6)
	assert.Equal(t, "je parle", present[0].Text)
	assert.Equal(t, "ils/elles parlent", present[5].Text)

	ps := TenseForms(e.Forms, conjug.PasseSimple)
	require.Len(t, ps, 6)
	assert.Equal(t, "je parlai", ps[0].Text, "passé antérieur rows must be excluded")

	assert.Nil(t, TenseForms(e.Forms, conjug.Tense("conditionnel")))
}

func TestExtractTense(t *testing.T) {
	t.Run("caps at six", func(t *testing.T) {
		forms := taggedForms([]string{"indicative", "present"},
			"a", "b", "c", "d", "e", "f", "g", "h")
		assert.Len(t, ExtractTense(forms, []string{"indicative", "present"}, nil), 6)
	})
	t.Run("skips placeholders", func(t *testing.T) {
		forms := taggedForms([]string{"indicative", "present"}, "-", "", "je parle")
		got := ExtractTense(forms, []string{"indicative", "present"}, nil)
		require.Len(t, got, 1)
		assert.Equal(t, "je parle", got[0].Text)
	})
	t.Run("requires all include tags", func(t *testing.T) {
		forms := []Form{{Form: "parlant", Tags: []string{"present"}}}
		assert.Empty(t, ExtractTense(forms, []string{"indicative", "present"}, nil))
	})
}

func TestCleanTense(t *testing.T) {
	e := parlerEntry()
	out, alt := CleanTense(e.Forms, conjug.Present)
	require.Len(t, out, 6)
	assert.False(t, alt)
	want := []string{"parle", "parles", "parle", "parlons", "parlez", "parlent"}
	for i, p := range out {
		assert.Equal(t, want[i], p.Text)
	}

	forms := taggedForms([]string{"indicative", "present"},
		"je paye ou je paie", "tu payes", "il paye", "nous payons", "vous payez", "ils payent")
	out, alt = CleanTense(forms, conjug.Present)
	assert.True(t, alt)
	assert.Equal(t, "paye", out[0].Text)
}

func TestParticiple(t *testing.T) {
	e := parlerEntry()

	text, ipa := Participle(e.Forms, []string{"participle", "present"})
	assert.Equal(t, "parlant", text)
	assert.Equal(t, "paʁ.lɑ̃", ipa)

	text, ipa = Participle(e.Forms, []string{"participle", "past"})
	assert.Equal(t, "parlé", text)
	assert.Equal(t, "", ipa)

	text, _ = Participle(nil, []string{"participle", "past"})
	assert.Equal(t, "", text)

	alternates := []Form{{Form: "assis ou assise", Tags: []string{"participle", "past"}}}
	text, _ = Participle(alternates, []string{"participle", "past"})
	assert.Equal(t, "assis", text)
}

func TestLemmaIPAAudio(t *testing.T) {
	e := parlerEntry()
	ipa, audio := LemmaIPAAudio(e.Word, e.Forms, e.Sounds)
	assert.Equal(t, "paʁ.le", ipa)
	assert.Equal(t, "https://upload.example.org/parler.mp3", audio)

	sounds := []Sound{{IPA: "[fi.niʁ]"}}
	ipa, audio = LemmaIPAAudio("finir", nil, sounds)
	assert.Equal(t, "fi.niʁ", ipa)
	assert.Equal(t, "", audio)

	ipa, audio = LemmaIPAAudio("finir", nil, nil)
	assert.Equal(t, "", ipa)
	assert.Equal(t, "", audio)
}

func TestPickAudioURL(t *testing.T) {
	t.Run("format preference within a sound", func(t *testing.T) {
		sounds := []Sound{{OpusURL: "x.opus", MP3URL: "x.mp3"}}
		assert.Equal(t, "x.mp3", PickAudioURL(sounds))
	})
	t.Run("first sound with any url wins", func(t *testing.T) {
		sounds := []Sound{{OggURL: "x.ogg"}, {MP3URL: "y.mp3"}}
		assert.Equal(t, "x.ogg", PickAudioURL(sounds))
	})
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", PickAudioURL(nil))
	})
}

func TestIsLemmaCandidate(t *testing.T) {
	t.Run("complete lemma", func(t *testing.T) {
		assert.True(t, IsLemmaCandidate(parlerEntry()))
	})
	t.Run("wrong language", func(t *testing.T) {
		e := parlerEntry()
		e.LangCode = "en"
		assert.False(t, IsLemmaCandidate(e))
	})
	t.Run("not a verb", func(t *testing.T) {
		e := parlerEntry()
		e.Pos = "noun"
		assert.False(t, IsLemmaCandidate(e))
	})
	t.Run("pronominal rejected", func(t *testing.T) {
		e := parlerEntry()
		e.Tags = []string{"pronominal"}
		assert.False(t, IsLemmaCandidate(e))
	})
	t.Run("pronominal raw tag rejected", func(t *testing.T) {
		e := parlerEntry()
		e.RawTags = []string{"pronominal"}
		assert.False(t, IsLemmaCandidate(e))
	})
	t.Run("reflexive-capable exception kept", func(t *testing.T) {
		e := parlerEntry()
		e.Word = "aller"
		e.Tags = []string{"pronominal"}
		assert.True(t, IsLemmaCandidate(e))
	})
	t.Run("se headword rejected", func(t *testing.T) {
		for _, w := range []string{"se lever", "s'abstenir", "s’enfuir"} {
			e := parlerEntry()
			e.Word = w
			assert.False(t, IsLemmaCandidate(e), w)
		}
	})
	t.Run("missing tense rejected", func(t *testing.T) {
		e := parlerEntry()
		var kept []Form
		for _, f := range e.Forms {
			if hasAll(f.Tags, []string{"indicative", "imperfect"}) {
				continue
			}
			kept = append(kept, f)
		}
		e.Forms = kept
		assert.False(t, IsLemmaCandidate(e))
	})
	t.Run("no infinitive and no verb suffix rejected", func(t *testing.T) {
		e := parlerEntry()
		e.Word = "va"
		assert.False(t, IsLemmaCandidate(e))
	})
}

func TestStream(t *testing.T) {
	lines := `{"word":"parler","pos":"verb","lang_code":"fr"}
{malformed
{"word":"finir","pos":"verb","lang_code":"fr"}
`

	collect := func(path string) ([]string, error) {
		var words []string
		err := Stream(path, func(e *Entry) error {
			words = append(words, e.Word)
			return nil
		})
		return words, err
	}

	t.Run("plain jsonl skips malformed lines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extract.jsonl")
		require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))
		words, err := collect(path)
		require.NoError(t, err)
		if diff := cmp.Diff([]string{"parler", "finir"}, words); diff != "" {
			t.Errorf("words mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("gzip input", func(t *testing.T) {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		_, err := gz.Write([]byte(lines))
		require.NoError(t, err)
		require.NoError(t, gz.Close())

		path := filepath.Join(t.TempDir(), "extract.jsonl.gz")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
		words, err := collect(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"parler", "finir"}, words)
	})

	t.Run("callback error stops the stream", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "extract.jsonl")
		require.NoError(t, os.WriteFile(path, []byte(lines), 0o644))

		stop := errors.New("stop")
		seen := 0
		err := Stream(path, func(*Entry) error {
			seen++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, seen)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := collect(filepath.Join(t.TempDir(), "absent.jsonl"))
		assert.Error(t, err)
	})
}
