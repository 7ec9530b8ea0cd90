package builder

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbueth/conjugateur-fr/internal/conjug"
	"github.com/cbueth/conjugateur-fr/internal/verbdata"
	"github.com/cbueth/conjugateur-fr/internal/wiktextract"
)

func testEntry(word, ipa string, pr, imp, ps, fut []string) *wiktextract.Entry {
	e := &wiktextract.Entry{Word: word, Pos: "verb", LangCode: "fr"}
	e.Forms = append(e.Forms, wiktextract.Form{
		Form: word,
		Tags: []string{"infinitive"},
		IPAs: []string{`\` + ipa + `\`},
	})
	add := func(forms []string, tags ...string) {
		for _, f := range forms {
			e.Forms = append(e.Forms, wiktextract.Form{Form: f, Tags: tags})
		}
	}
	add(pr, "indicative", "present")
	add(imp, "indicative", "imperfect")
	add(ps, "indicative", "past")
	add(fut, "indicative", "future")
	return e
}

func parlerTestEntry() *wiktextract.Entry {
	e := testEntry("parler", "paʁ.le",
		[]string{"je parle", "tu parles", "il/elle/on parle", "nous parlons", "vous parlez", "ils/elles parlent"},
		[]string{"parlais", "parlais", "parlait", "parlions", "parliez", "parlaient"},
		[]string{"parlai", "parlas", "parla", "parlâmes", "parlâtes", "parlèrent"},
		[]string{"parlerai", "parleras", "parlera", "parlerons", "parlerez", "parleront"})
	e.Forms = append(e.Forms,
		wiktextract.Form{Form: "parlant", Tags: []string{"participle", "present"}, IPAs: []string{"[paʁ.lɑ̃]"}},
		wiktextract.Form{Form: "parlé", Tags: []string{"participle", "past"}})
	e.Sounds = []wiktextract.Sound{{MP3URL: "https://upload.example.org/parler.mp3"}}
	return e
}

func TestRecord(t *testing.T) {
	rec, ok := Record(parlerTestEntry())
	require.True(t, ok)

	assert.Equal(t, "parler", rec.Word)
	assert.Equal(t, "paʁ.le", rec.IPA)
	assert.Equal(t, "https://upload.example.org/parler.mp3", rec.Audio)
	assert.Empty(t, rec.Irregularity)
	assert.False(t, rec.HasAlternates)
	assert.Equal(t, "parlant", rec.Participles.Present.Form)
	assert.Equal(t, "paʁ.lɑ̃", rec.Participles.Present.IPA)
	assert.Equal(t, "parlé", rec.Participles.Past.Form)
	assert.Equal(t,
		[]string{"parle", "parles", "parle", "parlons", "parlez", "parlent"},
		verbdata.Texts(rec.Tenses.Present))
	assert.Len(t, rec.TenseForms(conjug.Futur), conjug.PersonCount)
}

func TestRecordAlternates(t *testing.T) {
	e := testEntry("payer", "pe.je",
		[]string{"je paye ou je paie", "payes", "paye", "payons", "payez", "payent"},
		[]string{"payais", "payais", "payait", "payions", "payiez", "payaient"},
		[]string{"payai", "payas", "paya", "payâmes", "payâtes", "payèrent"},
		[]string{"payerai", "payeras", "payera", "payerons", "payerez", "payeront"})

	rec, ok := Record(e)
	require.True(t, ok)
	assert.True(t, rec.HasAlternates)
	assert.Equal(t, "paye", rec.Tenses.Present[0].Form)
}

func TestRecordRejectsNonLemma(t *testing.T) {
	e := parlerTestEntry()
	e.Pos = "noun"
	_, ok := Record(e)
	assert.False(t, ok)
}

func words(names ...string) []verbdata.Record {
	recs := make([]verbdata.Record, len(names))
	for i, name := range names {
		recs[i] = verbdata.Record{Word: name}
	}
	return recs
}

func wordsOf(recs []verbdata.Record) []string {
	out := make([]string, len(recs))
	for i, rec := range recs {
		out[i] = rec.Word
	}
	return out
}

func TestSplitTiers(t *testing.T) {
	tests := []struct {
		name   string
		in     []string
		most   []string
		common []string
		rest   []string
	}{
		{
			name: "avoir already on top",
			in:   []string{"avoir", "b", "c"},
			most: []string{"avoir", "b"}, common: []string{"c"},
		},
		{
			name: "avoir pulled from common",
			in:   []string{"a", "b", "Avoir", "d", "e"},
			most: []string{"a", "b", "Avoir"}, common: []string{"d"}, rest: []string{"e"},
		},
		{
			name: "avoir pulled from rest",
			in:   []string{"a", "b", "c", "d", "avoir"},
			most: []string{"a", "b", "avoir"}, common: []string{"c", "d"},
		},
		{
			name: "no avoir",
			in:   []string{"a", "b", "c", "d"},
			most: []string{"a", "b"}, common: []string{"c", "d"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			most, common, rest := splitTiers(words(tt.in...), 2, 4)
			assert.Equal(t, tt.most, wordsOf(most))
			assert.Equal(t, tt.common, wordsOf(common))
			if len(tt.rest) == 0 {
				assert.Empty(t, rest)
			} else {
				assert.Equal(t, tt.rest, wordsOf(rest))
			}
		})
	}
}

func TestGroupByLetter(t *testing.T) {
	groups := groupByLetter(words("manger", "mentir", "être", "Étudier"))

	require.Len(t, groups, 3)
	assert.Equal(t, []string{"manger", "mentir"}, wordsOf(groups["m"]))
	assert.Equal(t, []string{"être"}, wordsOf(groups["ê"]))
	assert.Equal(t, []string{"Étudier"}, wordsOf(groups["é"]))
}

func TestWriteLetterChunks(t *testing.T) {
	dir := t.TempDir()
	groups := map[string][]verbdata.Record{
		"m": words("manger", "mentir"),
		"a": words("aimer"),
	}

	files, letters, total, err := writeLetterChunks(context.Background(), dir, groups)
	require.NoError(t, err)

	assert.Equal(t, []string{"letter_chunks/a.json.gz", "letter_chunks/m.json.gz"}, files)
	assert.Equal(t, []string{"a", "m"}, letters)
	assert.Positive(t, total)

	chunk, err := verbdata.ReadChunk(filepath.Join(dir, "m.json.gz"))
	require.NoError(t, err)
	assert.Equal(t, []string{"manger", "mentir"}, wordsOf(chunk.Verbs))
}

func TestWriteLetterChunksEmpty(t *testing.T) {
	files, letters, total, err := writeLetterChunks(context.Background(), t.TempDir(), nil)
	require.NoError(t, err)
	assert.Empty(t, files)
	assert.Empty(t, letters)
	assert.Zero(t, total)
}

func writeFixtures(t *testing.T) (extractPath, lexiquePath string) {
	t.Helper()
	dir := t.TempDir()

	entries := []*wiktextract.Entry{
		parlerTestEntry(),
		testEntry("manger", "mɑ̃.ʒe",
			[]string{"mange", "manges", "mange", "mangeons", "mangez", "mangent"},
			[]string{"mangeais", "mangeais", "mangeait", "mangions", "mangiez", "mangeaient"},
			[]string{"mangeai", "mangeas", "mangea", "mangeâmes", "mangeâtes", "mangèrent"},
			[]string{"mangerai", "mangeras", "mangera", "mangerons", "mangerez", "mangeront"}),
		testEntry("finir", "fi.niʁ",
			[]string{"finis", "finis", "finit", "finissons", "finissez", "finissent"},
			[]string{"finissais", "finissais", "finissait", "finissions", "finissiez", "finissaient"},
			[]string{"finis", "finis", "finit", "finîmes", "finîtes", "finirent"},
			[]string{"finirai", "finiras", "finira", "finirons", "finirez", "finiront"}),
		testEntry("avoir", "a.vwaʁ",
			[]string{"ai", "as", "a", "avons", "avez", "ont"},
			[]string{"avais", "avais", "avait", "avions", "aviez", "avaient"},
			[]string{"eus", "eus", "eut", "eûmes", "eûtes", "eurent"},
			[]string{"aurai", "auras", "aura", "aurons", "aurez", "auront"}),
		testEntry("bouger", "bu.ʒe",
			[]string{"bouge", "bouges", "bouge", "bougeons", "bougez", "bougent"},
			[]string{"bougeais", "bougeais", "bougeait", "bougions", "bougiez", "bougeaient"},
			[]string{"bougeai", "bougeas", "bougea", "bougeâmes", "bougeâtes", "bougèrent"},
			[]string{"bougerai", "bougeras", "bougera", "bougerons", "bougerez", "bougeront"}),
		testEntry("aimer", "e.me",
			[]string{"aime", "aimes", "aime", "aimons", "aimez", "aiment"},
			[]string{"aimais", "aimais", "aimait", "aimions", "aimiez", "aimaient"},
			[]string{"aimai", "aimas", "aima", "aimâmes", "aimâtes", "aimèrent"},
			[]string{"aimerai", "aimeras", "aimera", "aimerons", "aimerez", "aimeront"}),
	}
	var lines []string
	for _, e := range entries {
		raw, err := json.Marshal(e)
		require.NoError(t, err)
		lines = append(lines, string(raw))
	}
	lines = append(lines,
		`{"word":"maison","pos":"noun","lang_code":"fr"}`,
		`{not json`)

	extractPath = filepath.Join(dir, "fr-extract.jsonl")
	require.NoError(t, os.WriteFile(extractPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	lexique := strings.Join([]string{
		"ortho\tcgram\tfreqlemfilms2\tfreqlemlivres",
		"avoir\tVER\t999\t999",
		"parler\tVER\t100\t10",
		"manger\tVER\t50\t5",
		"finir\tVER\t20\t1",
	}, "\n") + "\n"
	lexiquePath = filepath.Join(dir, "lexique.tsv")
	require.NoError(t, os.WriteFile(lexiquePath, []byte(lexique), 0o644))
	return extractPath, lexiquePath
}

func TestBuild(t *testing.T) {
	extractPath, lexiquePath := writeFixtures(t)
	outDir := filepath.Join(t.TempDir(), "data")

	manifest, err := Build(context.Background(), Options{
		ExtractPath: extractPath,
		LexiquePath: lexiquePath,
		OutDir:      outDir,
		RepoURL:     "https://github.com/cbueth/conjugateur-fr",
	})
	require.NoError(t, err)

	assert.Equal(t, verbdata.ManifestVersion, manifest.Version)
	assert.Equal(t, verbdata.StrategyTiered, manifest.Strategy)
	assert.Equal(t, 6, manifest.TotalVerbs)
	assert.Equal(t, 6, manifest.MostCommonVerbs.Count)
	assert.Zero(t, manifest.CommonVerbs.Count)
	assert.Empty(t, manifest.LetterChunks.Files)
	assert.Equal(t, "https://github.com/cbueth/conjugateur-fr/issues", manifest.Meta.IssuesURL)
	assert.NotEmpty(t, manifest.Meta.WiktionaryExtractDate)
	_, err = time.Parse(time.RFC3339, manifest.GeneratedAt)
	assert.NoError(t, err)

	// Frequency order, stable for the two verbs the table misses.
	chunk, err := verbdata.ReadChunk(filepath.Join(outDir, verbdata.MostCommonFile))
	require.NoError(t, err)
	assert.Equal(t, []string{"avoir", "parler", "manger", "finir", "bouger", "aimer"}, wordsOf(chunk.Verbs))

	store, err := verbdata.Open(outDir)
	require.NoError(t, err)
	assert.Equal(t, 6, store.Len())

	parler, ok := store.Lookup("parler")
	require.True(t, ok)
	assert.Empty(t, parler.Irregularity)

	avoir, ok := store.Lookup("avoir")
	require.True(t, ok)
	assert.NotEmpty(t, avoir.Irregularity)
}

func TestBuildCancelled(t *testing.T) {
	extractPath, lexiquePath := writeFixtures(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, Options{
		ExtractPath: extractPath,
		LexiquePath: lexiquePath,
		OutDir:      t.TempDir(),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
