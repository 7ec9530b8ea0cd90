package anki

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cbueth/conjugateur-fr/internal/verbdata"
)

func sixForms(forms ...string) []verbdata.FormIPA {
	out := make([]verbdata.FormIPA, len(forms))
	for i, f := range forms {
		out[i] = verbdata.FormIPA{Form: f}
	}
	return out
}

func exportRecords() []*verbdata.Record {
	parler := &verbdata.Record{
		Word: "parler",
		Tenses: verbdata.Tenses{
			Present: []verbdata.FormIPA{
				{Form: "je parle", IPA: "ʒə paʁl"}, {Form: "tu parles"}, {Form: "il/elle/on parle"},
				{Form: "nous parlons"}, {Form: "vous parlez"}, {Form: "ils/elles parlent"},
			},
			Futur: sixForms(
				"je parlerai", "tu parleras", "il/elle/on parlera",
				"nous parlerons", "vous parlerez", "ils/elles parleront"),
		},
	}
	etre := &verbdata.Record{
		Word:         "être",
		Irregularity: "🔴",
		Tenses: verbdata.Tenses{
			Present: sixForms(
				"je suis", "tu es", "il/elle/on est",
				"nous sommes", "vous êtes", "ils/elles sont"),
		},
	}
	return []*verbdata.Record{parler, etre}
}

func TestExportDeckRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conjugaison.apkg")

	count, err := ExportDeck(path, "Conjugaison test", exportRecords())
	require.NoError(t, err)
	assert.Equal(t, 18, count)

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()

	require.Len(t, pkg.Models, 1)
	var model *Model
	for _, m := range pkg.Models {
		model = m
	}
	assert.Equal(t, ModelName, model.Name)
	require.Len(t, model.Fields, len(ModelFields))
	for i, f := range model.Fields {
		assert.Equal(t, ModelFields[i], f.Name)
		assert.Equal(t, i, f.Ord)
	}

	deckNames := make(map[string]int64)
	for _, d := range pkg.Decks {
		deckNames[d.Name] = d.ID
	}
	require.Contains(t, deckNames, "Conjugaison test")
	assert.Contains(t, deckNames, "Default")

	require.Len(t, pkg.Notes, 18)
	require.Len(t, pkg.Cards, 18)

	first := pkg.Notes[0]
	assert.Equal(t, "parler", pkg.GetFieldValue(first, "Infinitive"))
	assert.Equal(t, "Présent", pkg.GetFieldValue(first, "Tense"))
	assert.Equal(t, "je", pkg.GetFieldValue(first, "Person"))
	assert.Equal(t, "je parle", pkg.GetFieldValue(first, "Form"))
	assert.Equal(t, "ʒə paʁl", pkg.GetFieldValue(first, "IPA"))
	assert.Equal(t, "🟢", pkg.GetFieldValue(first, "Marker"))
	assert.Equal(t, "parler", first.SortFld)
	assert.Equal(t, checksum("parler"), first.CSum)

	last := pkg.Notes[len(pkg.Notes)-1]
	assert.Equal(t, "être", pkg.GetFieldValue(last, "Infinitive"))
	assert.Equal(t, "ils/elles sont", pkg.GetFieldValue(last, "Form"))
	assert.Equal(t, "🔴", pkg.GetFieldValue(last, "Marker"))

	guids := make(map[string]bool)
	noteIDs := make(map[int64]bool)
	for _, n := range pkg.Notes {
		assert.NotEmpty(t, n.GUID)
		guids[n.GUID] = true
		noteIDs[n.ID] = true
	}
	assert.Len(t, guids, 18, "GUIDs must be unique")

	deckID := deckNames["Conjugaison test"]
	dues := make(map[int]bool)
	for _, c := range pkg.Cards {
		assert.True(t, noteIDs[c.NoteID], "card %d points at a missing note", c.ID)
		assert.Equal(t, deckID, c.DeckID)
		dues[c.Due] = true
	}
	assert.Len(t, dues, 18, "due positions must be distinct")
}

func TestExportDeckEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vide.apkg")

	count, err := ExportDeck(path, "Vide", nil)
	require.NoError(t, err)
	assert.Zero(t, count)

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()

	assert.Empty(t, pkg.Notes)
	assert.Empty(t, pkg.Cards)
	require.Len(t, pkg.Models, 1)
}

func TestExportDeckSkipsPartialBlanks(t *testing.T) {
	rec := &verbdata.Record{
		Word: "falloir",
		Tenses: verbdata.Tenses{
			Present: []verbdata.FormIPA{{}, {}, {Form: "il faut"}, {}, {}, {}},
		},
	}
	path := filepath.Join(t.TempDir(), "defectif.apkg")

	count, err := ExportDeck(path, "Défectifs", []*verbdata.Record{rec})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()

	require.Len(t, pkg.Notes, 1)
	assert.Equal(t, "il/elle/on", pkg.GetFieldValue(pkg.Notes[0], "Person"))
	assert.Equal(t, "il faut", pkg.GetFieldValue(pkg.Notes[0], "Form"))
}

func TestSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conjugaison.apkg")
	_, err := ExportDeck(path, "Conjugaison test", exportRecords())
	require.NoError(t, err)

	pkg, err := OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()

	out := pkg.Summary()
	assert.Contains(t, out, "conjugaison.apkg")
	assert.Contains(t, out, "Conjugaison test")
	assert.Contains(t, out, "Conjugaison FR (6 fields)")
	assert.Contains(t, out, "Notes: 18")
	assert.Contains(t, out, "Cards: 18")
}
