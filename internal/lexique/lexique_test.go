package lexique

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lexique.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	table := "ortho\tphon\tcgram\tfreqlemfilms2\tfreqlemlivres\n" +
		"être\tEtR\tVER\t14000.5\t10000.25\n" +
		"manger\tmA\tVER\t100\t50\n" +
		"manger\tmA\tVER\t10\t5\n" +
		"Parler\tpaRle\tVER\t80\t\n" +
		"chien\tSjE\tNOM\t500\t400\n" +
		"court\tkuR\tVER\n"

	freqs, err := Load(writeTable(t, table))
	require.NoError(t, err)

	want := map[string]float64{
		"être":   24000.75,
		"manger": 150,
		"parler": 80,
		"court":  0,
	}
	if diff := cmp.Diff(want, freqs); diff != "" {
		t.Errorf("frequencies mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	_, err := Load(writeTable(t, "ortho\tphon\nparler\tpaRle\n"))
	assert.ErrorContains(t, err, "cgram")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.tsv"))
	assert.Error(t, err)
}
