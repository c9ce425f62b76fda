package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/complianceworks/fda483/constants"
	"github.com/complianceworks/fda483/internal/classify"
)

func TestStoreWriteAndList(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "results"), nil)

	path, err := store.Write("FDA_189344.pdf", classify.Result{OverallClassification: constants.NAI})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "FDA_189344_result.json"))
	assert.True(t, store.Exists("FDA_189344.pdf"))
	assert.False(t, store.Exists("FDA_77001.pdf"))

	_, err = store.Write("FDA_100.pdf", classify.Result{OverallClassification: constants.VAI})
	require.NoError(t, err)

	files, err := store.List()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "FDA_100_result.json", filepath.Base(files[0]))
	assert.Equal(t, "FDA_189344_result.json", filepath.Base(files[1]))
}

func TestStoreWriteOverwrites(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	first, err := store.Write("FDA_189344.pdf", classify.Result{OverallClassification: constants.OAI})
	require.NoError(t, err)
	second, err := store.Write("FDA_189344.pdf", classify.Result{OverallClassification: constants.NAI})
	require.NoError(t, err)
	assert.Equal(t, first, second)

	data, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"NAI"`)
	assert.NotContains(t, string(data), `"OAI"`)
}

func TestStoreWritesIndentedJSON(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	path, err := store.WriteJSON("FDA_55_result.json", map[string]any{"overall_classification": "NAI"})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "{\n  \"overall_classification\"")
}

func TestStoreReadRecordPreservesUnknownFields(t *testing.T) {
	store := NewStore(t.TempDir(), nil)

	original := map[string]any{
		"overall_classification": "VAI",
		"reviewer_notes":         "manually audited",
		"metadata":               map[string]any{"firm": "Acme Pharma Inc"},
	}
	path, err := store.WriteJSON("FDA_60_result.json", original)
	require.NoError(t, err)

	doc, err := store.ReadRecord(path)
	require.NoError(t, err)
	assert.Equal(t, "manually audited", doc["reviewer_notes"])
}

func TestStoreReadRecordMalformed(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, nil)
	path := filepath.Join(dir, "FDA_61_result.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := store.ReadRecord(path)
	assert.Error(t, err)
}

func TestStoreListEmptyDir(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"), nil)

	files, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, files)
}
