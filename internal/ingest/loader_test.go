package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-ledger/internal/common"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docs.json")
	writeFile(t, path, `[{"_id": "a"}, 42, {"_id": "b"}]`)

	l, err := NewLoader(nil)
	require.NoError(t, err)
	docs, stats, err := l.Load(path)
	require.NoError(t, err)

	require.Len(t, docs, 3)
	assert.JSONEq(t, `{"_id": "a"}`, string(docs[0]))
	assert.Equal(t, "42", string(docs[1]))
	assert.Equal(t, 3, stats.Documents)
}

func TestLoad_DirectoryInLexicalOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.json"), `[{"_id": "b1"}]`)
	writeFile(t, filepath.Join(dir, "a.json"), `[{"_id": "a1"}, {"_id": "a2"}]`)
	writeFile(t, filepath.Join(dir, "sub", "c.JSON"), `[{"_id": "c1"}]`)
	writeFile(t, filepath.Join(dir, "notes.txt"), `not json`)
	writeFile(t, filepath.Join(dir, ".hidden.json"), `{"not": "an array"}`)
	writeFile(t, filepath.Join(dir, ".cache", "x.json"), `[{"_id": "hidden"}]`)

	l, err := NewLoader(nil)
	require.NoError(t, err)
	docs, stats, err := l.Load(dir)
	require.NoError(t, err)

	var ids []string
	for _, d := range docs {
		ids = append(ids, string(d))
	}
	assert.Equal(t, []string{`{"_id": "a1"}`, `{"_id": "a2"}`, `{"_id": "b1"}`, `{"_id": "c1"}`}, ids)
	assert.Equal(t, 3, stats.Matched)
	assert.Equal(t, 4, stats.Documents)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	notArray := filepath.Join(dir, "object.json")
	writeFile(t, notArray, `{"_id": "a"}`)
	broken := filepath.Join(dir, "broken.json")
	writeFile(t, broken, `[{"_id": `)

	tests := []struct {
		name string
		path string
	}{
		{"empty path", ""},
		{"missing", filepath.Join(dir, "missing.json")},
		{"not an array", notArray},
		{"malformed", broken},
		{"directory with invalid file", dir},
	}
	l, err := NewLoader(nil)
	require.NoError(t, err)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := l.Load(tt.path)
			require.Error(t, err)
			assert.True(t, common.HasCode(err, common.CodeInput), "got %v", err)
		})
	}
}

func TestAllowedExtAndHidden(t *testing.T) {
	assert.True(t, AllowedExt(".json"))
	assert.True(t, AllowedExt("JSON"))
	assert.False(t, AllowedExt(".pdf"))
	assert.True(t, IsHidden("/tmp/.git"))
	assert.False(t, IsHidden("/tmp/docs.json"))
}

func TestLoad_ElementShapeIsNotValidated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.json")
	writeFile(t, path, `[null, "text", 1.5, [], {"extractedData": "pending"}, {"extractedData": {"llmData": {}}}]`)

	l, err := NewLoader(nil)
	require.NoError(t, err)
	docs, _, err := l.Load(path)
	require.NoError(t, err)
	assert.Len(t, docs, 6)
}
