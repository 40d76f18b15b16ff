package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gacabartosz/mcp-universal-adapter/internal/fileutil"
)

func TestWriteFilesRoundTrip(t *testing.T) {
	result, err := Generate(WithSpec(petSpec()), WithTarget(TargetPython))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, result.WriteFiles(dir))

	for _, f := range result.Files {
		data, err := os.ReadFile(filepath.Join(dir, f.Name))
		require.NoError(t, err, "artifact %s", f.Name)
		assert.Equal(t, f.Content, data)
	}
}

func TestWriteFilesCreatesDirectory(t *testing.T) {
	result, err := Generate(WithSpec(minimalSpec()), WithTarget(TargetGo))
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "nested", "out")
	require.NoError(t, result.WriteFiles(dir))

	_, err = os.Stat(filepath.Join(dir, "main.go"))
	assert.NoError(t, err)
}

func TestWriteFilesModes(t *testing.T) {
	result, err := Generate(WithSpec(petSpec()), WithTarget(TargetPython))
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, result.WriteFiles(dir))

	info, err := os.Stat(filepath.Join(dir, ".env.example"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileutil.OwnerReadWrite), info.Mode().Perm())

	info, err = os.Stat(filepath.Join(dir, "server.py"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileutil.ReadableByAll), info.Mode().Perm())
}

func TestWriteFileRejectsPathSeparators(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"../escape.py", "sub/dir.py", ".", ".."} {
		f := &File{Name: name, Content: []byte("x")}
		err := f.WriteFile(dir)
		require.Error(t, err, "name %q must be rejected", name)
		assert.Contains(t, err.Error(), "invalid file name")
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteFileDefaultMode(t *testing.T) {
	dir := t.TempDir()
	f := &File{Name: "plain.txt", Content: []byte("data")}
	require.NoError(t, f.WriteFile(dir))

	info, err := os.Stat(filepath.Join(dir, "plain.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(fileutil.ReadableByAll), info.Mode().Perm())
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()

	first := &File{Name: "server.py", Content: []byte("old")}
	require.NoError(t, first.WriteFile(dir))
	second := &File{Name: "server.py", Content: []byte("new")}
	require.NoError(t, second.WriteFile(dir))

	data, err := os.ReadFile(filepath.Join(dir, "server.py"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	// The atomic rename leaves no temp files behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "server.py", entries[0].Name())
}
