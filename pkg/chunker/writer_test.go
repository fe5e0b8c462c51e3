package chunker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterWritesAndOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir, nil)
	require.NoError(t, w.EnsureDir())
	require.NoError(t, w.EnsureDir())

	require.NoError(t, w.Write(Chunk{Index: 3, Entries: []string{"one\n", "two\n"}}))
	data, err := os.ReadFile(filepath.Join(dir, "chunk-3.txt"))
	require.NoError(t, err)
	assert.Equal(t, "one\ntwo\n", string(data))

	require.NoError(t, w.Write(Chunk{Index: 3, Entries: []string{"x"}}))
	data, err = os.ReadFile(filepath.Join(dir, ChunkFileName(3)))
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestWriterFailures(t *testing.T) {
	base := t.TempDir()
	blocker := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	w := NewWriter(filepath.Join(blocker, "out"), nil)
	assert.ErrorIs(t, w.EnsureDir(), ErrWrite)
	assert.ErrorIs(t, w.Write(Chunk{Entries: []string{"a"}}), ErrWrite)
}

func TestChunkFileName(t *testing.T) {
	assert.Equal(t, "chunk-0.txt", ChunkFileName(0))
	assert.Equal(t, "chunk-12.txt", ChunkFileName(12))
}
