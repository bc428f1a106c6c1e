package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLocalProjectFSAdapter_DirChecks(t *testing.T) {
	a := NewLocalProjectFSAdapter()
	root := t.TempDir()

	empty := filepath.Join(root, "empty")
	require.NoError(t, os.Mkdir(empty, 0o750))

	populated := filepath.Join(root, "populated")
	writeTestFile(t, filepath.Join(populated, "file.txt"), "x\n")

	file := filepath.Join(root, "plain.txt")
	writeTestFile(t, file, "x\n")

	assert.True(t, a.Exists(m.Path(empty)))
	assert.True(t, a.Exists(m.Path(file)))
	assert.False(t, a.Exists(m.Path(filepath.Join(root, "missing"))))

	assert.True(t, a.DirExists(m.Path(empty)))
	assert.False(t, a.DirExists(m.Path(file)))

	assert.False(t, a.DirNonEmpty(m.Path(empty)))
	assert.True(t, a.DirNonEmpty(m.Path(populated)))
	assert.False(t, a.DirNonEmpty(m.Path(file)))
}

func TestLocalProjectFSAdapter_WriteFileIfAbsent(t *testing.T) {
	a := NewLocalProjectFSAdapter()
	root := t.TempDir()
	path := m.Path(filepath.Join(root, "nested", "file.txt"))

	outcome, err := a.WriteFileIfAbsent(path, []byte("first\n"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, m.WriteCreated, outcome)

	// A second write must not touch the existing content, whatever is supplied.
	outcome, err = a.WriteFileIfAbsent(path, []byte("second\n"), 0o644)
	require.NoError(t, err)
	assert.Equal(t, m.WriteSkippedExisting, outcome)

	content, err := os.ReadFile(string(path))
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(content))
}

func TestLocalProjectFSAdapter_MoveDirContents(t *testing.T) {
	t.Run("moves entries and removes the source", func(t *testing.T) {
		a := NewLocalProjectFSAdapter()
		root := t.TempDir()

		src := filepath.Join(root, "src")
		writeTestFile(t, filepath.Join(src, "a.txt"), "a\n")
		writeTestFile(t, filepath.Join(src, "sub", "b.txt"), "b\n")

		dst := filepath.Join(root, "dst")

		moved, err := a.MoveDirContents(m.Path(src), m.Path(dst))
		require.NoError(t, err)

		assert.Equal(t, 2, moved)
		assert.FileExists(t, filepath.Join(dst, "a.txt"))
		assert.FileExists(t, filepath.Join(dst, "sub", "b.txt"))
		assert.NoDirExists(t, src)
	})

	t.Run("overwrites colliding destination entries", func(t *testing.T) {
		a := NewLocalProjectFSAdapter()
		root := t.TempDir()

		src := filepath.Join(root, "src")
		writeTestFile(t, filepath.Join(src, "a.txt"), "new\n")

		dst := filepath.Join(root, "dst")
		writeTestFile(t, filepath.Join(dst, "a.txt"), "old\n")

		_, err := a.MoveDirContents(m.Path(src), m.Path(dst))
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dst, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(content))
	})

	t.Run("merges colliding destination directories", func(t *testing.T) {
		a := NewLocalProjectFSAdapter()
		root := t.TempDir()

		src := filepath.Join(root, "src")
		writeTestFile(t, filepath.Join(src, "sub", "new.txt"), "new\n")
		writeTestFile(t, filepath.Join(src, "sub", "shared.txt"), "src\n")

		dst := filepath.Join(root, "dst")
		writeTestFile(t, filepath.Join(dst, "sub", "keep.txt"), "keep\n")
		writeTestFile(t, filepath.Join(dst, "sub", "shared.txt"), "dst\n")

		_, err := a.MoveDirContents(m.Path(src), m.Path(dst))
		require.NoError(t, err)

		// A file only present under the destination survives the merge.
		keep, err := os.ReadFile(filepath.Join(dst, "sub", "keep.txt"))
		require.NoError(t, err)
		assert.Equal(t, "keep\n", string(keep))

		assert.FileExists(t, filepath.Join(dst, "sub", "new.txt"))

		shared, err := os.ReadFile(filepath.Join(dst, "sub", "shared.txt"))
		require.NoError(t, err)
		assert.Equal(t, "src\n", string(shared))

		assert.NoDirExists(t, src)
	})

	t.Run("missing source is an error", func(t *testing.T) {
		a := NewLocalProjectFSAdapter()
		root := t.TempDir()

		_, err := a.MoveDirContents(m.Path(filepath.Join(root, "missing")), m.Path(filepath.Join(root, "dst")))
		require.Error(t, err)
	})
}
