// Package adapter contains infrastructure adapters for the nuxtsmith CLI.
package adapter

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// ProjectFSAdapter abstracts the filesystem operations the scaffolding
// domain performs on a project tree. It hides direct `os` access so the
// layout and template logic can be tested against temp dirs.
type ProjectFSAdapter interface {
	// Exists reports whether path exists, file or directory.
	Exists(path m.Path) bool

	// DirExists reports whether path exists and is a directory.
	DirExists(path m.Path) bool

	// DirNonEmpty reports whether path is a directory with at least one entry.
	DirNonEmpty(path m.Path) bool

	// MkdirAll creates the directory and any missing parents.
	MkdirAll(path m.Path) error

	// ReadFile loads file contents from disk.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// WriteFileIfAbsent writes content only when no file exists at path.
	// Existence alone gates the write; existing content is never read or
	// compared.
	WriteFileIfAbsent(path m.Path, content []byte, perm os.FileMode) (m.WriteOutcome, error)

	// MoveDirContents moves every entry of src into dst. Colliding files
	// are overwritten; colliding directories are merged recursively. src
	// itself is removed afterwards.
	MoveDirContents(src, dst m.Path) (moved int, err error)

	// ReadDir lists the entries of a directory.
	ReadDir(path m.Path) ([]fs.DirEntry, error)

	// JoinPath joins path elements into a single path.
	JoinPath(elem ...string) m.Path
}

// LocalProjectFSAdapter is the os-backed ProjectFSAdapter implementation.
type LocalProjectFSAdapter struct{}

// NewLocalProjectFSAdapter constructs a LocalProjectFSAdapter ready to be
// wired into the workflow.
func NewLocalProjectFSAdapter() *LocalProjectFSAdapter {
	return &LocalProjectFSAdapter{}
}

// Exists reports whether path exists.
func (a *LocalProjectFSAdapter) Exists(path m.Path) bool {
	_, err := os.Stat(string(path))
	return err == nil
}

// DirExists reports whether path is an existing directory.
func (a *LocalProjectFSAdapter) DirExists(path m.Path) bool {
	info, err := os.Stat(string(path))
	return err == nil && info.IsDir()
}

// DirNonEmpty reports whether path is a directory containing any entry.
func (a *LocalProjectFSAdapter) DirNonEmpty(path m.Path) bool {
	entries, err := os.ReadDir(string(path))
	return err == nil && len(entries) > 0
}

// MkdirAll creates the directory and parents.
func (a *LocalProjectFSAdapter) MkdirAll(path m.Path) error {
	return os.MkdirAll(string(path), 0o750)
}

// ReadFile loads file contents from disk.
func (a *LocalProjectFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalProjectFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

// WriteFileIfAbsent writes content unless path already exists.
func (a *LocalProjectFSAdapter) WriteFileIfAbsent(path m.Path, content []byte, perm os.FileMode) (m.WriteOutcome, error) {
	if a.Exists(path) {
		return m.WriteSkippedExisting, nil
	}

	if err := a.WriteFile(path, content, perm); err != nil {
		return "", err
	}

	return m.WriteCreated, nil
}

// MoveDirContents moves the entries of src into dst and removes src.
func (a *LocalProjectFSAdapter) MoveDirContents(src, dst m.Path) (int, error) {
	entries, err := os.ReadDir(string(src))
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(string(dst), 0o750); err != nil {
		return 0, err
	}

	moved := 0

	for _, entry := range entries {
		from := filepath.Join(string(src), entry.Name())
		to := filepath.Join(string(dst), entry.Name())

		if err := a.moveEntry(from, to); err != nil {
			return moved, err
		}

		moved++
	}

	if err := os.Remove(string(src)); err != nil {
		// A non-empty source here means a move above silently failed;
		// surface it rather than leaving a half-migrated tree.
		return moved, err
	}

	return moved, nil
}

// moveEntry renames from onto to. A colliding file is replaced; a colliding
// directory is merged entry by entry so files that exist only under the
// destination survive. When rename fails across filesystems it falls back to
// copy-and-remove.
func (a *LocalProjectFSAdapter) moveEntry(from, to string) error {
	fromInfo, err := os.Stat(from)
	if err != nil {
		return err
	}

	if toInfo, err := os.Stat(to); err == nil && fromInfo.IsDir() && toInfo.IsDir() {
		return a.mergeDir(from, to)
	}

	if err := os.RemoveAll(to); err != nil {
		return err
	}

	err = os.Rename(from, to)
	if err == nil {
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return err
	}

	if err := a.copyTree(from, to); err != nil {
		return err
	}

	return os.RemoveAll(from)
}

// mergeDir moves the entries of one directory into an existing one and
// removes the emptied source.
func (a *LocalProjectFSAdapter) mergeDir(from, to string) error {
	entries, err := os.ReadDir(from)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := a.moveEntry(filepath.Join(from, entry.Name()), filepath.Join(to, entry.Name())); err != nil {
			return err
		}
	}

	return os.Remove(from)
}

// copyTree recursively copies a file or directory tree.
func (a *LocalProjectFSAdapter) copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		targetPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(targetPath, info.Mode())
		}

		return a.copyFile(path, targetPath, info.Mode())
	})
}

// copyFile copies a single file.
func (a *LocalProjectFSAdapter) copyFile(src, dst string, mode os.FileMode) error {
	// #nosec G304 - src is an internal project file path, not user input
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}

	defer func() { _ = sourceFile.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return err
	}

	// #nosec G304 - dst is an internal destination path, not user input
	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	defer func() { _ = destFile.Close() }()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return err
	}

	return os.Chmod(dst, mode)
}

// ReadDir lists the entries of a directory.
func (a *LocalProjectFSAdapter) ReadDir(path m.Path) ([]fs.DirEntry, error) {
	return os.ReadDir(string(path))
}

// JoinPath joins path elements into a single path.
func (a *LocalProjectFSAdapter) JoinPath(elem ...string) m.Path {
	return m.Path(filepath.Join(elem...))
}
