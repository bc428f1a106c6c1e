package domain

import (
	"fmt"
	"log/slog"

	"nuxtsmith.dev/pkg/nuxtsmith/internal/adapter"
	m "nuxtsmith.dev/pkg/nuxtsmith/internal/model"
)

// configFilePerm matches what the generator tools produce for config files.
const configFilePerm = 0o644

// ConfigPatcher applies structural edits to a project's nuxt.config.ts.
// Every operation re-reads the document from disk, applies one edit and
// writes the result back, so each is independently idempotent: applied to
// its own output it is a no-op.
type ConfigPatcher struct {
	fs adapter.ProjectFSAdapter
}

// NewConfigPatcher constructs a ConfigPatcher backed by the given adapter.
func NewConfigPatcher(fs adapter.ProjectFSAdapter) *ConfigPatcher {
	return &ConfigPatcher{fs: fs}
}

// EnsureImport guarantees importLine is present at the top of the document.
func (p *ConfigPatcher) EnsureImport(root m.Path, importLine string) error {
	return p.apply(root, func(doc *m.ConfigDocument) (bool, error) {
		return EnsureImport(doc, importLine), nil
	})
}

// MergeModule guarantees module is registered in the modules array.
func (p *ConfigPatcher) MergeModule(root m.Path, module string) error {
	return p.apply(root, func(doc *m.ConfigDocument) (bool, error) {
		return MergeIntoModuleList(doc, module)
	})
}

// InsertKeyBlock guarantees a block for keyName exists in the document.
func (p *ConfigPatcher) InsertKeyBlock(root m.Path, keyName, block string) error {
	return p.apply(root, func(doc *m.ConfigDocument) (bool, error) {
		return InsertKeyBlockIfAbsent(doc, keyName, block)
	})
}

// EnsureDefaults guarantees the default top-level options are present.
func (p *ConfigPatcher) EnsureDefaults(root m.Path, defaults []string) error {
	return p.apply(root, func(doc *m.ConfigDocument) (bool, error) {
		return EnsureTopLevelDefaults(doc, defaults)
	})
}

// apply runs one edit against a freshly loaded document and persists the
// result only when the edit changed it. A failed edit leaves the file on
// disk untouched.
func (p *ConfigPatcher) apply(root m.Path, edit func(*m.ConfigDocument) (bool, error)) error {
	path := p.fs.JoinPath(string(root), ConfigFileName)

	raw, err := p.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", ConfigFileName, err)
	}

	doc := &m.ConfigDocument{Raw: string(raw)}

	changed, err := edit(doc)
	if err != nil {
		slog.Error("Config patch failed", "path", path, "error", err)
		return err
	}

	if !changed {
		return nil
	}

	if err := p.fs.WriteFile(path, []byte(doc.Raw), configFilePerm); err != nil {
		return fmt.Errorf("write %s: %w", ConfigFileName, err)
	}

	return nil
}
