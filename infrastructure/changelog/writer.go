package changelog

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/rios0rios0/monorelease/domain"
)

const (
	changelogFile     = "CHANGELOG.md"
	changelogFileMode = 0o644
)

// Writer implements domain.ChangelogWriter: it reads a package's
// CHANGELOG.md, runs the configured generator over it, and writes the result
// back. A missing changelog file is created from scratch.
type Writer struct {
	root     string
	registry *Registry
}

// NewWriter creates a changelog writer for the repository rooted at root.
func NewWriter(root string, registry *Registry) *Writer {
	return &Writer{root: root, registry: registry}
}

var _ domain.ChangelogWriter = (*Writer)(nil)

// UpdateChangelog records the release of pkg at newVersion.
func (w *Writer) UpdateChangelog(pkg domain.Package, newVersion, generator string) (string, error) {
	gen := w.registry.Get(generator)
	if gen == nil {
		return "", fmt.Errorf("unknown changelog generator %q (registered: %v)",
			generator, w.registry.Names())
	}

	filePath := filepath.Join(w.root, pkg.Dir, changelogFile)
	content := ""
	data, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		content = string(data)
	case !os.IsNotExist(err):
		return "", fmt.Errorf("failed to read changelog %q: %w", filePath, err)
	}

	updated := gen.Update(content, pkg, newVersion)
	if err := os.WriteFile(filePath, []byte(updated), changelogFileMode); err != nil {
		return "", fmt.Errorf("failed to write changelog %q: %w", filePath, err)
	}

	return path.Join(pkg.Dir, changelogFile), nil
}
