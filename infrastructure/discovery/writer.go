package discovery

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/monorelease/domain"
)

const manifestFileMode = 0o644

// Writer persists rewritten manifests back to package.json files. Only the
// version field and the dependency blocks carried by the domain manifest are
// replaced; every other field of the file survives the round trip.
type Writer struct {
	root string
}

// NewWriter creates a writer for the repository rooted at root.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

var _ domain.ManifestWriter = (*Writer)(nil)

// WriteManifest merges pkg's manifest into the existing package.json under
// pkg.Dir and writes it back with two-space indentation.
func (w *Writer) WriteManifest(pkg domain.Package) error {
	path := filepath.Join(w.root, pkg.Dir, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}

	if err := setField(fields, "version", pkg.Manifest.Version); err != nil {
		return err
	}
	for _, depType := range domain.DependencyTypes() {
		entries, ok := pkg.Manifest.Deps[depType]
		if !ok {
			continue
		}
		if err := setField(fields, string(depType), entries); err != nil {
			return err
		}
	}

	out, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest for %q: %w", pkg.Name, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, manifestFileMode); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", path, err)
	}
	return nil
}

func setField(fields map[string]json.RawMessage, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode manifest field %q: %w", key, err)
	}
	fields[key] = encoded
	return nil
}
