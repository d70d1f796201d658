package discovery_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/monorelease/domain"
	"github.com/rios0rios0/monorelease/infrastructure/discovery"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFind(t *testing.T) {
	t.Parallel()

	t.Run("should discover a pnpm workspace", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"name": "monorepo", "private": true}`)
		writeFile(t, root, "pnpm-workspace.yaml", "packages:\n  - \"packages/*\"\n")
		writeFile(t, root, "packages/pkg-a/package.json",
			`{"name": "pkg-a", "version": "1.0.0"}`)
		writeFile(t, root, "packages/pkg-b/package.json",
			`{"name": "pkg-b", "version": "2.0.0", "dependencies": {"pkg-a": "workspace:^1.0.0"}}`)

		// when
		graph, err := discovery.Find(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, discovery.ToolPnpm, graph.Tool)
		assert.Equal(t, []string{"pkg-a", "pkg-b"}, graph.Names())
		pkgB, _ := graph.Lookup("pkg-b")
		assert.Equal(t, "packages/pkg-b", pkgB.Dir)
		rng, ok := pkgB.Manifest.Range(domain.DependencyTypeProd, "pkg-a")
		assert.True(t, ok)
		assert.Equal(t, "workspace:^1.0.0", rng)
	})

	t.Run("should discover a yarn workspace with the object form", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json",
			`{"name": "monorepo", "private": true, "workspaces": {"packages": ["libs/*"]}}`)
		writeFile(t, root, "yarn.lock", "")
		writeFile(t, root, "libs/pkg-a/package.json", `{"name": "pkg-a", "version": "0.1.0"}`)

		// when
		graph, err := discovery.Find(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, discovery.ToolYarn, graph.Tool)
		assert.Equal(t, []string{"pkg-a"}, graph.Names())
	})

	t.Run("should default to npm for the array form without a yarn lockfile", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json",
			`{"name": "monorepo", "workspaces": ["packages/*"]}`)
		writeFile(t, root, "packages/pkg-a/package.json", `{"name": "pkg-a", "version": "0.1.0"}`)

		// when
		graph, err := discovery.Find(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, discovery.ToolNpm, graph.Tool)
	})

	t.Run("should treat a repo without workspaces as a single package", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"name": "solo", "version": "3.0.0"}`)

		// when
		graph, err := discovery.Find(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, discovery.ToolRoot, graph.Tool)
		require.Len(t, graph.Packages, 1)
		assert.Equal(t, "solo", graph.Packages[0].Name)
		assert.Equal(t, ".", graph.Packages[0].Dir)
	})

	t.Run("should honor exclusion patterns", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"name": "monorepo", "private": true}`)
		writeFile(t, root, "pnpm-workspace.yaml",
			"packages:\n  - \"packages/*\"\n  - \"!packages/legacy\"\n")
		writeFile(t, root, "packages/pkg-a/package.json", `{"name": "pkg-a", "version": "1.0.0"}`)
		writeFile(t, root, "packages/legacy/package.json", `{"name": "legacy", "version": "0.0.1"}`)

		// when
		graph, err := discovery.Find(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"pkg-a"}, graph.Names())
	})

	t.Run("should skip node_modules and directories without a manifest", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"name": "monorepo", "workspaces": ["packages/*"]}`)
		writeFile(t, root, "packages/pkg-a/package.json", `{"name": "pkg-a", "version": "1.0.0"}`)
		writeFile(t, root, "packages/docs/README.md", "no manifest here")
		writeFile(t, root, "node_modules/stray/package.json", `{"name": "stray", "version": "1.0.0"}`)

		// when
		graph, err := discovery.Find(root)

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"pkg-a"}, graph.Names())
	})

	t.Run("should fail when a workspace package has no name", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "package.json", `{"name": "monorepo", "workspaces": ["packages/*"]}`)
		writeFile(t, root, "packages/anon/package.json", `{"version": "1.0.0"}`)

		// when
		_, err := discovery.Find(root)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no name")
	})
}

func TestWriter(t *testing.T) {
	t.Parallel()

	t.Run("should merge the rewritten manifest and preserve unknown fields", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		writeFile(t, root, "packages/pkg-b/package.json", `{
  "name": "pkg-b",
  "version": "1.0.0",
  "scripts": {"build": "tsc"},
  "dependencies": {"pkg-a": "^1.0.0"}
}`)
		pkg := domain.Package{
			Name:    "pkg-b",
			Version: "2.0.0",
			Dir:     "packages/pkg-b",
			Manifest: domain.Manifest{
				Name:    "pkg-b",
				Version: "2.0.0",
				Deps: map[domain.DependencyType]map[string]string{
					domain.DependencyTypeProd: {"pkg-a": "^1.5.0"},
				},
			},
		}

		// when
		err := discovery.NewWriter(root).WriteManifest(pkg)

		// then
		require.NoError(t, err)
		data, readErr := os.ReadFile(filepath.Join(root, "packages", "pkg-b", "package.json"))
		require.NoError(t, readErr)

		var written struct {
			Name         string            `json:"name"`
			Version      string            `json:"version"`
			Scripts      map[string]string `json:"scripts"`
			Dependencies map[string]string `json:"dependencies"`
		}
		require.NoError(t, json.Unmarshal(data, &written))
		assert.Equal(t, "pkg-b", written.Name)
		assert.Equal(t, "2.0.0", written.Version)
		assert.Equal(t, map[string]string{"build": "tsc"}, written.Scripts)
		assert.Equal(t, map[string]string{"pkg-a": "^1.5.0"}, written.Dependencies)
		assert.Equal(t, byte('\n'), data[len(data)-1])
	})

	t.Run("should fail when the manifest file is missing", func(t *testing.T) {
		t.Parallel()

		// given
		pkg := domain.Package{Name: "ghost", Dir: "packages/ghost"}

		// when
		err := discovery.NewWriter(t.TempDir()).WriteManifest(pkg)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read manifest")
	})
}
