// Package discovery locates the workspace packages of a monorepo on disk and
// reads their manifests into the domain model. It understands pnpm
// workspaces (pnpm-workspace.yaml), yarn/npm workspaces (the `workspaces`
// field of the root package.json), and plain single-package repositories.
package discovery

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/monorelease/domain"
)

// Monorepo tooling identifiers.
const (
	ToolPnpm = "pnpm"
	ToolYarn = "yarn"
	ToolNpm  = "npm"
	ToolRoot = "root"
)

const manifestFile = "package.json"

// packageJSON is the on-disk manifest shape, limited to the fields this tool
// reads. Everything else is preserved untouched by the Writer.
type packageJSON struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Workspaces           json.RawMessage   `json:"workspaces"`
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
}

// Find discovers the package graph rooted at dir.
func Find(root string) (domain.PackageGraph, error) {
	rootManifest, err := readManifest(root, ".")
	if err != nil {
		return domain.PackageGraph{}, err
	}

	tool, patterns, err := detectTool(root, rootManifest)
	if err != nil {
		return domain.PackageGraph{}, err
	}

	rootPkg := toPackage(rootManifest, ".")
	graph := domain.PackageGraph{Root: rootPkg, Tool: tool}

	if tool == ToolRoot {
		if rootPkg.Name == "" {
			return domain.PackageGraph{}, fmt.Errorf("package at %q has no name", root)
		}
		graph.Packages = []domain.Package{rootPkg}
		return graph, nil
	}

	dirs, err := expandWorkspaceGlobs(root, patterns)
	if err != nil {
		return domain.PackageGraph{}, err
	}

	for _, dir := range dirs {
		manifest, readErr := readManifest(root, dir)
		if readErr != nil {
			return domain.PackageGraph{}, readErr
		}
		if manifest.Name == "" {
			return domain.PackageGraph{}, fmt.Errorf("package at %q has no name", dir)
		}
		graph.Packages = append(graph.Packages, toPackage(manifest, dir))
	}

	return graph, nil
}

// detectTool determines which monorepo tooling owns the layout and returns
// its workspace glob patterns.
func detectTool(root string, rootManifest *packageJSON) (string, []string, error) {
	pnpmWorkspace := filepath.Join(root, "pnpm-workspace.yaml")
	if _, err := os.Stat(pnpmWorkspace); err == nil {
		patterns, readErr := readPnpmWorkspace(pnpmWorkspace)
		if readErr != nil {
			return "", nil, readErr
		}
		return ToolPnpm, patterns, nil
	}

	patterns, err := workspacePatterns(rootManifest.Workspaces)
	if err != nil {
		return "", nil, err
	}
	if len(patterns) == 0 {
		return ToolRoot, nil, nil
	}

	if _, err := os.Stat(filepath.Join(root, "yarn.lock")); err == nil {
		return ToolYarn, patterns, nil
	}
	return ToolNpm, patterns, nil
}

// workspacePatterns accepts both the array form and yarn's object form
// ({"packages": [...]}) of the `workspaces` field.
func workspacePatterns(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}

	var patterns []string
	if err := json.Unmarshal(raw, &patterns); err == nil {
		return patterns, nil
	}

	var object struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(raw, &object); err != nil {
		return nil, fmt.Errorf("unsupported `workspaces` field shape: %s", string(raw))
	}
	return object.Packages, nil
}

func readPnpmWorkspace(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	var workspace struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &workspace); err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}
	return workspace.Packages, nil
}

// expandWorkspaceGlobs returns the repo-relative directories matched by the
// workspace patterns that contain a package.json. Patterns prefixed with "!"
// exclude previously matched directories. node_modules and hidden directories
// are never considered.
func expandWorkspaceGlobs(root string, patterns []string) ([]string, error) {
	var includes, excludes []glob.Glob
	for _, pattern := range patterns {
		target := &includes
		if strings.HasPrefix(pattern, "!") {
			pattern = strings.TrimPrefix(pattern, "!")
			target = &excludes
		}
		g, err := glob.Compile(strings.TrimSuffix(pattern, "/"), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid workspace pattern %q: %w", pattern, err)
		}
		*target = append(*target, g)
	}

	var dirs []string
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}
		name := entry.Name()
		if path != root && (name == "node_modules" || strings.HasPrefix(name, ".")) {
			return filepath.SkipDir
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if !matchesAny(includes, rel) || matchesAny(excludes, rel) {
			return nil
		}
		if _, statErr := os.Stat(filepath.Join(path, manifestFile)); statErr != nil {
			return nil
		}
		dirs = append(dirs, rel)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("failed to scan workspace directories: %w", walkErr)
	}

	sort.Strings(dirs)
	return dirs, nil
}

func matchesAny(globs []glob.Glob, dir string) bool {
	for _, g := range globs {
		if g.Match(dir) {
			return true
		}
	}
	return false
}

func readManifest(root, dir string) (*packageJSON, error) {
	path := filepath.Join(root, dir, manifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	var manifest packageJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	return &manifest, nil
}

func toPackage(manifest *packageJSON, dir string) domain.Package {
	deps := make(map[domain.DependencyType]map[string]string)
	for depType, entries := range map[domain.DependencyType]map[string]string{
		domain.DependencyTypeProd:     manifest.Dependencies,
		domain.DependencyTypeDev:      manifest.DevDependencies,
		domain.DependencyTypePeer:     manifest.PeerDependencies,
		domain.DependencyTypeOptional: manifest.OptionalDependencies,
	} {
		if len(entries) > 0 {
			deps[depType] = entries
		}
	}

	return domain.Package{
		Name:    manifest.Name,
		Version: manifest.Version,
		Dir:     dir,
		Manifest: domain.Manifest{
			Name:    manifest.Name,
			Version: manifest.Version,
			Deps:    deps,
		},
	}
}
