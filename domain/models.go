package domain

// DependencyType identifies one of the four manifest blocks that can declare
// a dependency. The same dependency name may appear under several blocks with
// different ranges; each block is handled independently.
type DependencyType string

const (
	DependencyTypeProd     DependencyType = "dependencies"
	DependencyTypeDev      DependencyType = "devDependencies"
	DependencyTypePeer     DependencyType = "peerDependencies"
	DependencyTypeOptional DependencyType = "optionalDependencies"
)

// DependencyTypes returns the four dependency blocks in their canonical order.
func DependencyTypes() []DependencyType {
	return []DependencyType{
		DependencyTypeProd,
		DependencyTypeDev,
		DependencyTypePeer,
		DependencyTypeOptional,
	}
}

// Manifest is the versioning-relevant slice of a package manifest: the
// package's own name and version plus its declared dependency ranges,
// keyed by dependency type and then by dependency name.
type Manifest struct {
	Name    string
	Version string
	Deps    map[DependencyType]map[string]string
}

// Clone returns a deep copy of the manifest. Rewrites always operate on a
// copy so the caller's snapshot is never aliased.
func (m Manifest) Clone() Manifest {
	out := Manifest{Name: m.Name, Version: m.Version}
	if m.Deps == nil {
		return out
	}
	out.Deps = make(map[DependencyType]map[string]string, len(m.Deps))
	for depType, entries := range m.Deps {
		copied := make(map[string]string, len(entries))
		for name, rng := range entries {
			copied[name] = rng
		}
		out.Deps[depType] = copied
	}
	return out
}

// Range returns the declared range for a dependency under one block,
// reporting whether the dependency is declared there at all.
func (m Manifest) Range(depType DependencyType, name string) (string, bool) {
	entries, ok := m.Deps[depType]
	if !ok {
		return "", false
	}
	rng, ok := entries[name]
	return rng, ok
}

// Package is one node of the monorepo graph.
type Package struct {
	Name     string
	Version  string
	Dir      string // directory containing the manifest, relative to the repo root
	Manifest Manifest
}

// PackageGraph is the discovered workspace: the root package plus every
// workspace package, and the monorepo tooling that produced the layout.
type PackageGraph struct {
	Root     Package
	Packages []Package
	Tool     string // "pnpm", "yarn", "npm", or "root" for a single-package repo
}

// Names returns the names of all workspace packages in graph order.
func (g PackageGraph) Names() []string {
	names := make([]string, 0, len(g.Packages))
	for _, pkg := range g.Packages {
		names = append(names, pkg.Name)
	}
	return names
}

// Lookup returns the workspace package with the given name.
func (g PackageGraph) Lookup(name string) (Package, bool) {
	for _, pkg := range g.Packages {
		if pkg.Name == name {
			return pkg, true
		}
	}
	return Package{}, false
}

// VersionUpdate assigns a new version to a named package. A rewrite
// invocation receives one update per package; names are unique within a
// single invocation and versions are bare semver versions.
type VersionUpdate struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}
