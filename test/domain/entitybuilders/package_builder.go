package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/monorelease/domain"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// PackageBuilder helps create test packages with a fluent interface.
type PackageBuilder struct {
	*testkit.BaseBuilder
	name    string
	version string
	dir     string
	deps    map[domain.DependencyType]map[string]string
}

// NewPackageBuilder creates a new package builder with sensible defaults.
func NewPackageBuilder() *PackageBuilder {
	return &PackageBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		name:        "test-package",
		version:     "1.0.0",
		dir:         "packages/test-package",
		deps:        map[domain.DependencyType]map[string]string{},
	}
}

// WithName sets the package name and derives the directory from it.
func (b *PackageBuilder) WithName(name string) *PackageBuilder {
	b.name = name
	b.dir = "packages/" + name
	return b
}

// WithVersion sets the package's current version.
func (b *PackageBuilder) WithVersion(version string) *PackageBuilder {
	b.version = version
	return b
}

// WithDir sets the package directory.
func (b *PackageBuilder) WithDir(dir string) *PackageBuilder {
	b.dir = dir
	return b
}

// WithDep declares a dependency under the given block.
func (b *PackageBuilder) WithDep(depType domain.DependencyType, name, rng string) *PackageBuilder {
	if b.deps[depType] == nil {
		b.deps[depType] = map[string]string{}
	}
	b.deps[depType][name] = rng
	return b
}

// Build creates the package (satisfies testkit.Builder interface).
func (b *PackageBuilder) Build() interface{} {
	return b.BuildPackage()
}

// BuildPackage creates the package with a concrete return type.
func (b *PackageBuilder) BuildPackage() domain.Package {
	deps := make(map[domain.DependencyType]map[string]string, len(b.deps))
	for depType, entries := range b.deps {
		copied := make(map[string]string, len(entries))
		for name, rng := range entries {
			copied[name] = rng
		}
		deps[depType] = copied
	}
	return domain.Package{
		Name:    b.name,
		Version: b.version,
		Dir:     b.dir,
		Manifest: domain.Manifest{
			Name:    b.name,
			Version: b.version,
			Deps:    deps,
		},
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PackageBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.name = "test-package"
	b.version = "1.0.0"
	b.dir = "packages/test-package"
	b.deps = map[domain.DependencyType]map[string]string{}
	return b
}

// Clone creates a deep copy of the PackageBuilder.
func (b *PackageBuilder) Clone() testkit.Builder {
	deps := make(map[domain.DependencyType]map[string]string, len(b.deps))
	for depType, entries := range b.deps {
		copied := make(map[string]string, len(entries))
		for name, rng := range entries {
			copied[name] = rng
		}
		deps[depType] = copied
	}
	return &PackageBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		name:        b.name,
		version:     b.version,
		dir:         b.dir,
		deps:        deps,
	}
}

// GraphOf assembles a PackageGraph from workspace packages, with a synthetic
// private root.
func GraphOf(packages ...domain.Package) domain.PackageGraph {
	return domain.PackageGraph{
		Root:     domain.Package{Name: "monorepo-root", Version: "0.0.0", Dir: "."},
		Packages: packages,
		Tool:     "pnpm",
	}
}
