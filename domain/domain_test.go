package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/monorelease/domain"
)

func TestDependencyTypes(t *testing.T) {
	t.Parallel()

	t.Run("should list the four blocks in canonical order", func(t *testing.T) {
		t.Parallel()

		// when
		types := domain.DependencyTypes()

		// then
		assert.Equal(t, []domain.DependencyType{
			domain.DependencyTypeProd,
			domain.DependencyTypeDev,
			domain.DependencyTypePeer,
			domain.DependencyTypeOptional,
		}, types)
	})
}

func TestManifestClone(t *testing.T) {
	t.Parallel()

	t.Run("should deep copy the dependency maps", func(t *testing.T) {
		t.Parallel()

		// given
		original := domain.Manifest{
			Name:    "pkg-a",
			Version: "1.0.0",
			Deps: map[domain.DependencyType]map[string]string{
				domain.DependencyTypeProd: {"dep": "^1.0.0"},
			},
		}

		// when
		clone := original.Clone()
		clone.Deps[domain.DependencyTypeProd]["dep"] = "^2.0.0"

		// then
		assert.Equal(t, "^1.0.0", original.Deps[domain.DependencyTypeProd]["dep"])
		assert.Equal(t, "^2.0.0", clone.Deps[domain.DependencyTypeProd]["dep"])
	})

	t.Run("should handle a manifest without dependencies", func(t *testing.T) {
		t.Parallel()

		// given
		original := domain.Manifest{Name: "pkg-a", Version: "1.0.0"}

		// when
		clone := original.Clone()

		// then
		assert.Equal(t, original, clone)
	})
}

func TestManifestRange(t *testing.T) {
	t.Parallel()

	t.Run("should report declared and undeclared dependencies", func(t *testing.T) {
		t.Parallel()

		// given
		manifest := domain.Manifest{
			Deps: map[domain.DependencyType]map[string]string{
				domain.DependencyTypeDev: {"dep": "~1.0.0"},
			},
		}

		// when / then
		rng, ok := manifest.Range(domain.DependencyTypeDev, "dep")
		assert.True(t, ok)
		assert.Equal(t, "~1.0.0", rng)

		_, ok = manifest.Range(domain.DependencyTypeProd, "dep")
		assert.False(t, ok)
	})
}

func TestPackageGraph(t *testing.T) {
	t.Parallel()

	graph := domain.PackageGraph{
		Packages: []domain.Package{
			{Name: "pkg-a", Version: "1.0.0"},
			{Name: "pkg-b", Version: "2.0.0"},
		},
	}

	t.Run("should list package names in graph order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"pkg-a", "pkg-b"}, graph.Names())
	})

	t.Run("should look up packages by name", func(t *testing.T) {
		t.Parallel()

		pkg, ok := graph.Lookup("pkg-b")
		require.True(t, ok)
		assert.Equal(t, "2.0.0", pkg.Version)

		_, ok = graph.Lookup("pkg-c")
		assert.False(t, ok)
	})
}

func TestBuildDependentsGraph(t *testing.T) {
	t.Parallel()

	pkg := func(name string, deps map[domain.DependencyType]map[string]string) domain.Package {
		return domain.Package{
			Name:     name,
			Version:  "1.0.0",
			Manifest: domain.Manifest{Name: name, Version: "1.0.0", Deps: deps},
		}
	}

	t.Run("should map each package to its direct dependents", func(t *testing.T) {
		t.Parallel()

		// given
		graph := domain.PackageGraph{Packages: []domain.Package{
			pkg("pkg-a", nil),
			pkg("pkg-b", map[domain.DependencyType]map[string]string{
				domain.DependencyTypeProd: {"pkg-a": "^1.0.0"},
			}),
			pkg("pkg-c", map[domain.DependencyType]map[string]string{
				domain.DependencyTypeDev: {"pkg-a": "workspace:*", "pkg-b": "~1.0.0"},
			}),
		}}

		// when
		dependents := domain.BuildDependentsGraph(graph)

		// then
		assert.Equal(t, []string{"pkg-b", "pkg-c"}, dependents["pkg-a"])
		assert.Equal(t, []string{"pkg-c"}, dependents["pkg-b"])
		assert.Empty(t, dependents["pkg-c"])
	})

	t.Run("should ignore dependencies on packages outside the workspace", func(t *testing.T) {
		t.Parallel()

		// given
		graph := domain.PackageGraph{Packages: []domain.Package{
			pkg("pkg-a", map[domain.DependencyType]map[string]string{
				domain.DependencyTypeProd: {"lodash": "^4.17.21"},
			}),
		}}

		// when
		dependents := domain.BuildDependentsGraph(graph)

		// then
		assert.Len(t, dependents, 1)
		assert.Empty(t, dependents["pkg-a"])
	})

	t.Run("should count a dependent once across dependency blocks", func(t *testing.T) {
		t.Parallel()

		// given
		graph := domain.PackageGraph{Packages: []domain.Package{
			pkg("pkg-a", nil),
			pkg("pkg-b", map[domain.DependencyType]map[string]string{
				domain.DependencyTypeProd: {"pkg-a": "^1.0.0"},
				domain.DependencyTypePeer: {"pkg-a": "*"},
			}),
		}}

		// when
		dependents := domain.BuildDependentsGraph(graph)

		// then
		assert.Equal(t, []string{"pkg-b"}, dependents["pkg-a"])
	})
}
