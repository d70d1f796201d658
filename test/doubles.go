// Package testdoubles provides test doubles (spies, stubs, dummies) for domain
// interfaces. These are hand-crafted implementations — no mock frameworks.
package testdoubles

import (
	"path"

	"github.com/rios0rios0/monorelease/domain"
)

// ---------------------------------------------------------------------------
// SpyManifestWriter
// ---------------------------------------------------------------------------

// SpyManifestWriter implements domain.ManifestWriter as a configurable spy.
type SpyManifestWriter struct {
	WriteErr error
	// spy: packages received, in call order
	Written []domain.Package
}

func (s *SpyManifestWriter) WriteManifest(pkg domain.Package) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	s.Written = append(s.Written, pkg)
	return nil
}

// ---------------------------------------------------------------------------
// SpyCommitter
// ---------------------------------------------------------------------------

// SpyCommitter implements domain.Committer as a configurable spy.
type SpyCommitter struct {
	CommitErr error
	// spy: inputs received
	RepoDirs []string
	Paths    [][]string
	Messages []string
}

func (s *SpyCommitter) Commit(repoDir string, paths []string, message string) error {
	if s.CommitErr != nil {
		return s.CommitErr
	}
	s.RepoDirs = append(s.RepoDirs, repoDir)
	s.Paths = append(s.Paths, paths)
	s.Messages = append(s.Messages, message)
	return nil
}

// ---------------------------------------------------------------------------
// SpyChangelogWriter
// ---------------------------------------------------------------------------

// SpyChangelogWriter implements domain.ChangelogWriter as a configurable spy.
type SpyChangelogWriter struct {
	UpdateErr error
	// spy: inputs received
	Packages   []domain.Package
	Versions   []string
	Generators []string
}

func (s *SpyChangelogWriter) UpdateChangelog(
	pkg domain.Package,
	newVersion, generator string,
) (string, error) {
	if s.UpdateErr != nil {
		return "", s.UpdateErr
	}
	s.Packages = append(s.Packages, pkg)
	s.Versions = append(s.Versions, newVersion)
	s.Generators = append(s.Generators, generator)
	return path.Join(pkg.Dir, "CHANGELOG.md"), nil
}
