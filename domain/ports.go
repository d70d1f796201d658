package domain

// ManifestWriter persists a rewritten manifest back to a package directory.
// The core rewrite logic never touches the filesystem; the application layer
// hands changed packages to an implementation of this interface.
type ManifestWriter interface {
	// WriteManifest writes pkg's manifest into pkg.Dir, preserving any
	// manifest fields outside the versioning-relevant slice.
	WriteManifest(pkg Package) error
}

// Committer records a set of changed files as a single commit in the
// repository that contains them.
type Committer interface {
	Commit(repoDir string, paths []string, message string) error
}

// ChangelogWriter records a package release in the package's changelog file
// using the named generator. It returns the repo-relative path of the file
// it wrote.
type ChangelogWriter interface {
	UpdateChangelog(pkg Package, newVersion, generator string) (string, error)
}
