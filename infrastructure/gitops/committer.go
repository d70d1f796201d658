// Package gitops records released manifests as a git commit when the release
// configuration asks for one.
package gitops

import (
	"fmt"

	"github.com/go-git/go-git/v5"

	"github.com/rios0rios0/monorelease/domain"
)

// Committer implements domain.Committer on top of a local git repository.
type Committer struct{}

// NewCommitter creates a git committer.
func NewCommitter() *Committer {
	return &Committer{}
}

var _ domain.Committer = (*Committer)(nil)

// Commit stages the given repo-relative paths and records a single commit.
// The author comes from the repository's own git configuration.
func (c *Committer) Commit(repoDir string, paths []string, message string) error {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return fmt.Errorf("failed to open git repository at %q: %w", repoDir, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("failed to open git worktree: %w", err)
	}

	for _, path := range paths {
		if _, addErr := worktree.Add(path); addErr != nil {
			return fmt.Errorf("failed to stage %q: %w", path, addErr)
		}
	}

	if _, err := worktree.Commit(message, &git.CommitOptions{}); err != nil {
		return fmt.Errorf("failed to commit release changes: %w", err)
	}
	return nil
}
