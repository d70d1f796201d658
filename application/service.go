// Package application orchestrates a release run: it checks an
// already-computed release plan against the validated policy, rewrites every
// package manifest, and hands the results to the persistence collaborators.
package application

import (
	"fmt"
	"path"
	"reflect"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/monorelease/config"
	"github.com/rios0rios0/monorelease/domain"
	"github.com/rios0rios0/monorelease/infrastructure/ranges"
	"github.com/rios0rios0/monorelease/infrastructure/rewriter"
)

const manifestFile = "package.json"

// ReleaseService applies a release plan to a workspace.
type ReleaseService struct {
	writer     domain.ManifestWriter
	committer  domain.Committer
	changelogs domain.ChangelogWriter
}

// NewReleaseService creates a service with the given persistence collaborators.
func NewReleaseService(
	writer domain.ManifestWriter,
	committer domain.Committer,
	changelogs domain.ChangelogWriter,
) *ReleaseService {
	return &ReleaseService{
		writer:     writer,
		committer:  committer,
		changelogs: changelogs,
	}
}

// RunOptions holds runtime options for a single release run.
type RunOptions struct {
	RepoRoot string
	DryRun   bool
}

// ApplyResult is the outcome of the pure rewrite stage.
type ApplyResult struct {
	// Changed holds every package whose manifest was touched, with the new
	// manifest value and (for planned packages) the new own version.
	Changed []domain.Package
	// Released holds the planned packages in plan order.
	Released []domain.VersionUpdate
}

// Apply checks the plan against the configuration and rewrites every package
// manifest in memory. It performs no I/O: the returned packages are new
// values, the input graph is untouched.
func (s *ReleaseService) Apply(
	graph domain.PackageGraph,
	cfg *config.Config,
	plan []domain.VersionUpdate,
) (*ApplyResult, error) {
	if err := checkPlan(graph, cfg, plan); err != nil {
		return nil, err
	}

	result := &ApplyResult{Released: plan}
	planned := make(map[string]string, len(plan))
	for _, update := range plan {
		planned[update.Name] = update.Version
	}

	for _, pkg := range graph.Packages {
		rewritten, err := rewriter.Rewrite(pkg.Manifest, plan)
		if err != nil {
			return nil, fmt.Errorf("failed to rewrite manifest of %q: %w", pkg.Name, err)
		}

		changed := !reflect.DeepEqual(pkg.Manifest, rewritten)
		if newVersion, ok := planned[pkg.Name]; ok {
			if newVersion != pkg.Version {
				changed = true
			}
			rewritten.Version = newVersion
			pkg.Version = newVersion
		}
		if !changed {
			continue
		}

		pkg.Manifest = rewritten
		result.Changed = append(result.Changed, pkg)
	}

	return result, nil
}

// Run executes the full release: rewrite, persist manifests, update
// changelogs, and commit when the policy asks for it.
func (s *ReleaseService) Run(
	graph domain.PackageGraph,
	cfg *config.Config,
	plan []domain.VersionUpdate,
	opts RunOptions,
) error {
	result, err := s.Apply(graph, cfg, plan)
	if err != nil {
		return err
	}

	if len(result.Changed) == 0 {
		logger.Info("Nothing to release: no manifest was affected by the plan")
		return nil
	}

	if opts.DryRun {
		for _, pkg := range result.Changed {
			logger.Infof("[DRY RUN] Would write %s", path.Join(pkg.Dir, manifestFile))
		}
		return nil
	}

	planned := make(map[string]bool, len(plan))
	for _, update := range plan {
		planned[update.Name] = true
	}

	var committed []string
	for _, pkg := range result.Changed {
		if writeErr := s.writer.WriteManifest(pkg); writeErr != nil {
			return writeErr
		}
		committed = append(committed, path.Join(pkg.Dir, manifestFile))
		logger.Debugf("Wrote manifest for %s@%s", pkg.Name, pkg.Version)

		if cfg.Changelog.Disabled || !planned[pkg.Name] {
			continue
		}
		changelogPath, logErr := s.changelogs.UpdateChangelog(pkg, pkg.Version, cfg.Changelog.Generator)
		if logErr != nil {
			return logErr
		}
		committed = append(committed, changelogPath)
	}

	if cfg.Commit {
		message := commitMessage(result.Released)
		if commitErr := s.committer.Commit(opts.RepoRoot, committed, message); commitErr != nil {
			return commitErr
		}
		logger.Infof("Committed release: %s", message)
	}

	logger.Infof("Released %d package(s), %d manifest(s) rewritten",
		len(result.Released), len(result.Changed))
	return nil
}

// checkPlan rejects plans that contradict the graph or the policy before any
// manifest is rewritten.
func checkPlan(graph domain.PackageGraph, cfg *config.Config, plan []domain.VersionUpdate) error {
	ignored := make(map[string]bool, len(cfg.Ignore))
	for _, name := range cfg.Ignore {
		ignored[name] = true
	}

	seen := make(map[string]bool, len(plan))
	for _, update := range plan {
		if seen[update.Name] {
			return fmt.Errorf("the release plan assigns more than one version to %q", update.Name)
		}
		seen[update.Name] = true

		pkg, ok := graph.Lookup(update.Name)
		if !ok {
			return fmt.Errorf("the release plan names %q, which is not a workspace package", update.Name)
		}
		if ignored[update.Name] {
			return fmt.Errorf("the release plan names %q, which the `ignore` option excludes from versioning", update.Name)
		}
		if pkg.Version != update.Version && !ranges.IsNewer(pkg.Version, update.Version) {
			logger.Warnf("Package %q moves backwards: %s -> %s", update.Name, pkg.Version, update.Version)
		}
	}

	// Planned members of a linked group must land on the same version.
	for _, group := range cfg.Linked {
		versions := make(map[string][]string)
		for _, update := range plan {
			if contains(group, update.Name) {
				versions[update.Version] = append(versions[update.Version], update.Name)
			}
		}
		if len(versions) > 1 {
			assigned := make([]string, 0, len(versions))
			for version := range versions {
				assigned = append(assigned, version)
			}
			sort.Strings(assigned)
			return fmt.Errorf(
				"the release plan assigns different versions (%s) to members of the linked group [%s]",
				strings.Join(assigned, ", "), strings.Join(group, ", "))
		}
	}

	return nil
}

// commitMessage summarizes the released versions for the git history.
func commitMessage(released []domain.VersionUpdate) string {
	parts := make([]string, 0, len(released))
	for _, update := range released {
		parts = append(parts, update.Name+"@"+update.Version)
	}
	return "chore: release " + strings.Join(parts, ", ")
}

func contains(names []string, name string) bool {
	for _, candidate := range names {
		if candidate == name {
			return true
		}
	}
	return false
}
