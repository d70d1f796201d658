package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rios0rios0/monorelease/domain"
	"github.com/rios0rios0/monorelease/infrastructure/matcher"
)

// ValidationError carries the complete ordered list of violations found in
// one validation pass. Validation never stops at the first problem: a single
// failing run reports everything that is wrong at once.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf(
		"invalid release configuration:\n  %s",
		strings.Join(e.Violations, "\n  "),
	)
}

// Validate checks a raw WrittenConfig against the package graph and, when
// every check passes, produces the normalized Config with all defaults
// applied. Glob expressions in `linked` and `ignore` are resolved to literal
// package names before they are stored.
//
// The second return value carries non-fatal advisories (currently only the
// legacy access value coercion); callers decide whether and how to surface
// them. Validate itself never logs.
func Validate(raw WrittenConfig, graph domain.PackageGraph) (*Config, []string, error) {
	v := &validator{cfg: defaults(), graph: graph}

	v.changelog(raw.Changelog)
	v.access(raw.Access)
	v.commit(raw.Commit)
	v.baseBranch(raw.BaseBranch)
	v.linked(raw.Linked)
	v.updateInternalDependencies(raw.UpdateInternalDependencies)
	v.ignore(raw.Ignore)
	v.cfg.BumpVersionsWithWorkspaceProtocolOnly = v.boolOption(
		"bumpVersionsWithWorkspaceProtocolOnly", raw.BumpVersionsWithWorkspaceProtocolOnly)
	v.experimental(raw.Experimental)

	if len(v.violations) > 0 {
		return nil, v.advisories, &ValidationError{Violations: v.violations}
	}
	return &v.cfg, v.advisories, nil
}

// validator threads the accumulating violation and advisory lists through
// every check.
type validator struct {
	cfg        Config
	graph      domain.PackageGraph
	violations []string
	advisories []string
}

func (v *validator) violationf(format string, args ...any) {
	v.violations = append(v.violations, fmt.Sprintf(format, args...))
}

func (v *validator) advisef(format string, args ...any) {
	v.advisories = append(v.advisories, fmt.Sprintf(format, args...))
}

func (v *validator) changelog(raw json.RawMessage) {
	if !present(raw) {
		return
	}

	var flag bool
	if err := json.Unmarshal(raw, &flag); err == nil {
		if flag {
			// Only `false` is meaningful; `true` names no generator.
			v.violationf(
				"the `changelog` option must be false, a generator reference string, or a [generator, options] tuple (got %s)",
				compact(raw))
			return
		}
		v.cfg.Changelog = ChangelogConfig{Disabled: true}
		return
	}

	var generator string
	if err := json.Unmarshal(raw, &generator); err == nil {
		v.cfg.Changelog = ChangelogConfig{Generator: generator}
		return
	}

	var tuple []json.RawMessage
	if err := json.Unmarshal(raw, &tuple); err == nil && len(tuple) == 2 {
		if err := json.Unmarshal(tuple[0], &generator); err == nil {
			var options map[string]any
			if present(tuple[1]) {
				if optErr := json.Unmarshal(tuple[1], &options); optErr != nil {
					v.violationf(
						"the second element of the `changelog` tuple must be an options object (got %s)",
						compact(tuple[1]))
					return
				}
			}
			v.cfg.Changelog = ChangelogConfig{Generator: generator, Options: options}
			return
		}
	}

	v.violationf(
		"the `changelog` option must be false, a generator reference string, or a [generator, options] tuple (got %s)",
		compact(raw))
}

func (v *validator) access(raw json.RawMessage) {
	if !present(raw) {
		return
	}

	var access string
	if err := json.Unmarshal(raw, &access); err != nil {
		v.violationf("the `access` option must be %q or %q (got %s)",
			AccessPublic, AccessRestricted, compact(raw))
		return
	}

	// Legacy value written by older releases; coerce before shape validation.
	if access == "private" {
		v.advisef("the `access` value \"private\" is deprecated, treating it as %q", AccessRestricted)
		access = AccessRestricted
	}

	if access != AccessPublic && access != AccessRestricted {
		v.violationf("the `access` option must be %q or %q (got %q)",
			AccessPublic, AccessRestricted, access)
		return
	}
	v.cfg.Access = access
}

func (v *validator) commit(raw json.RawMessage) {
	if !present(raw) {
		return
	}
	var commit bool
	if err := json.Unmarshal(raw, &commit); err != nil {
		v.violationf("the `commit` option must be a boolean (got %s)", compact(raw))
		return
	}
	v.cfg.Commit = commit
}

func (v *validator) baseBranch(raw json.RawMessage) {
	if !present(raw) {
		return
	}
	var branch string
	if err := json.Unmarshal(raw, &branch); err != nil {
		v.violationf("the `baseBranch` option must be a string (got %s)", compact(raw))
		return
	}
	v.cfg.BaseBranch = branch
}

func (v *validator) linked(raw json.RawMessage) {
	if !present(raw) {
		return
	}

	var groups [][]string
	if err := json.Unmarshal(raw, &groups); err != nil {
		v.violationf(
			"the `linked` option must be an array of arrays of package names or glob expressions (got %s)",
			compact(raw))
		return
	}

	known := v.graph.Names()
	resolved := make([][]string, 0, len(groups))
	seen := make(map[string]bool)
	duplicatedSeen := make(map[string]bool)
	var duplicated []string

	for _, group := range groups {
		matched, unmatched := matcher.Resolve(group, known)
		for _, pattern := range unmatched {
			v.violationf(
				"the package or glob expression %q specified in the `linked` option does not match any package in the workspace",
				pattern)
		}
		for _, name := range matched {
			if seen[name] {
				if !duplicatedSeen[name] {
					duplicatedSeen[name] = true
					duplicated = append(duplicated, name)
				}
				continue
			}
			seen[name] = true
		}
		resolved = append(resolved, matched)
	}

	// One violation per duplicated name, not per colliding pair.
	for _, name := range duplicated {
		v.violationf("the package %q can only belong to one `linked` group", name)
	}

	v.cfg.Linked = resolved
}

func (v *validator) updateInternalDependencies(raw json.RawMessage) {
	if !present(raw) {
		return
	}
	var level string
	if err := json.Unmarshal(raw, &level); err != nil || (level != UpdateInternalPatch && level != UpdateInternalMinor) {
		v.violationf("the `updateInternalDependencies` option must be %q or %q (got %s)",
			UpdateInternalPatch, UpdateInternalMinor, compact(raw))
		return
	}
	v.cfg.UpdateInternalDependencies = level
}

func (v *validator) ignore(raw json.RawMessage) {
	if !present(raw) {
		return
	}

	var patterns []string
	if err := json.Unmarshal(raw, &patterns); err != nil {
		v.violationf("the `ignore` option must be an array of package names or glob expressions (got %s)",
			compact(raw))
		return
	}

	matched, unmatched := matcher.Resolve(patterns, v.graph.Names())
	for _, pattern := range unmatched {
		v.violationf(
			"the package or glob expression %q specified in the `ignore` option does not match any package in the workspace",
			pattern)
	}

	// The ignore set must be closed under "is depended on by": a dependent
	// left unignored would keep referencing a version that never gets bumped.
	// Membership is tested against the list as the author wrote it, not the
	// glob-resolved set, and only direct dependents are checked.
	written := make(map[string]bool, len(patterns))
	for _, pattern := range patterns {
		written[pattern] = true
	}
	dependents := domain.BuildDependentsGraph(v.graph)
	for _, ignored := range matched {
		for _, dependent := range dependents[ignored] {
			if written[dependent] {
				continue
			}
			v.violationf(
				"the package %q depends on the ignored package %q but is not ignored itself; add %q to the `ignore` option or stop ignoring %q",
				dependent, ignored, dependent, ignored)
		}
	}

	v.cfg.Ignore = matched
}

func (v *validator) experimental(raw json.RawMessage) {
	if !present(raw) {
		return
	}

	var flags struct {
		OnlyUpdatePeerDependentsWhenOutOfRange json.RawMessage `json:"onlyUpdatePeerDependentsWhenOutOfRange"`
		UpdateInternalDependents               json.RawMessage `json:"updateInternalDependents"`
	}
	if err := json.Unmarshal(raw, &flags); err != nil {
		v.violationf("the `experimental` option must be an object of boolean flags (got %s)", compact(raw))
		return
	}

	v.cfg.Experimental.OnlyUpdatePeerDependentsWhenOutOfRange = v.boolOption(
		"experimental.onlyUpdatePeerDependentsWhenOutOfRange",
		flags.OnlyUpdatePeerDependentsWhenOutOfRange)
	v.cfg.Experimental.UpdateInternalDependents = v.boolOption(
		"experimental.updateInternalDependents",
		flags.UpdateInternalDependents)
}

// boolOption validates an optional boolean field, returning false (the
// default) when the field is unset or malformed.
func (v *validator) boolOption(name string, raw json.RawMessage) bool {
	if !present(raw) {
		return false
	}
	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		v.violationf("the `%s` option must be a boolean (got %s)", name, compact(raw))
		return false
	}
	return value
}

// compact renders a raw JSON fragment on a single line for error messages.
func compact(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return strings.TrimSpace(string(raw))
	}
	return buf.String()
}
