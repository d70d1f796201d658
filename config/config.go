// Package config validates and normalizes the release-policy configuration:
// which packages are versioned in lockstep, which are excluded from
// versioning, and how releases are recorded.
package config

import (
	"fmt"

	"github.com/rios0rios0/monorelease/domain"
)

// BuiltinChangelogGenerator is the generator reference used when the
// `changelog` option is unset.
const BuiltinChangelogGenerator = "monorelease/changelog"

// Access values for published packages.
const (
	AccessPublic     = "public"
	AccessRestricted = "restricted"
)

// Bump levels for internal dependency ranges.
const (
	UpdateInternalPatch = "patch"
	UpdateInternalMinor = "minor"
)

// ChangelogConfig describes how changelogs are produced: disabled entirely,
// or a generator reference plus generator-specific options.
type ChangelogConfig struct {
	Disabled  bool
	Generator string
	Options   map[string]any
}

// ExperimentalOptions are unstable flags that may change in a patch release.
type ExperimentalOptions struct {
	OnlyUpdatePeerDependentsWhenOutOfRange bool `json:"onlyUpdatePeerDependentsWhenOutOfRange"`
	UpdateInternalDependents               bool `json:"updateInternalDependents"`
}

// Config is the normalized, validated release policy for one run. It is
// produced exactly once per invocation and treated as immutable afterwards.
// Linked groups and the ignore set hold literal package names only; glob
// expressions are resolved during validation.
type Config struct {
	Changelog                             ChangelogConfig
	Access                                string
	Commit                                bool
	Linked                                [][]string
	BaseBranch                            string
	UpdateInternalDependencies            string
	Ignore                                []string
	BumpVersionsWithWorkspaceProtocolOnly bool
	Experimental                          ExperimentalOptions
}

// defaults returns the documented default for every unset field.
func defaults() Config {
	return Config{
		Changelog:                  ChangelogConfig{Generator: BuiltinChangelogGenerator},
		Access:                     AccessRestricted,
		Commit:                     false,
		Linked:                     [][]string{},
		BaseBranch:                 "master",
		UpdateInternalDependencies: UpdateInternalPatch,
		Ignore:                     []string{},
	}
}

// Default is the process-wide fallback Config: the defaults validated against
// a degenerate single-root package graph. Deriving it can never fail.
var Default = mustDefault()

func mustDefault() Config {
	graph := domain.PackageGraph{
		Root: domain.Package{Name: "root", Version: "0.0.0", Dir: "."},
		Tool: "root",
	}
	cfg, _, err := Validate(WrittenConfig{}, graph)
	if err != nil {
		panic(fmt.Sprintf("config: default configuration failed validation: %v", err))
	}
	return *cfg
}
