// Package rewriter rewrites the dependency ranges of one package manifest
// after a set of packages has been assigned new versions. The shape of every
// declaration survives the rewrite: an exact pin stays exact, a caret range
// stays caret, a workspace-scoped range keeps its marker, and declarations
// that intentionally float (`*`) or point at the filesystem (`link:`,
// `file:`) are left alone.
package rewriter

import (
	"strings"

	"github.com/rios0rios0/monorelease/domain"
	"github.com/rios0rios0/monorelease/infrastructure/ranges"
)

// WorkspaceMarker scopes a range to a sibling workspace package instead of a
// registry. The marker is independent of the numeric range that follows it.
const WorkspaceMarker = "workspace:"

// protocolPrefixes pin a dependency to a local filesystem location; such
// declarations carry no version and are never rewritten.
var protocolPrefixes = []string{"link:", "file:"}

// Rewrite returns a copy of the manifest in which every dependency entry
// matching an update by exact name is replaced by a range of the same shape
// around the new version. The input manifest is never mutated. The caller
// remains responsible for bumping the owning package's own version.
//
// A declared range that fails to parse yields a *ranges.InvalidRangeError;
// a malformed manifest is an input-data defect, not something to skip over.
func Rewrite(m domain.Manifest, updates []domain.VersionUpdate) (domain.Manifest, error) {
	out := m.Clone()

	for _, depType := range domain.DependencyTypes() {
		for _, update := range updates {
			declared, ok := out.Range(depType, update.Name)
			if !ok {
				continue
			}

			replacement, changed, err := rewriteRange(declared, update.Version)
			if err != nil {
				return domain.Manifest{}, err
			}
			if changed {
				out.Deps[depType][update.Name] = replacement
			}
		}
	}

	return out, nil
}

// rewriteRange produces the replacement for a single declared range, or
// reports changed=false when the declaration must be preserved verbatim.
func rewriteRange(declared, newVersion string) (replacement string, changed bool, err error) {
	if isProtocolPinned(declared) {
		return "", false, nil
	}

	inner := declared
	workspaceScoped := strings.HasPrefix(declared, WorkspaceMarker)
	if workspaceScoped {
		inner = strings.TrimPrefix(declared, WorkspaceMarker)
	}

	rng, err := ranges.Parse(inner)
	if err != nil {
		return "", false, err
	}
	if rng.IsAny() {
		// The author asked for unconstrained matching; keep it.
		return "", false, nil
	}

	replacement = ranges.RangeType(inner) + newVersion
	if workspaceScoped {
		replacement = WorkspaceMarker + replacement
	}
	return replacement, true, nil
}

func isProtocolPinned(declared string) bool {
	for _, prefix := range protocolPrefixes {
		if strings.HasPrefix(declared, prefix) {
			return true
		}
	}
	return false
}
