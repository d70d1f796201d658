// Package ranges parses npm-style semver ranges and classifies their shape,
// so a replacement range can be generated with the same operator prefix after
// a version bump.
package ranges

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	gosemver "golang.org/x/mod/semver"
)

// InvalidRangeError reports a declared dependency range that cannot be parsed
// as a semver range. It is a hard input-data defect and is never recovered.
type InvalidRangeError struct {
	Range string
	Err   error
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid semver range %q: %v", e.Range, e.Err)
}

func (e *InvalidRangeError) Unwrap() error { return e.Err }

// Range is a parsed semver range.
type Range struct {
	raw        string
	any        bool
	constraint *semver.Constraints
}

// String returns the range text as it was declared.
func (r Range) String() string { return r.raw }

// IsAny reports whether the range matches every version. A declared `*`, `x`,
// `X`, or empty range is an explicit "any version" and is never rewritten.
func (r Range) IsAny() bool { return r.any }

// Check reports whether a bare version satisfies the range.
func (r Range) Check(version string) bool {
	if r.any {
		return true
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return false
	}
	return r.constraint.Check(v)
}

// Parse parses a semver range declaration. It returns an *InvalidRangeError
// when the text is not valid range syntax.
func Parse(text string) (Range, error) {
	trimmed := strings.TrimSpace(text)
	switch trimmed {
	case "", "*", "x", "X":
		return Range{raw: text, any: true}, nil
	}

	constraint, err := semver.NewConstraint(trimmed)
	if err != nil {
		return Range{}, &InvalidRangeError{Range: text, Err: err}
	}
	return Range{raw: text, constraint: constraint}, nil
}

// RangeType returns the operator prefix that determines a range's shape:
// empty for an exact pin, "^" for caret-compatible, "~" for tilde-compatible,
// or the literal comparator characters otherwise. Prepending the returned
// prefix to a bare version reproduces an equivalent range shape.
func RangeType(declared string) string {
	switch {
	case strings.HasPrefix(declared, "^"):
		return "^"
	case strings.HasPrefix(declared, "~"):
		return "~"
	case strings.HasPrefix(declared, ">="):
		return ">="
	case strings.HasPrefix(declared, "<="):
		return "<="
	case strings.HasPrefix(declared, ">"):
		return ">"
	case strings.HasPrefix(declared, "<"):
		return "<"
	default:
		return ""
	}
}

// IsNewer reports whether next is a strictly newer version than current.
// Both are bare versions; when either is not valid semver the comparison
// falls back to lexicographic order.
func IsNewer(current, next string) bool {
	c := normalizeVersion(current)
	n := normalizeVersion(next)

	if gosemver.IsValid(c) && gosemver.IsValid(n) {
		return gosemver.Compare(n, c) > 0
	}
	return next > current
}

// normalizeVersion ensures the 'v' prefix golang.org/x/mod/semver expects.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
