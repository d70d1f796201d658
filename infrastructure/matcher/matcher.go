// Package matcher resolves literal package names and glob expressions
// against the set of known workspace package names.
package matcher

import (
	"strings"

	"github.com/gobwas/glob"
)

// Resolve matches every pattern against knownNames and returns the known
// names matched by at least one pattern (in knownNames order) together with
// the patterns, in their original order, that matched nothing.
//
// Patterns follow shell glob semantics scoped to npm-style names: `*` matches
// any run of characters except `/`, `**` crosses `/` (so `@scope/*` matches
// only packages in that scope while `@scope/**` would too, and `*` alone never
// matches a scoped name). A pattern without glob metacharacters is a literal
// name. Resolve is pure and idempotent: feeding the matched names back in as
// literal patterns yields the same set.
func Resolve(patterns, knownNames []string) (matched, unmatched []string) {
	matchedSet := make(map[string]bool)
	for _, pattern := range patterns {
		hit := false
		match := compile(pattern)
		for _, name := range knownNames {
			if match(name) {
				matchedSet[name] = true
				hit = true
			}
		}
		if !hit {
			unmatched = append(unmatched, pattern)
		}
	}

	for _, name := range knownNames {
		if matchedSet[name] {
			matched = append(matched, name)
		}
	}
	return matched, unmatched
}

// compile turns a pattern into a predicate over package names. Literal
// patterns and patterns that fail to compile as globs match by equality.
func compile(pattern string) func(string) bool {
	if !strings.ContainsAny(pattern, "*?[]{}") {
		return func(name string) bool { return name == pattern }
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return func(name string) bool { return name == pattern }
	}
	return g.Match
}
