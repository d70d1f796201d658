// Package changelog records releases in per-package CHANGELOG.md files.
// Generators are looked up by the reference string carried in the release
// configuration, so alternative formats can be plugged in.
package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/rios0rios0/monorelease/domain"
)

// BuiltinName is the generator reference the default configuration points at.
const BuiltinName = "monorelease/changelog"

const (
	unreleasedHeading = "## [Unreleased]"
	titlePrefix       = "# "
)

// Generator turns an existing changelog document into the document for a
// newly released version. Implementations are pure string transformations.
type Generator interface {
	// Name returns the generator reference (e.g. "monorelease/changelog").
	Name() string

	// Update returns the changelog content after releasing pkg at newVersion.
	Update(content string, pkg domain.Package, newVersion string) string
}

// KeepAChangelog is the built-in generator. It promotes the
// "## [Unreleased]" section of a Keep-a-Changelog formatted document to a
// dated release heading and re-creates an empty Unreleased section above it.
type KeepAChangelog struct {
	now func() time.Time
}

// New creates the built-in generator.
func New() *KeepAChangelog {
	return &KeepAChangelog{now: time.Now}
}

func (g *KeepAChangelog) Name() string { return BuiltinName }

// Update promotes the Unreleased section to a release heading.
//
// Behaviour:
//   - Empty content produces a fresh document with a title, an empty
//     Unreleased section, and the release heading.
//   - When "## [Unreleased]" exists, it is replaced by a new empty
//     Unreleased section followed by "## [<version>] - <date>", so the
//     unreleased notes become the release's notes.
//   - Without an Unreleased heading the release heading is inserted after
//     the document title (or prepended when there is no title).
func (g *KeepAChangelog) Update(content string, pkg domain.Package, newVersion string) string {
	heading := fmt.Sprintf("## [%s] - %s", newVersion, g.now().Format("2006-01-02"))

	if strings.TrimSpace(content) == "" {
		return strings.Join([]string{
			titlePrefix + pkg.Name,
			"",
			unreleasedHeading,
			"",
			heading,
			"",
		}, "\n")
	}

	lines := strings.Split(content, "\n")

	if idx := findHeading(lines, unreleasedHeading); idx >= 0 {
		block := []string{unreleasedHeading, "", heading}
		lines = append(lines[:idx], append(block, lines[idx+1:]...)...)
		return strings.Join(lines, "\n")
	}

	insertAt := 0
	if idx := findTitle(lines); idx >= 0 {
		insertAt = idx + 1
	}
	block := []string{"", heading}
	lines = append(lines[:insertAt], append(block, lines[insertAt:]...)...)
	return strings.Join(lines, "\n")
}

// findHeading returns the index of the first line equal to heading, or -1.
func findHeading(lines []string, heading string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == heading {
			return i
		}
	}
	return -1
}

// findTitle returns the index of the document's "# " title line, or -1.
func findTitle(lines []string) int {
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), titlePrefix) {
			return i
		}
	}
	return -1
}
