package search

import (
	"path/filepath"
	"regexp"
	"strings"
)

// PatternMode selects how target names are turned into regex fragments
type PatternMode int

const (
	// SafePattern escapes regex metacharacters in every target
	SafePattern PatternMode = iota
	// RawPattern uses targets verbatim; callers keep them well-formed
	RawPattern
)

// BuildPattern returns a single regex matching any of the targets
func BuildPattern(targets []string, mode PatternMode) string {
	if mode == RawPattern {
		return ConcatenateTargets(targets)
	}
	escaped := make([]string, len(targets))
	for i, t := range targets {
		escaped[i] = regexp.QuoteMeta(t)
	}
	return ConcatenateTargets(escaped)
}

// ConcatenateTargets joins targets into a non-capturing alternation.
// Zero targets give an empty pattern and a single target is returned as is.
func ConcatenateTargets(targets []string) string {
	switch len(targets) {
	case 0:
		return ""
	case 1:
		return targets[0]
	}

	size := 4 + len(targets)
	for _, t := range targets {
		size += len(t)
	}
	var b strings.Builder
	b.Grow(size)
	b.WriteString("(?:")
	for i, t := range targets {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(t)
	}
	b.WriteByte(')')
	return b.String()
}

// compiledPatterns is the filename matcher handed to the walker
type compiledPatterns struct {
	pattern   *regexp.Regexp
	extension string
}

// preparePatterns anchors pattern to the whole filename and pairs it with an
// optional extension filter
func preparePatterns(pattern, extension string) (compiledPatterns, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return compiledPatterns{}, err
	}
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return compiledPatterns{pattern: re, extension: extension}, nil
}

// matchesPatterns checks if a file name matches the compiled patterns
func (p compiledPatterns) matchesPatterns(path string) bool {
	filename := filepath.Base(path)
	if p.extension != "" && !strings.HasSuffix(filename, p.extension) {
		return false
	}
	if p.pattern == nil {
		return true
	}
	return p.pattern.MatchString(filename)
}
