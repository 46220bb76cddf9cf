package search

import (
	"io/fs"
	"iter"
	"path/filepath"
	"strings"
)

// WalkRequest configures one recursive directory walk
type WalkRequest struct {
	Root          string
	Pattern       string // Regex matched against the whole file name
	Extension     string // Optional extension filter, without dot
	Filter        DirFilter
	IncludeHidden bool
	MaxResults    int // Zero means unlimited
}

// Walk returns a lazy sequence of file paths under req.Root whose names match
// the request. The directory tree is only read while the consumer pulls, and
// the walk ends once MaxResults paths have been yielded. Unreadable
// directories are skipped.
func Walk(req WalkRequest) (iter.Seq[string], error) {
	patterns, err := preparePatterns(req.Pattern, req.Extension)
	if err != nil {
		return nil, err
	}
	root := filepath.Clean(req.Root)

	return func(yield func(string) bool) {
		yielded := 0
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != root {
					logDebug("Failed to read directory %s: %v", path, err)
					return filepath.SkipDir
				}
				return nil
			}
			if path == root {
				return nil
			}

			name := d.Name()
			if d.IsDir() {
				if shouldSkipDirectory(root, path, name, req) {
					return filepath.SkipDir
				}
				return nil
			}

			if !req.IncludeHidden && strings.HasPrefix(name, ".") {
				return nil
			}
			if !patterns.matchesPatterns(path) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			yielded++
			if req.MaxResults > 0 && yielded >= req.MaxResults {
				logDebug("Result cap %d reached under %s", req.MaxResults, root)
				return filepath.SkipAll
			}
			return nil
		})
	}, nil
}

// shouldSkipDirectory checks if the walker should not descend into path
func shouldSkipDirectory(root, path, name string, req WalkRequest) bool {
	if !req.IncludeHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if req.Filter == nil {
		return false
	}
	if req.Filter(Dir{Path: path, Name: name, Depth: depth(root, path)}) {
		return false
	}
	logDebug("Skipping directory: %s", path)
	return true
}

// depth returns how many levels path is below root
func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
