package search

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsortedTable is returned when an exclusion table is not strictly ascending
	ErrUnsortedTable = errors.New("exclusion table is not sorted")
	// ErrInvalidProfile is returned when a platform profile breaks a table invariant
	ErrInvalidProfile = errors.New("invalid platform profile")
	// ErrUnknownProfile is returned by LookupProfile for unknown names
	ErrUnknownProfile = errors.New("unknown platform profile")
	// ErrHomeUnresolvable means the current user has no resolvable home directory
	ErrHomeUnresolvable = errors.New("home directory unresolvable")
	ErrEmptyTarget      = errors.New("empty target name")
	ErrDuplicateTarget  = errors.New("duplicate target name")
	// ErrTargetNotFound is returned by Report.Require when a target was not located
	ErrTargetNotFound = errors.New("target not found")
)

// MalformedWalkResultError reports a walk candidate that cannot belong to the
// target set. It means the walker or the pattern is misconfigured.
type MalformedWalkResultError struct {
	Path   string
	Reason string
}

func (e *MalformedWalkResultError) Error() string {
	return fmt.Sprintf("malformed walk result %q: %s", e.Path, e.Reason)
}

// Require returns the paths of the named targets in the given order, or
// ErrTargetNotFound listing every missing name.
func (r *Report) Require(names ...string) ([]string, error) {
	paths := make([]string, 0, len(names))
	var missing []string
	for _, name := range names {
		path, ok := r.Path(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		paths = append(paths, path)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrTargetNotFound, strings.Join(missing, ", "))
	}
	return paths, nil
}

// Path returns the found path for the named target
func (r *Report) Path(name string) (string, bool) {
	for _, res := range r.Results {
		if res.Target.Name == name {
			return res.Path, res.Found
		}
	}
	return "", false
}

// Missing returns the names of targets that were not found
func (r *Report) Missing() []string {
	var names []string
	for _, res := range r.Results {
		if !res.Found {
			names = append(names, res.Target.Name)
		}
	}
	return names
}
