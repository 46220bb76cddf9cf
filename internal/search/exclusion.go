package search

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ExclusionTable is an ascending, duplicate-free list of directory names.
// Lookups use binary search, so order is checked at construction.
type ExclusionTable struct {
	names []string
}

// NewExclusionTable validates that names are strictly ascending
func NewExclusionTable(names ...string) (ExclusionTable, error) {
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			return ExclusionTable{}, fmt.Errorf("%w: %q before %q", ErrUnsortedTable, names[i-1], names[i])
		}
	}
	table := make([]string, len(names))
	copy(table, names)
	return ExclusionTable{names: table}, nil
}

// MustExclusionTable is NewExclusionTable for static tables; it panics on bad order
func MustExclusionTable(names ...string) ExclusionTable {
	table, err := NewExclusionTable(names...)
	if err != nil {
		panic(err)
	}
	return table
}

// Contains reports whether name is in the table
func (t ExclusionTable) Contains(name string) bool {
	i := sort.SearchStrings(t.names, name)
	return i < len(t.names) && t.names[i] == name
}

// Names returns a copy of the table entries
func (t ExclusionTable) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

func (t ExclusionTable) Len() int {
	return len(t.names)
}

// Validate re-checks the ordering invariant
func (t ExclusionTable) Validate() error {
	_, err := NewExclusionTable(t.names...)
	return err
}

// subsetOf reports whether every entry of t is in other
func (t ExclusionTable) subsetOf(other ExclusionTable) bool {
	for _, name := range t.names {
		if !other.Contains(name) {
			return false
		}
	}
	return true
}

// Dir is a directory visited by the walker
type Dir struct {
	Path  string
	Name  string
	Depth int // 1 for direct children of the stage root
}

// DirFilter decides whether the walker descends into a directory.
// It returns true to keep the directory.
type DirFilter func(Dir) bool

// HomeResolver returns the current user's home directory
type HomeResolver func() (string, error)

// UserHome resolves the home directory of the running user
func UserHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", fmt.Errorf("%w: %v", ErrHomeUnresolvable, err)
	}
	return filepath.Clean(home), nil
}

// StaticHome returns a resolver that always yields dir
func StaticHome(dir string) HomeResolver {
	return func() (string, error) {
		if dir == "" {
			return "", ErrHomeUnresolvable
		}
		return filepath.Clean(dir), nil
	}
}

// SkipDirNames skips directories whose base name is in table at any depth
func SkipDirNames(table ExclusionTable) DirFilter {
	if table.Len() == 0 {
		return nil
	}
	return func(d Dir) bool {
		return !table.Contains(d.Name)
	}
}

// SkipTopLevel skips directories in table only directly under the stage root
func SkipTopLevel(table ExclusionTable) DirFilter {
	if table.Len() == 0 {
		return nil
	}
	return func(d Dir) bool {
		if d.Depth > 1 {
			return true
		}
		return !table.Contains(d.Name)
	}
}

// SkipHome skips the user's home directory once it has been searched.
// The resolver is only called for directories whose parent is named usersDir.
func SkipHome(usersDir string, resolve HomeResolver) DirFilter {
	if usersDir == "" || resolve == nil {
		return nil
	}
	return func(d Dir) bool {
		if filepath.Base(filepath.Dir(d.Path)) != usersDir {
			return true
		}
		home, err := resolve()
		if err != nil {
			return true
		}
		return filepath.Clean(d.Path) != home
	}
}

// AllOf keeps a directory only if every filter keeps it
func AllOf(filters ...DirFilter) DirFilter {
	active := make([]DirFilter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(d Dir) bool {
		for _, f := range active {
			if !f(d) {
				return false
			}
		}
		return true
	}
}
