package search

import (
	"fmt"
	"time"
)

// DefaultTargets are searched for when no target names are given
var DefaultTargets = []string{"special_file.txt", "secret_file.txt"}

// DefaultMaxResults caps the number of matches consumed per stage
const DefaultMaxResults = 4096

// Target is a filename to locate and its position in the target list
type Target struct {
	Name  string
	Index int
}

func (t Target) String() string {
	return t.Name
}

// TargetSet is an ordered list of distinct target filenames
type TargetSet struct {
	targets []Target
}

// NewTargetSet validates names and builds an ordered target set.
// Empty and duplicate names are rejected since matching is by filename only.
func NewTargetSet(names []string) (TargetSet, error) {
	seen := make(map[string]bool, len(names))
	targets := make([]Target, 0, len(names))
	for i, name := range names {
		if name == "" {
			return TargetSet{}, fmt.Errorf("target %d: %w", i, ErrEmptyTarget)
		}
		if seen[name] {
			return TargetSet{}, fmt.Errorf("target %q: %w", name, ErrDuplicateTarget)
		}
		seen[name] = true
		targets = append(targets, Target{Name: name, Index: i})
	}
	return TargetSet{targets: targets}, nil
}

// Len returns the number of targets
func (s TargetSet) Len() int {
	return len(s.targets)
}

// Targets returns the targets in report order
func (s TargetSet) Targets() []Target {
	out := make([]Target, len(s.targets))
	copy(out, s.targets)
	return out
}

// Names returns the target filenames in report order
func (s TargetSet) Names() []string {
	names := make([]string, len(s.targets))
	for i, t := range s.targets {
		names[i] = t.Name
	}
	return names
}

// Match returns the first target whose name equals filename
func (s TargetSet) Match(filename string) (Target, bool) {
	for _, t := range s.targets {
		if t.Name == filename {
			return t, true
		}
	}
	return Target{}, false
}

// Options contains search parameters for a run
type Options struct {
	Targets      []string // Target filenames, DefaultTargets when empty
	Profile      PlatformProfile
	Root         string       // Filesystem root for the broad stages, Profile.Root when empty
	Home         HomeResolver // Resolves the user's home directory, UserHome when nil
	HomeOnly     bool         // Run the home stage alone
	ShortCircuit bool         // Stop once every target is found
	MaxResults   int          // Matches consumed per stage
	Extension    string       // Optional filename extension filter, without dot
	RawPatterns  bool         // Use target names as regex fragments
	Observer     Observer
}

// TargetResult is the outcome for one target
type TargetResult struct {
	Target Target
	Path   string
	Found  bool
}

func (r TargetResult) String() string {
	if !r.Found {
		return fmt.Sprintf("%s: Not found", r.Target.Name)
	}
	return fmt.Sprintf("%s: %s", r.Target.Name, r.Path)
}

// StageResult describes one executed (or skipped) stage
type StageResult struct {
	Ordinal int
	Name    string
	Root    string
	Started time.Duration // Elapsed since run start
	Ended   time.Duration
	Matches int    // Candidates consumed from the walk
	Skipped bool   // Stage had no usable root
	Reason  string // Why the stage was skipped
}

// Report is the final result of a run
type Report struct {
	RunID      string
	Results    []TargetResult
	Stages     []StageResult
	AllFoundAt *time.Duration // Elapsed time when every target was first found
	Elapsed    time.Duration
}
