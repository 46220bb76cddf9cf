package search

// Accumulator records the first path found for each target.
// A slot is set at most once; later matches for the same target are dropped.
type Accumulator struct {
	targets TargetSet
	paths   map[Target]string
}

// NewAccumulator creates an empty accumulator for targets
func NewAccumulator(targets TargetSet) *Accumulator {
	return &Accumulator{
		targets: targets,
		paths:   make(map[Target]string, targets.Len()),
	}
}

// Record stores path for t unless a path is already stored.
// It reports whether the slot was filled by this call.
func (a *Accumulator) Record(t Target, path string) bool {
	if _, ok := a.paths[t]; ok {
		return false
	}
	a.paths[t] = path
	return true
}

// Lookup returns the stored path for t
func (a *Accumulator) Lookup(t Target) (string, bool) {
	path, ok := a.paths[t]
	return path, ok
}

// Complete reports whether every target has a path
func (a *Accumulator) Complete() bool {
	return len(a.paths) == a.targets.Len()
}

// Found returns the number of filled slots
func (a *Accumulator) Found() int {
	return len(a.paths)
}

// Missing returns the targets without a path, in target order
func (a *Accumulator) Missing() []Target {
	var missing []Target
	for _, t := range a.targets.targets {
		if _, ok := a.paths[t]; !ok {
			missing = append(missing, t)
		}
	}
	return missing
}

// Results returns one entry per target, in target order
func (a *Accumulator) Results() []TargetResult {
	results := make([]TargetResult, 0, a.targets.Len())
	for _, t := range a.targets.targets {
		path, ok := a.paths[t]
		results = append(results, TargetResult{Target: t, Path: path, Found: ok})
	}
	return results
}
