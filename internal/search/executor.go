package search

import (
	"fmt"
	"path/filepath"
)

// Executor runs single stages against one target set
type Executor struct {
	Targets    TargetSet
	Pattern    string
	Extension  string
	Exhaustive bool // Keep consuming after every target is found
	MaxResults int
	Observer   Observer
}

// Execute walks one stage and feeds every candidate into acc. It returns the
// number of candidates consumed. Unless Exhaustive is set the walk stops as
// soon as acc is complete. A candidate that is not a member of the target set
// aborts the stage with a *MalformedWalkResultError.
func (e *Executor) Execute(stage Stage, acc *Accumulator) (int, error) {
	observer := e.Observer
	if observer == nil {
		observer = NopObserver{}
	}
	seq, err := Walk(WalkRequest{
		Root:          stage.Root,
		Pattern:       e.Pattern,
		Extension:     e.Extension,
		Filter:        stage.Filter,
		IncludeHidden: stage.IncludeHidden,
		MaxResults:    e.MaxResults,
	})
	if err != nil {
		return 0, fmt.Errorf("stage %d: invalid pattern: %w", stage.Ordinal, err)
	}

	consumed := 0
	for path := range seq {
		consumed++
		name := filepath.Base(path)
		if name == "" || name == "." || name == string(filepath.Separator) {
			return consumed, &MalformedWalkResultError{Path: path, Reason: "no file name"}
		}
		target, ok := e.Targets.Match(name)
		if !ok {
			return consumed, &MalformedWalkResultError{Path: path, Reason: "file name is not a target"}
		}
		if acc.Record(target, path) {
			logInfo("Stage %d found %s at %s", stage.Ordinal, target.Name, path)
			observer.MatchRecorded(stage, target, path)
		} else {
			logDebug("Stage %d ignored duplicate %s at %s", stage.Ordinal, target.Name, path)
		}
		if !e.Exhaustive && acc.Complete() {
			break
		}
	}
	return consumed, nil
}
