package search

import (
	"time"

	"github.com/google/uuid"
)

// Observer is notified as a run progresses
type Observer interface {
	StageStarted(stage Stage, elapsed time.Duration)
	MatchRecorded(stage Stage, target Target, path string)
	StageFinished(result StageResult)
	AllFound(elapsed time.Duration)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) StageStarted(Stage, time.Duration)   {}
func (NopObserver) MatchRecorded(Stage, Target, string) {}
func (NopObserver) StageFinished(StageResult)           {}
func (NopObserver) AllFound(time.Duration)              {}

// Run searches for the targets stage by stage and returns the final report.
// With ShortCircuit the run ends after the stage in which the last target was
// found; otherwise every stage runs and AllFoundAt records when it could have
// stopped. Invariant violations abort the run without a report.
func Run(opts Options) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()

	names := opts.Targets
	if len(names) == 0 {
		names = DefaultTargets
	}
	targets, err := NewTargetSet(names)
	if err != nil {
		return nil, err
	}
	profile := opts.Profile
	if profile.Name == "" {
		profile = CurrentProfile()
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	mode := SafePattern
	if opts.RawPatterns {
		mode = RawPattern
	}
	exec := &Executor{
		Targets:    targets,
		Pattern:    BuildPattern(targets.Names(), mode),
		Extension:  opts.Extension,
		Exhaustive: !opts.ShortCircuit,
		MaxResults: opts.MaxResults,
		Observer:   observer,
	}
	logInfo("Run %s: searching for %v with profile %s", runID, targets.Names(), profile.Name)

	stages := Sequencer{Profile: profile, Root: opts.Root, Home: opts.Home}.Stages(opts.HomeOnly)
	acc := NewAccumulator(targets)
	report := &Report{RunID: runID}

	for _, stage := range stages {
		result := StageResult{
			Ordinal: stage.Ordinal,
			Name:    stage.Name,
			Root:    stage.Root,
			Started: time.Since(start),
		}
		if stage.Skipped != "" {
			result.Skipped = true
			result.Reason = stage.Skipped
			result.Ended = result.Started
			report.Stages = append(report.Stages, result)
			observer.StageFinished(result)
			continue
		}

		logInfo("Run %s: beginning stage %d (%s) at %s", runID, stage.Ordinal, stage.Root, result.Started)
		observer.StageStarted(stage, result.Started)
		result.Matches, err = exec.Execute(stage, acc)
		if err != nil {
			logError("Run %s: stage %d aborted: %v", runID, stage.Ordinal, err)
			return nil, err
		}
		result.Ended = time.Since(start)
		report.Stages = append(report.Stages, result)
		logInfo("Run %s: ending stage %d at %s with %d matches", runID, stage.Ordinal, result.Ended, result.Matches)
		observer.StageFinished(result)

		if acc.Complete() {
			if report.AllFoundAt == nil {
				at := result.Ended
				report.AllFoundAt = &at
				observer.AllFound(at)
			}
			if opts.ShortCircuit {
				break
			}
		}
	}

	report.Results = acc.Results()
	report.Elapsed = time.Since(start)
	for _, name := range report.Missing() {
		logWarning("Run %s: %s not found", runID, name)
	}
	return report, nil
}
