package search

// Stage is one configured pass of the search
type Stage struct {
	Ordinal       int
	Name          string
	Root          string
	Filter        DirFilter
	IncludeHidden bool
	Skipped       string // Non-empty when the stage has no usable root
}

const (
	StageHome       = "home"
	StageBroad      = "broad"
	StageExhaustive = "exhaustive"
)

// Sequencer builds the ordered stages for a run
type Sequencer struct {
	Profile PlatformProfile
	Root    string
	Home    HomeResolver
}

// Stages returns the search passes ordered from cheapest and most likely to
// most exhaustive. In home-only mode only the first stage is returned.
func (s Sequencer) Stages(homeOnly bool) []Stage {
	root := s.Root
	if root == "" {
		root = s.Profile.Root
	}
	resolve := s.Home
	if resolve == nil {
		resolve = UserHome
	}

	home := Stage{Ordinal: 1, Name: StageHome, IncludeHidden: true}
	dir, err := resolve()
	if err != nil {
		logWarning("Home stage skipped: %v", err)
		home.Skipped = err.Error()
		// Nothing to skip in later stages either.
		resolve = nil
	} else {
		home.Root = dir
	}
	if homeOnly {
		return []Stage{home}
	}

	skipHome := SkipHome(s.Profile.UsersDir, resolve)
	return []Stage{
		home,
		{
			Ordinal: 2,
			Name:    StageBroad,
			Root:    root,
			Filter: AllOf(
				SkipDirNames(s.Profile.DirNames),
				SkipTopLevel(s.Profile.TopLevel),
				skipHome,
			),
		},
		{
			Ordinal:       3,
			Name:          StageExhaustive,
			Root:          root,
			Filter:        AllOf(SkipTopLevel(s.Profile.AlwaysSkip), skipHome),
			IncludeHidden: true,
		},
	}
}
