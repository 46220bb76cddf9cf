package search

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequencerStages(t *testing.T) {
	root := filepath.Join("/", "fsroot")
	home := filepath.Join(root, "home", "alice")
	seq := Sequencer{Profile: LinuxProfile, Root: root, Home: StaticHome(home)}

	stages := seq.Stages(false)
	require.Len(t, stages, 3)

	assert.Equal(t, 1, stages[0].Ordinal)
	assert.Equal(t, StageHome, stages[0].Name)
	assert.Equal(t, home, stages[0].Root)
	assert.True(t, stages[0].IncludeHidden)
	assert.Nil(t, stages[0].Filter)

	broad := stages[1]
	assert.Equal(t, StageBroad, broad.Name)
	assert.Equal(t, root, broad.Root)
	assert.False(t, broad.IncludeHidden)
	assert.False(t, broad.Filter(Dir{Path: filepath.Join(root, "tmp"), Name: "tmp", Depth: 1}))
	assert.False(t, broad.Filter(Dir{Path: filepath.Join(root, "srv", "usr"), Name: "usr", Depth: 2}))
	assert.False(t, broad.Filter(Dir{Path: home, Name: "alice", Depth: 2}))
	assert.True(t, broad.Filter(Dir{Path: filepath.Join(root, "srv", "tmp"), Name: "tmp", Depth: 2}))

	exhaustive := stages[2]
	assert.Equal(t, StageExhaustive, exhaustive.Name)
	assert.True(t, exhaustive.IncludeHidden)
	assert.False(t, exhaustive.Filter(Dir{Path: filepath.Join(root, "dev"), Name: "dev", Depth: 1}))
	assert.False(t, exhaustive.Filter(Dir{Path: home, Name: "alice", Depth: 2}))
	assert.True(t, exhaustive.Filter(Dir{Path: filepath.Join(root, "tmp"), Name: "tmp", Depth: 1}))
	assert.True(t, exhaustive.Filter(Dir{Path: filepath.Join(root, "srv", "usr"), Name: "usr", Depth: 2}))
}

func TestSequencerHomeOnly(t *testing.T) {
	seq := Sequencer{Profile: LinuxProfile, Root: "/", Home: StaticHome("/home/alice")}
	stages := seq.Stages(true)
	require.Len(t, stages, 1)
	assert.Equal(t, StageHome, stages[0].Name)
}

func TestSequencerDefaultsRootFromProfile(t *testing.T) {
	stages := Sequencer{Profile: DarwinProfile, Home: StaticHome("/Users/a")}.Stages(false)
	assert.Equal(t, "/", stages[1].Root)
}

func TestSequencerHomeUnresolvable(t *testing.T) {
	root := filepath.Join("/", "fsroot")
	seq := Sequencer{Profile: LinuxProfile, Root: root, Home: StaticHome("")}

	stages := seq.Stages(false)
	require.Len(t, stages, 3)
	assert.NotEmpty(t, stages[0].Skipped)
	assert.Empty(t, stages[0].Root)

	// with no home to skip, home-like directories stay visible
	someHome := filepath.Join(root, "home", "alice")
	assert.True(t, stages[1].Filter(Dir{Path: someHome, Name: "alice", Depth: 2}))
	assert.True(t, stages[2].Filter(Dir{Path: someHome, Name: "alice", Depth: 2}))
}

func TestSequencerOtherProfileHasNoFilters(t *testing.T) {
	stages := Sequencer{Profile: OtherProfile, Root: "/", Home: StaticHome("/u/a")}.Stages(false)
	assert.Nil(t, stages[1].Filter)
	assert.Nil(t, stages[2].Filter)
}
