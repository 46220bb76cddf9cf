package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foundReport(paths map[string]string, names ...string) *Report {
	r := &Report{}
	for i, name := range names {
		path, ok := paths[name]
		r.Results = append(r.Results, TargetResult{Target: Target{Name: name, Index: i}, Path: path, Found: ok})
	}
	return r
}

func TestCollectCopiesFoundTargets(t *testing.T) {
	src := t.TempDir()
	makeTree(t, src, "a/special_file.txt")
	dst := filepath.Join(t.TempDir(), "out")

	report := foundReport(map[string]string{
		"special_file.txt": filepath.Join(src, "a", "special_file.txt"),
	}, "special_file.txt", "secret_file.txt")

	copied, err := Collect(report, CollectOptions{TargetDir: dst})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dst, "special_file.txt")}, copied)

	data, err := os.ReadFile(copied[0])
	require.NoError(t, err)
	assert.Equal(t, "a/special_file.txt", string(data))
}

func TestCollectConflictPolicies(t *testing.T) {
	src := t.TempDir()
	makeTree(t, src, "special_file.txt")
	report := foundReport(map[string]string{
		"special_file.txt": filepath.Join(src, "special_file.txt"),
	}, "special_file.txt")

	dst := t.TempDir()
	existing := filepath.Join(dst, "special_file.txt")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644))

	copied, err := Collect(report, CollectOptions{TargetDir: dst, ConflictPolicy: Skip})
	require.NoError(t, err)
	assert.Equal(t, []string{""}, copied)
	assert.Zero(t, CountCollected(copied))
	data, _ := os.ReadFile(existing)
	assert.Equal(t, "old", string(data))

	copied, err = Collect(report, CollectOptions{TargetDir: dst, ConflictPolicy: Rename})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dst, "special_file_1.txt")}, copied)
	assert.Equal(t, 1, CountCollected(copied))

	copied, err = Collect(report, CollectOptions{TargetDir: dst, ConflictPolicy: Overwrite})
	require.NoError(t, err)
	assert.Equal(t, []string{existing}, copied)
	data, _ = os.ReadFile(existing)
	assert.Equal(t, "special_file.txt", string(data))
}

func TestCollectSourceInsideTargetDir(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, "special_file.txt")
	src := filepath.Join(dir, "special_file.txt")
	report := foundReport(map[string]string{"special_file.txt": src}, "special_file.txt")

	for _, policy := range []ConflictResolutionPolicy{Overwrite, Skip} {
		_, err := Collect(report, CollectOptions{TargetDir: dir, ConflictPolicy: policy})
		require.NoError(t, err)

		data, err := os.ReadFile(src)
		require.NoError(t, err)
		assert.Equal(t, "special_file.txt", string(data), policy)
	}

	copied, err := Collect(report, CollectOptions{TargetDir: dir, ConflictPolicy: Overwrite})
	require.NoError(t, err)
	assert.Equal(t, []string{src}, copied)
}

func TestCollectMissingSource(t *testing.T) {
	report := foundReport(map[string]string{"x": filepath.Join(t.TempDir(), "gone")}, "x")
	_, err := Collect(report, CollectOptions{TargetDir: t.TempDir()})
	assert.Error(t, err)
}

func TestParseConflictPolicy(t *testing.T) {
	for in, want := range map[string]ConflictResolutionPolicy{
		"":          Skip,
		"skip":      Skip,
		"Overwrite": Overwrite,
		" rename ":  Rename,
	} {
		got, err := ParseConflictPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseConflictPolicy("merge")
	assert.Error(t, err)
}
