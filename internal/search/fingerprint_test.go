package search

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/cespare/xxhash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()
	small := filepath.Join(dir, "small")
	require.NoError(t, os.WriteFile(small, []byte("hello"), 0644))

	fp, err := FingerprintFile(small)
	require.NoError(t, err)
	assert.Equal(t, int64(5), fp.Size)
	assert.Equal(t, xxhash.Sum64([]byte("hello")), fp.Hash)
	assert.Equal(t, small, fp.Path)
}

func TestFingerprintLargeFileUsesSameDigest(t *testing.T) {
	dir := t.TempDir()
	large := filepath.Join(dir, "large")
	data := bytes.Repeat([]byte("0123456789abcdef"), MinMMapSize/16+3)
	require.NoError(t, os.WriteFile(large, data, 0644))

	fp, err := FingerprintFile(large)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), fp.Size)
	assert.Equal(t, xxhash.Sum64(data), fp.Hash)

	read, err := ReadTarget(large)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, read))
}

func TestFingerprintErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := FingerprintFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	_, err = FingerprintFile(dir)
	assert.Error(t, err)
}

func TestFingerprintReport(t *testing.T) {
	dir := t.TempDir()
	makeTree(t, dir, "special_file.txt")
	report := foundReport(map[string]string{
		"special_file.txt": filepath.Join(dir, "special_file.txt"),
	}, "special_file.txt", "secret_file.txt")

	fps, err := FingerprintReport(report)
	require.NoError(t, err)
	require.Len(t, fps, 1)
	assert.Equal(t, xxhash.Sum64([]byte("special_file.txt")), fps[0].Hash)
}

func TestReadTargetEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0644))
	data, err := ReadTarget(path)
	require.NoError(t, err)
	assert.Empty(t, data)
}
