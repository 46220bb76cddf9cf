package search

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"debug":   DEBUG,
		"":        INFO,
		"INFO":    INFO,
		"warn":    WARNING,
		"warning": WARNING,
		"error":   ERROR,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, "WARNING", WARNING.String())
}

func TestLoggerFiltersByLevel(t *testing.T) {
	dir := t.TempDir()
	l, err := InitLogger(dir, INFO)
	require.NoError(t, err)

	logDebug("hidden %d", 1)
	logInfo("visible %d", 2)
	logError("broken %s", "thing")
	CloseLogger()

	data, err := os.ReadFile(filepath.Join(dir, "search.log"))
	require.NoError(t, err)
	out := string(data)
	assert.Equal(t, filepath.Join(dir, "search.log"), l.Path())
	assert.Contains(t, out, "=== Log started at")
	assert.Contains(t, out, "[INFO] visible 2")
	assert.Contains(t, out, "[ERROR] broken thing")
	assert.NotContains(t, out, "hidden")

	// no logger installed: calls are no-ops
	logInfo("after close")
}

func TestLoggerRotatesLargeFile(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "search.log")
	require.NoError(t, os.WriteFile(logPath, []byte(strings.Repeat("x", maxLogSize+1)), 0644))
	require.NoError(t, os.WriteFile(logPath+".1", []byte("older"), 0644))

	l, err := NewLogger(dir, DEBUG)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	info, err := os.Stat(logPath + ".1")
	require.NoError(t, err)
	assert.Equal(t, int64(maxLogSize+1), info.Size())

	older, err := os.ReadFile(logPath + ".2")
	require.NoError(t, err)
	assert.Equal(t, "older", string(older))

	fresh, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Less(t, fresh.Size(), int64(1024))
}

func TestRunLogsStages(t *testing.T) {
	logDir := t.TempDir()
	_, err := InitLogger(logDir, DEBUG)
	require.NoError(t, err)
	defer CloseLogger()

	root, home := fakeSystem(t, "home/alice/special_file.txt", "srv/usr/secret_file.txt")
	report, err := Run(runOpts(root, home, &recorder{}))
	require.NoError(t, err)
	CloseLogger()

	data, err := os.ReadFile(filepath.Join(logDir, "search.log"))
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, fmt.Sprintf("Run %s: beginning stage 1", report.RunID))
	assert.Contains(t, out, "Skipping directory: "+filepath.Join(root, "srv", "usr"))
	assert.Contains(t, out, "Stage 1 found special_file.txt")
}
