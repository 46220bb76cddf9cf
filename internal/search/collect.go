package search

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ConflictResolutionPolicy defines how to handle file name conflicts
type ConflictResolutionPolicy int

const (
	Skip ConflictResolutionPolicy = iota
	Overwrite
	Rename
)

// ParseConflictPolicy parses skip, overwrite and rename
func ParseConflictPolicy(s string) (ConflictResolutionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return Skip, nil
	case "overwrite":
		return Overwrite, nil
	case "rename":
		return Rename, nil
	}
	return Skip, fmt.Errorf("unknown conflict policy %q", s)
}

// CollectOptions contains settings for copying found targets
type CollectOptions struct {
	TargetDir      string
	ConflictPolicy ConflictResolutionPolicy
}

// Collect copies every found target into opts.TargetDir and returns the
// destination paths, in target order. Targets skipped by the conflict policy
// get an empty destination.
func Collect(report *Report, opts CollectOptions) ([]string, error) {
	if err := os.MkdirAll(opts.TargetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}
	if err := checkDirWritable(opts.TargetDir); err != nil {
		return nil, fmt.Errorf("target directory is not writable: %w", err)
	}

	var copied []string
	for _, res := range report.Results {
		if !res.Found {
			continue
		}
		dst, err := copyFile(res.Path, opts)
		if err != nil {
			logError("Failed to collect %s: %v", res.Path, err)
			return copied, fmt.Errorf("collect %s: %w", res.Target.Name, err)
		}
		if dst == "" {
			logInfo("Skipped collecting %s: destination exists", res.Path)
		}
		copied = append(copied, dst)
	}
	return copied, nil
}

// CountCollected returns the number of destinations that received a file
func CountCollected(copied []string) int {
	n := 0
	for _, dst := range copied {
		if dst != "" {
			n++
		}
	}
	return n
}

// checkDirWritable verifies if a directory is writable
func checkDirWritable(dir string) error {
	f, err := os.CreateTemp(dir, ".write_test")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

// copyFile copies src into the target directory and returns the destination.
// A source that already is the destination is left untouched.
func copyFile(src string, opts CollectOptions) (string, error) {
	targetPath := resolveConflict(filepath.Join(opts.TargetDir, filepath.Base(src)), opts.ConflictPolicy)
	if targetPath == "" {
		return "", nil
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("failed to get source file info: %w", err)
	}
	if dstInfo, err := os.Stat(targetPath); err == nil && os.SameFile(srcInfo, dstInfo) {
		logInfo("%s is already in %s", src, opts.TargetDir)
		return targetPath, nil
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.OpenFile(targetPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("failed to create target file: %w", err)
	}

	buf := make([]byte, 32*1024)
	if _, err := io.CopyBuffer(dstFile, srcFile, buf); err != nil {
		dstFile.Close()
		return "", fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close target file: %w", err)
	}
	return targetPath, nil
}

// resolveConflict handles file name conflicts according to the policy.
// An empty result means the file should be skipped.
func resolveConflict(path string, policy ConflictResolutionPolicy) string {
	if policy == Overwrite {
		return path
	}
	if _, err := os.Stat(path); err != nil {
		return path
	}

	switch policy {
	case Skip:
		return ""
	case Rename:
		ext := filepath.Ext(path)
		base := strings.TrimSuffix(path, ext)
		for counter := 1; ; counter++ {
			newPath := fmt.Sprintf("%s_%d%s", base, counter, ext)
			if _, err := os.Stat(newPath); err != nil {
				return newPath
			}
		}
	}
	return path
}
