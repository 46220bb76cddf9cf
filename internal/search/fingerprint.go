package search

import (
	"fmt"
	"os"

	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
)

// MinMMapSize is the file size from which files are read through mmap
const MinMMapSize = 1024 * 1024

// Fingerprint identifies the content of a found target
type Fingerprint struct {
	Path string
	Size int64
	Hash uint64
}

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x (%d bytes)", f.Hash, f.Size)
}

// FingerprintFile hashes the whole content of path with xxhash
func FingerprintFile(path string) (Fingerprint, error) {
	var fp Fingerprint
	err := withContent(path, func(data []byte) error {
		fp = Fingerprint{Path: path, Size: int64(len(data)), Hash: xxhash.Sum64(data)}
		return nil
	})
	return fp, err
}

// FingerprintReport fingerprints every found target, in target order
func FingerprintReport(report *Report) ([]Fingerprint, error) {
	var fps []Fingerprint
	for _, res := range report.Results {
		if !res.Found {
			continue
		}
		fp, err := FingerprintFile(res.Path)
		if err != nil {
			return fps, fmt.Errorf("fingerprint %s: %w", res.Target.Name, err)
		}
		fps = append(fps, fp)
	}
	return fps, nil
}

// ReadTarget returns a copy of the content of path for downstream stages
func ReadTarget(path string) ([]byte, error) {
	var out []byte
	err := withContent(path, func(data []byte) error {
		out = make([]byte, len(data))
		copy(out, data)
		return nil
	})
	return out, err
}

// withContent passes the file content to fn, memory mapping large files.
// data is only valid during the call.
func withContent(path string, fn func(data []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}

	if info.Size() >= MinMMapSize {
		m, err := mmap.Map(f, mmap.RDONLY, 0)
		if err == nil {
			defer m.Unmap()
			return fn(m)
		}
		logDebug("Failed to mmap %s, falling back to read: %v", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return fn(data)
}
