package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArtifactFileName is the name of the document stored for each CIK.
const ArtifactFileName = "companyfacts.json"

// WriteFileAtomic writes data to path with all-or-nothing visibility.
//
// The content is written to a uniquely named temporary file in the same
// directory as path, synced to disk and then renamed over path. The same-dir
// requirement keeps the rename atomic within one filesystem. On any failure
// the temporary file is removed and the previous destination content, if any,
// is left intact. Returns the number of bytes written.
func WriteFileAtomic(path string, data []byte) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	n, err := tmp.Write(data)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to write temporary file: %w", err)
	}

	// Force the data to stable storage before the rename so a crash cannot
	// surface an empty or truncated destination.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, fmt.Errorf("failed to replace %s: %w", path, err)
	}

	return n, nil
}

// ArtifactPath returns the output location for one CIK's companyfacts
// document under outputRoot.
func ArtifactPath(outputRoot, cik10 string) string {
	return filepath.Join(outputRoot, "cik="+cik10, ArtifactFileName)
}

// ArtifactSize reports whether a complete artifact exists at path and, if so,
// its size in bytes.
func ArtifactSize(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return 0, false
	}
	return info.Size(), true
}
