package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("WriteAndReadBack", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "cik=0000320193", "companyfacts.json")
		content := []byte(`{"cik": 320193}`)

		n, err := WriteFileAtomic(path, content)
		if err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}
		if n != len(content) {
			t.Errorf("Expected %d bytes written, got %d", len(content), n)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read back file: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("Expected content %q, got %q", content, got)
		}
	})

	t.Run("CreatesParentDirectories", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "a", "b", "c", "out.json")

		if _, err := WriteFileAtomic(path, []byte("x")); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected file to exist: %v", err)
		}
	})

	t.Run("ReplacesExistingContent", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")

		if _, err := WriteFileAtomic(path, []byte("old content")); err != nil {
			t.Fatalf("First write failed: %v", err)
		}
		if _, err := WriteFileAtomic(path, []byte("new")); err != nil {
			t.Fatalf("Second write failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read back file: %v", err)
		}
		if string(got) != "new" {
			t.Errorf("Expected replaced content, got %q", got)
		}
	})

	t.Run("NoTempFilesLeftBehind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")

		if _, err := WriteFileAtomic(path, []byte("data")); err != nil {
			t.Fatalf("WriteFileAtomic failed: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("Failed to read dir: %v", err)
		}
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".tmp") {
				t.Errorf("Temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("FailureLeavesDestinationIntact", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.json")

		if _, err := WriteFileAtomic(path, []byte("stable")); err != nil {
			t.Fatalf("Initial write failed: %v", err)
		}

		// Make the destination directory a file so the temp file cannot be
		// created; the existing destination must be untouched.
		bad := filepath.Join(dir, "out.json", "nested.json")
		if _, err := WriteFileAtomic(bad, []byte("x")); err == nil {
			t.Fatal("Expected error writing under a file path")
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read back file: %v", err)
		}
		if string(got) != "stable" {
			t.Errorf("Destination corrupted, got %q", got)
		}
	})
}

func TestArtifactPath(t *testing.T) {
	got := ArtifactPath("/data/out", "0000320193")
	want := filepath.Join("/data/out", "cik=0000320193", "companyfacts.json")
	if got != want {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestArtifactSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "companyfacts.json")

	if _, ok := ArtifactSize(path); ok {
		t.Error("Expected no artifact for missing file")
	}

	if err := os.WriteFile(path, []byte("12345"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	size, ok := ArtifactSize(path)
	if !ok {
		t.Fatal("Expected artifact to be reported present")
	}
	if size != 5 {
		t.Errorf("Expected size 5, got %d", size)
	}

	if _, ok := ArtifactSize(dir); ok {
		t.Error("Expected directory not to count as an artifact")
	}
}
