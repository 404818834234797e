package archive

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/snonux/bopomofo/internal/testutil"
)

func TestArchiveDir(t *testing.T) {
	tmpDir := t.TempDir()

	// Create an audio directory with some clips
	audioDir := filepath.Join(tmpDir, "audio")
	testutil.CreateTestFile(t, filepath.Join(audioDir, "ㄅ.mp3"), []byte("clip"))
	testutil.CreateTestFile(t, filepath.Join(audioDir, "sub", "tone1.mp3"), []byte("clip"))

	archivedPath, err := ArchiveDir(audioDir)
	if err != nil {
		t.Fatalf("ArchiveDir failed: %v", err)
	}

	testutil.AssertFileNotExists(t, audioDir)

	if filepath.Dir(archivedPath) != filepath.Join(tmpDir, "archive") {
		t.Errorf("Archive placed in %s", filepath.Dir(archivedPath))
	}

	// Verify the name is audio-YYYYMMDD-HHMMSS
	archivedName := filepath.Base(archivedPath)
	if !strings.HasPrefix(archivedName, "audio-") {
		t.Errorf("Archived directory name doesn't start with 'audio-': %s", archivedName)
	}
	if parts := strings.Split(archivedName, "-"); len(parts) != 3 {
		t.Errorf("Invalid archive name format: %s", archivedName)
	}

	testutil.AssertFileContent(t, filepath.Join(archivedPath, "ㄅ.mp3"), []byte("clip"))
	testutil.AssertFileExists(t, filepath.Join(archivedPath, "sub", "tone1.mp3"))
}

func TestArchiveDir_NonExistentDirectory(t *testing.T) {
	_, err := ArchiveDir(filepath.Join(t.TempDir(), "nonexistent"))
	if !errors.Is(err, ErrNothingToArchive) {
		t.Errorf("Expected ErrNothingToArchive, got: %v", err)
	}
}

func TestArchiveDir_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "audio")
	testutil.CreateTestFile(t, file, []byte("x"))

	_, err := ArchiveDir(file)
	if err == nil || !strings.Contains(err.Error(), "not a directory") {
		t.Errorf("Expected 'not a directory' error, got: %v", err)
	}
}

func TestArchiveDir_MultipleArchives(t *testing.T) {
	tmpDir := t.TempDir()
	audioDir := filepath.Join(tmpDir, "audio")

	var paths []string
	for i := 0; i < 2; i++ {
		if err := os.MkdirAll(audioDir, 0755); err != nil {
			t.Fatalf("Failed to create audio directory: %v", err)
		}
		path, err := ArchiveDir(audioDir)
		if err != nil {
			t.Fatalf("Archive %d failed: %v", i+1, err)
		}
		paths = append(paths, path)
	}

	if paths[0] == paths[1] {
		t.Errorf("Archives share path %s", paths[0])
	}

	entries, err := os.ReadDir(filepath.Join(tmpDir, "archive"))
	if err != nil {
		t.Fatalf("Failed to read archive directory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 archives, got %d", len(entries))
	}
}
