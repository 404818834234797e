package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateSizedFile creates a file of exactly size bytes
func CreateSizedFile(t *testing.T, path string, size int) {
	t.Helper()
	CreateTestFile(t, path, Payload(size))
}

// Payload returns size bytes that look like the start of an mp3 frame
func Payload(size int) []byte {
	data := bytes.Repeat([]byte{0x55}, size)
	header := []byte{0xFF, 0xFB, 0x90, 0x00}
	copy(data, header)
	return data
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileSize checks that a file exists with the given size
func AssertFileSize(t *testing.T, path string, size int64) {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("Expected file %s: %v", path, err)
		return
	}
	if info.Size() != size {
		t.Errorf("File %s has %d bytes, want %d", path, info.Size(), size)
	}
}

// AssertFileContent checks if a file has expected content
func AssertFileContent(t *testing.T, path string, expected []byte) {
	t.Helper()

	actual, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !bytes.Equal(actual, expected) {
		t.Errorf("File content mismatch in %s\nExpected: %q\nActual: %q", path, expected, actual)
	}
}

// ListFiles returns the sorted names of all entries in dir, including
// hidden ones
func ListFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", dir, err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}
