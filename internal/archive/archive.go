package archive

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNothingToArchive is returned when the directory to archive is missing
var ErrNothingToArchive = errors.New("nothing to archive")

// ArchiveDir moves dir to <parent>/archive/<name>-<timestamp> and returns
// the new location
func ArchiveDir(dir string) (string, error) {
	dir = filepath.Clean(dir)

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("%w: %s does not exist", ErrNothingToArchive, dir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to inspect %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", dir)
	}

	// Get parent directory and create archive path
	archiveDir := filepath.Join(filepath.Dir(dir), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	name := filepath.Base(dir)
	now := time.Now()
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, now.Format("20060102-150405")))

	// Add microseconds when an archive from the same second exists
	if _, err := os.Stat(archivePath); err == nil {
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, now.Format("20060102-150405.000000")))
	}

	if err := os.Rename(dir, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", dir, err)
	}

	return archivePath, nil
}
