package utils

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// ArtifactManager handles export artifact organization and path management
type ArtifactManager struct {
	BaseDir string
}

// NewArtifactManager creates a manager rooted at baseDir
func NewArtifactManager(baseDir string) *ArtifactManager {
	return &ArtifactManager{BaseDir: baseDir}
}

// CreateExportDir creates the per-export directory keyed by export id, so
// concurrent exports can never collide on paths.
func (am *ArtifactManager) CreateExportDir(exportID string) (string, error) {
	dir := filepath.Join(am.BaseDir, exportID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	return dir, nil
}

// FileSizeMB returns a file's size in megabytes, rounded to two decimals
func (am *ArtifactManager) FileSizeMB(path string) (float64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	mb := float64(info.Size()) / (1024 * 1024)
	return math.Round(mb*100) / 100, nil
}

// DownloadURL generates the download path for an export
func (am *ArtifactManager) DownloadURL(exportID string) string {
	return fmt.Sprintf("/exports/download/%s", exportID)
}
