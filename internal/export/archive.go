package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
)

// buildArchive zips the chunk files into archivePath and returns the raw
// and compressed byte totals. Member names are flattened to their base
// names so extraction is predictable.
func buildArchive(archivePath string, files []string) (rawSize, compressedSize int64, err error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addArchiveMember(zw, path); err != nil {
			zw.Close()
			return 0, 0, err
		}
		info, err := os.Stat(path)
		if err != nil {
			zw.Close()
			return 0, 0, err
		}
		rawSize += info.Size()
	}
	if err := zw.Close(); err != nil {
		return 0, 0, fmt.Errorf("failed to finalize archive: %w", err)
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return 0, 0, err
	}
	return rawSize, info.Size(), nil
}

func addArchiveMember(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open chunk %s: %w", path, err)
	}
	defer src.Close()

	dst, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("failed to add archive member: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write archive member: %w", err)
	}
	return nil
}
