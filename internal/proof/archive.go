package proof

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rizalarf/matchday/pkg/matchkey"
)

// Archive writes all proof images of a match into w as a zip archive and
// returns the number of files bundled. A match with no uploads yields an
// empty (but valid) archive.
func (s *DiskStore) Archive(date, fieldName string, w io.Writer) (int, error) {
	folder, err := matchkey.FolderName(date, fieldName)
	if err != nil {
		return 0, fmt.Errorf("resolve match folder: %w", err)
	}
	dir := filepath.Join(s.baseDir, folder)

	zw := zip.NewWriter(w)
	count := 0

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("read proof folder: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		// Skip stray temp files from interrupted uploads.
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		src, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			zw.Close()
			return 0, fmt.Errorf("open proof image %s: %w", name, err)
		}

		dst, err := zw.Create(name)
		if err != nil {
			src.Close()
			zw.Close()
			return 0, fmt.Errorf("add %s to archive: %w", name, err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			src.Close()
			zw.Close()
			return 0, fmt.Errorf("write %s to archive: %w", name, err)
		}
		src.Close()
		count++
	}

	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalize archive: %w", err)
	}
	return count, nil
}
