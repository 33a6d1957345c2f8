// Package proof stores uploaded proof-of-transfer images on disk.
//
// Layout: one folder per match under the base directory, named by
// matchkey.FolderName; one image per player inside, named by
// matchkey.ProofFileName. File presence is read back by the reconciler as
// evidence of a completed transfer, so writes must either fully land or
// leave no file behind.
package proof

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rizalarf/matchday/pkg/matchkey"
)

// Store defines proof image storage operations.
type Store interface {
	// Save writes a player's proof image, replacing any previous one.
	Save(date, fieldName, playerName string, data []byte) error

	// Exists reports whether a proof image is present for the player.
	Exists(date, fieldName, playerName string) bool

	// Path returns the on-disk path of a player's proof image.
	// Returns os.ErrNotExist if no proof is stored.
	Path(date, fieldName, playerName string) (string, error)

	// DeleteMatch removes the whole proof folder of a match.
	DeleteMatch(date, fieldName string) error

	// Archive bundles all proof images of a match into w as a zip archive.
	Archive(date, fieldName string, w io.Writer) (int, error)
}

// DiskStore is the filesystem-backed proof store.
type DiskStore struct {
	baseDir string
	logger  *zap.SugaredLogger
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates a proof store rooted at baseDir.
func NewDiskStore(baseDir string, logger *zap.SugaredLogger) *DiskStore {
	return &DiskStore{baseDir: baseDir, logger: logger}
}

// filePath resolves the full path of a player's proof image.
func (s *DiskStore) filePath(date, fieldName, playerName string) (string, error) {
	folder, err := matchkey.FolderName(date, fieldName)
	if err != nil {
		return "", fmt.Errorf("resolve match folder: %w", err)
	}
	file, err := matchkey.ProofFileName(playerName)
	if err != nil {
		return "", fmt.Errorf("resolve proof filename: %w", err)
	}
	return filepath.Join(s.baseDir, folder, file), nil
}

// Save writes the proof image via a temp file and rename, so a failed write
// never leaves a half-written image that would read as valid proof.
func (s *DiskStore) Save(date, fieldName, playerName string, data []byte) error {
	path, err := s.filePath(date, fieldName, playerName)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Errorw("Save failed to create match folder", "dir", dir, "error", err)
		return fmt.Errorf("create match folder: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		s.logger.Errorw("Save failed to create temp file", "dir", dir, "error", err)
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		s.logger.Errorw("Save failed to write proof", "path", path, "error", err)
		return fmt.Errorf("write proof image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close proof image: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		s.logger.Errorw("Save failed to finalize proof", "path", path, "error", err)
		return fmt.Errorf("finalize proof image: %w", err)
	}

	s.logger.Infow("proof saved", "path", path, "bytes", len(data))
	return nil
}

// Exists reports whether a proof image is present for the player.
func (s *DiskStore) Exists(date, fieldName, playerName string) bool {
	path, err := s.filePath(date, fieldName, playerName)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Path returns the proof image path, or os.ErrNotExist when absent.
func (s *DiskStore) Path(date, fieldName, playerName string) (string, error) {
	path, err := s.filePath(date, fieldName, playerName)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// DeleteMatch removes the match's entire proof folder. Missing folders are
// not an error: a match without uploads has nothing to delete.
func (s *DiskStore) DeleteMatch(date, fieldName string) error {
	folder, err := matchkey.FolderName(date, fieldName)
	if err != nil {
		return fmt.Errorf("resolve match folder: %w", err)
	}
	dir := filepath.Join(s.baseDir, folder)
	if err := os.RemoveAll(dir); err != nil {
		s.logger.Errorw("DeleteMatch failed to remove proof folder", "dir", dir, "error", err)
		return fmt.Errorf("remove proof folder: %w", err)
	}
	s.logger.Infow("proof folder removed", "dir", dir)
	return nil
}
