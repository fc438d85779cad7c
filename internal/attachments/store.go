package attachments

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store writes attachment bodies to the local filesystem. Files are
// renamed to a generated name on disk; the original name only lives in
// the database row.
type Store struct {
	dir string
}

// NewStore ensures the directory exists and returns a store rooted at it.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("attachments dir required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating attachments dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Save streams the body to disk under a fresh stored name and returns
// that name with the byte count written.
func (s *Store) Save(fileName string, body io.Reader) (string, int64, error) {
	storedName := uuid.NewString() + sanitizedExt(fileName)
	path := filepath.Join(s.dir, storedName)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", 0, fmt.Errorf("creating attachment file: %w", err)
	}
	written, err := io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return "", 0, fmt.Errorf("writing attachment file: %w", err)
	}
	return storedName, written, nil
}

// Open returns the stored body for reading.
func (s *Store) Open(storedName string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(storedName)))
}

// Remove deletes the stored body. Missing files are not an error.
func (s *Store) Remove(storedName string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func sanitizedExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, r := range ext {
		if r != '.' && (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
