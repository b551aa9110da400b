package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/resume-analyzer/backend/internal/models"
)

// TempStore persists uploads to uniquely named files that live only for
// the duration of one request. Each upload gets its own uuid-based name
// so concurrent uploads of the same filename never collide.
type TempStore struct {
	dir string
}

// NewTempStore creates a TempStore rooted at dir.
func NewTempStore(dir string) (*TempStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	return &TempStore{dir: dir}, nil
}

// Save writes r to a unique path. The original extension is preserved so
// format dispatch can run on the stored file.
func (s *TempStore) Save(name string, r io.Reader) (*models.UploadedFile, error) {
	id := uuid.New().String()
	path := filepath.Join(s.dir, id+strings.ToLower(filepath.Ext(name)))

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("writing file: %w", err)
	}

	return &models.UploadedFile{
		ID:      id,
		Name:    name,
		Size:    size,
		Path:    path,
		SavedAt: time.Now(),
	}, nil
}

// Remove deletes the stored upload. A file that is already gone is not
// an error, so Remove can be deferred on every exit path.
func (s *TempStore) Remove(u *models.UploadedFile) error {
	if err := os.Remove(u.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}

// Dir returns the directory uploads are stored under.
func (s *TempStore) Dir() string {
	return s.dir
}
