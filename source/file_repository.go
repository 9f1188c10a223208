package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// FileRepository reads the configuration document from the local filesystem.
type FileRepository struct {
	Path string
}

// NewFileRepository creates a FileRepository for the given path, resolved to
// an absolute path so the document is found regardless of later chdirs.
func NewFileRepository(path string) (Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		logrus.WithError(err).Error("error getting absolute path")
		return nil, err
	}
	return &FileRepository{Path: absPath}, nil
}

func (f *FileRepository) Fetch(ctx context.Context) ([]byte, error) {
	logrus.WithContext(ctx).WithField("path", f.Path).Debug("reading config file")
	return os.ReadFile(f.Path)
}

func (f *FileRepository) GetType() string {
	return "file"
}
