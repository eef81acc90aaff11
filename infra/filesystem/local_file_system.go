package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
)

// LocalFileSystem implements FileSystem rooted at a local directory.
type LocalFileSystem struct {
	root string
}

// NewLocalFileSystem creates a new local file system rooted at the given
// directory, creating it if needed.
func NewLocalFileSystem(root string) (*LocalFileSystem, error) {
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("creating root directory %q: %w", root, err)
	}

	return &LocalFileSystem{root: root}, nil
}

func (fs *LocalFileSystem) FileExists(path string) (bool, error) {
	fi, err := os.Stat(filepath.Join(fs.root, path))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}

		return false, err
	}

	if fi.IsDir() {
		return false, fmt.Errorf("exists, but is a directory: %s", path)
	}

	return true, nil
}

func (fs *LocalFileSystem) WriteBytes(path string, data []byte) error {
	return os.WriteFile(filepath.Join(fs.root, path), data, 0o600)
}

func (fs *LocalFileSystem) ReadBytes(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(fs.root, path))
}
