// Package artifacts stores uploaded binaries on the filesystem: cleaned
// roster CSVs under generated names and campaign images under their original
// names. Artifacts are written once and treated as immutable; a flock sidecar
// guards the workspace so only one engine instance writes to it.
package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"outreach/internal/config"
	"outreach/internal/services"
)

const lockFileName = ".outreach.lock"

// Store persists artifacts under a single upload directory.
type Store struct {
	dir  string
	lock *flock.Flock
}

// Open prepares the upload workspace and acquires its lock.
func Open(cfg *config.Config) (*Store, error) {
	dir := cfg.Paths.UploadDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %q: %w", dir, err)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	acquired, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire workspace lock: %w", err)
	}
	if !acquired {
		return nil, fmt.Errorf("upload workspace %q is in use by another instance", dir)
	}

	return &Store{dir: dir, lock: lock}, nil
}

// Close releases the workspace lock.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Dir returns the upload workspace directory.
func (s *Store) Dir() string {
	return s.dir
}

// SaveRoster stores a cleaned roster CSV under a generated unique name and
// returns that name.
func (s *Store) SaveRoster(data []byte) (string, error) {
	name := uuid.NewString() + ".csv"
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", services.Wrap(services.ErrStorage, "vendor_data", "save roster", "", err)
	}
	return name, nil
}

// SaveImage stores an uploaded image under its original base name and returns
// the stored name. Names are not deduplicated; re-uploading the same name
// replaces the previous image.
func (s *Store) SaveImage(originalName string, data []byte) (string, error) {
	name := filepath.Base(strings.TrimSpace(originalName))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", services.Wrap(services.ErrValidation, "content", "save image", fmt.Sprintf("unusable image name %q", originalName), nil)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", services.Wrap(services.ErrStorage, "content", "save image", "", err)
	}
	return name, nil
}

// Read returns an artifact's bytes by stored name.
func (s *Store) Read(name string) ([]byte, error) {
	path, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "", "read artifact", name, nil)
		}
		return nil, services.Wrap(services.ErrStorage, "", "read artifact", name, err)
	}
	return data, nil
}

// Exists reports whether an artifact with the stored name is retrievable.
func (s *Store) Exists(name string) bool {
	path, err := s.resolve(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Remove deletes an artifact by stored name. Removing a missing artifact is
// not an error.
func (s *Store) Remove(name string) error {
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return services.Wrap(services.ErrStorage, "", "remove artifact", name, err)
	}
	return nil
}

func (s *Store) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == lockFileName {
		return "", services.Wrap(services.ErrValidation, "", "resolve artifact", fmt.Sprintf("invalid artifact name %q", name), nil)
	}
	return filepath.Join(s.dir, name), nil
}
