package lockout

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var _ DeadlineStore = (*FileStore)(nil)

// FileStore persists the unlock deadline as an epoch-millisecond string,
// mirroring the storage format consumers of the original record expect.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[lockout.NewFileStore] create state folder")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Deadline() (time.Time, bool, error) {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, errors.Wrap(err, "[FileStore.Deadline] read")
	}
	ms, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		// A garbled deadline cannot be honoured; treat it as absent.
		return time.Time{}, false, nil
	}
	return time.UnixMilli(ms), true, nil
}

func (fs *FileStore) SetDeadline(deadline time.Time) error {
	raw := []byte(strconv.FormatInt(deadline.UnixMilli(), 10))
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.SetDeadline] write")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.SetDeadline] rename")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	return nil
}
