package sessions

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the session record as a single JSON file, the CLI
// equivalent of one browser-local storage key. Save writes a temp file and
// renames it over the target, so concurrent writers never interleave and the
// last writer wins.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "[sessions.NewFileStore] create state folder")
	}
	return &FileStore{path: path}, nil
}

func (fs *FileStore) Load() (*Session, error) {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, errors.Wrapf(ErrNoSession, "[FileStore.Load] %v", err)
	}
	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		// Unparseable records are indistinguishable from no session.
		return nil, errors.Wrapf(ErrNoSession, "[FileStore.Load] decode: %v", err)
	}
	return session, nil
}

func (fs *FileStore) Save(session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Save] encode")
	}
	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "[FileStore.Save] write")
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return errors.Wrap(err, "[FileStore.Save] rename")
	}
	return nil
}

func (fs *FileStore) Clear() error {
	if err := os.Remove(fs.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[FileStore.Clear] remove")
	}
	return nil
}
