package fakesessionstore

import (
	"sync"

	"github.com/vbsbroadcast/go-tenant-login/sessions"
)

var _ sessions.Store = (*FakeSessionStore)(nil)

type FakeSessionStore struct {
	session *sessions.Session
	saveErr error
	lock    sync.Mutex
}

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

// FailSavesWith makes every Save call return err.
func (fs *FakeSessionStore) FailSavesWith(err error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.saveErr = err
}

func (fs *FakeSessionStore) Load() (*sessions.Session, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.session == nil {
		return nil, sessions.ErrNoSession
	}
	copied := *fs.session
	return &copied, nil
}

func (fs *FakeSessionStore) Save(session *sessions.Session) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.saveErr != nil {
		return fs.saveErr
	}
	copied := *session
	fs.session = &copied
	return nil
}

func (fs *FakeSessionStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.session = nil
	return nil
}
