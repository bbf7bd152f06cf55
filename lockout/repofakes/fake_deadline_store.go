package fakedeadlinestore

import (
	"sync"
	"time"

	"github.com/vbsbroadcast/go-tenant-login/lockout"
)

var _ lockout.DeadlineStore = (*FakeDeadlineStore)(nil)

type FakeDeadlineStore struct {
	deadline time.Time
	present  bool
	lock     sync.Mutex
}

func NewFakeDeadlineStore() *FakeDeadlineStore {
	return &FakeDeadlineStore{}
}

// Seed pre-loads a persisted deadline, as if written by an earlier process.
func (fs *FakeDeadlineStore) Seed(deadline time.Time) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.deadline = deadline
	fs.present = true
}

func (fs *FakeDeadlineStore) Deadline() (time.Time, bool, error) {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	return fs.deadline, fs.present, nil
}

func (fs *FakeDeadlineStore) SetDeadline(deadline time.Time) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.deadline = deadline
	fs.present = true
	return nil
}

func (fs *FakeDeadlineStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.deadline = time.Time{}
	fs.present = false
	return nil
}
