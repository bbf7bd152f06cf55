package fakeuserrepo

import (
	"context"
	"sync"

	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

type FakeUserRepo struct {
	directories map[string]*users.Directory // keyed by tenant ID
	err         error
	calls       int
	lock        sync.Mutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{directories: make(map[string]*users.Directory)}
}

// SetDirectory registers the users document served for a tenant ID.
func (r *FakeUserRepo) SetDirectory(tenantID string, directory *users.Directory) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.directories[tenantID] = directory
}

// FailWith makes every Directory call return err.
func (r *FakeUserRepo) FailWith(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeUserRepo) Directory(_ context.Context, tenant *tenants.Tenant) (*users.Directory, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	directory, ok := r.directories[tenant.TenantID]
	if !ok {
		return nil, users.ErrDirectoryUnavailable
	}
	return directory, nil
}

// Calls reports how many times a directory was fetched.
func (r *FakeUserRepo) Calls() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.calls
}
