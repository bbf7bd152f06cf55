package tenantrepofakes

import (
	"context"
	"sync"

	"github.com/vbsbroadcast/go-tenant-login/tenants"
)

var _ tenants.Repo = (*FakeTenantRepo)(nil)

type FakeTenantRepo struct {
	registry tenants.Registry
	err      error
	calls    int
	lock     sync.Mutex
}

func NewFakeTenantRepo(tenantList ...tenants.Tenant) *FakeTenantRepo {
	return &FakeTenantRepo{registry: tenants.Registry{Tenants: tenantList}}
}

// FailWith makes every Registry call return err.
func (r *FakeTenantRepo) FailWith(err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.err = err
}

func (r *FakeTenantRepo) Registry(_ context.Context) (*tenants.Registry, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	registry := r.registry
	return &registry, nil
}

// Calls reports how many times the registry was fetched.
func (r *FakeTenantRepo) Calls() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.calls
}
