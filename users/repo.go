package users

import (
	"context"
	"errors"

	"github.com/vbsbroadcast/go-tenant-login/tenants"
)

var ErrDirectoryUnavailable = errors.New("tenant users unavailable")

// Repo loads a tenant's users document. Implementations resolve the document
// location from the tenant's DataPath, so a registry lookup must complete
// before a directory can be fetched.
type Repo interface {
	Directory(ctx context.Context, tenant *tenants.Tenant) (*Directory, error)
}
