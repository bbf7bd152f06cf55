package tenants

import (
	"context"
	"errors"
)

var ErrRegistryUnavailable = errors.New("tenant registry unavailable")

// Repo loads the tenant registry document from wherever it is hosted
// (local fixture folder or a static file host).
type Repo interface {
	Registry(ctx context.Context) (*Registry, error)
}
