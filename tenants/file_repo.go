package tenants

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const registryFileName = "tenants.json"

// FileRepo reads the tenant registry from a local data folder. It is used by
// the demo API server and by the legacy authenticator when the fixtures live
// on disk.
type FileRepo struct {
	dir string
}

func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{dir: dir}
}

func (r *FileRepo) Registry(_ context.Context) (*Registry, error) {
	raw, err := os.ReadFile(filepath.Join(r.dir, registryFileName))
	if err != nil {
		return nil, errors.Wrapf(ErrRegistryUnavailable, "[FileRepo.Registry] %v", err)
	}
	registry := &Registry{}
	if err := json.Unmarshal(raw, registry); err != nil {
		return nil, errors.Wrapf(ErrRegistryUnavailable, "[FileRepo.Registry] decode: %v", err)
	}
	return registry, nil
}
