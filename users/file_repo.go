package users

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
)

const directoryFileName = "users.json"

// FileRepo reads tenant user documents from a local data folder laid out as
// {dir}/{tenant.DataPath}/users.json.
type FileRepo struct {
	dir string
}

func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{dir: dir}
}

func (r *FileRepo) Directory(_ context.Context, tenant *tenants.Tenant) (*Directory, error) {
	if tenant == nil {
		return nil, errors.Wrap(ErrDirectoryUnavailable, "[FileRepo.Directory] nil tenant")
	}
	raw, err := os.ReadFile(filepath.Join(r.dir, tenant.DataPath, directoryFileName))
	if err != nil {
		return nil, errors.Wrapf(ErrDirectoryUnavailable, "[FileRepo.Directory] %v", err)
	}
	directory := &Directory{}
	if err := json.Unmarshal(raw, directory); err != nil {
		return nil, errors.Wrapf(ErrDirectoryUnavailable, "[FileRepo.Directory] decode: %v", err)
	}
	return directory, nil
}
