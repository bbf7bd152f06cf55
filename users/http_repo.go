package users

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
)

// HTTPRepo fetches tenant user documents from a static file host at
// {base}/{tenant.DataPath}/users.json.
type HTTPRepo struct {
	baseURL string
	client  *http.Client
}

type HTTPRepoOption func(*HTTPRepo)

func WithHTTPClient(client *http.Client) HTTPRepoOption {
	return func(r *HTTPRepo) {
		r.client = client
	}
}

func NewHTTPRepo(baseURL string, options ...HTTPRepoOption) *HTTPRepo {
	r := &HTTPRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *HTTPRepo) Directory(ctx context.Context, tenant *tenants.Tenant) (*Directory, error) {
	if tenant == nil {
		return nil, errors.Wrap(ErrDirectoryUnavailable, "[HTTPRepo.Directory] nil tenant")
	}
	url := r.baseURL + "/" + strings.Trim(tenant.DataPath, "/") + "/" + directoryFileName
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrDirectoryUnavailable, "[HTTPRepo.Directory] %v", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrDirectoryUnavailable, "[HTTPRepo.Directory] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrDirectoryUnavailable, "[HTTPRepo.Directory] HTTP error %d", resp.StatusCode)
	}
	directory := &Directory{}
	if err := json.NewDecoder(resp.Body).Decode(directory); err != nil {
		return nil, errors.Wrapf(ErrDirectoryUnavailable, "[HTTPRepo.Directory] decode: %v", err)
	}
	return directory, nil
}
