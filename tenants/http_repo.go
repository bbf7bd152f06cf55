package tenants

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// HTTPRepo fetches the tenant registry from a static file host, the way the
// hosted login page loads ./data/tenants.json.
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

func (r *HTTPRepo) Registry(ctx context.Context) (*Registry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/"+registryFileName, nil)
	if err != nil {
		return nil, errors.Wrapf(ErrRegistryUnavailable, "[HTTPRepo.Registry] %v", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(ErrRegistryUnavailable, "[HTTPRepo.Registry] %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrapf(ErrRegistryUnavailable, "[HTTPRepo.Registry] HTTP error %d", resp.StatusCode)
	}
	registry := &Registry{}
	if err := json.NewDecoder(resp.Body).Decode(registry); err != nil {
		return nil, errors.Wrapf(ErrRegistryUnavailable, "[HTTPRepo.Registry] decode: %v", err)
	}
	return registry, nil
}
