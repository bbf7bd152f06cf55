// Package dashboard is the parameterized replacement for the per-tenant
// dashboard scripts: one client configured with an API base, a tenant ID and
// branding overrides, reading the shared session record and issuing
// bearer-authenticated resource fetches.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/vbsbroadcast/go-tenant-login/sessions"
)

// LoginPath is where a consumer sends the user after a forced logout.
const LoginPath = "/index.html"

var LoginRequiredErr = errors.New("login required")

// Branding holds per-tenant display overrides.
type Branding struct {
	BrandName  string
	FooterName string
}

// Title resolves the header title, falling back to the session's cached
// tenant name.
func (b Branding) Title(session *sessions.Session) string {
	if b.BrandName != "" {
		return b.BrandName
	}
	if session != nil && session.TenantName != "" {
		return session.TenantName
	}
	return "Production Management"
}

// Client is one tenant's dashboard front-end. Its tenant ID is fixed at
// construction; a session scoped to any other tenant is invalid here no
// matter how fresh it is.
type Client struct {
	apiBase  string
	tenantID string
	branding Branding
	store    sessions.Store
	client   *http.Client
	nowTime  func() time.Time
	logger   zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(c *Client) {
		c.nowTime = nowFunc
	}
}

func WithBranding(branding Branding) Option {
	return func(c *Client) {
		c.branding = branding
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(apiBase, tenantID string, store sessions.Store, options ...Option) (*Client, error) {
	if tenantID == "" {
		return nil, errors.New("[dashboard.New] tenant ID is required")
	}
	if store == nil {
		return nil, errors.New("[dashboard.New] session store is required")
	}
	c := &Client{
		apiBase:  strings.TrimRight(apiBase, "/"),
		tenantID: tenantID,
		store:    store,
		client:   &http.Client{Timeout: 30 * time.Second},
		nowTime:  time.Now,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c, nil
}

// TenantID returns the tenant this client was built for.
func (c *Client) TenantID() string {
	return c.tenantID
}

// Branding returns the client's display overrides.
func (c *Client) Branding() Branding {
	return c.branding
}

// RequireSession re-derives session validity the way every page load does:
// the record must exist, must not be expired, and must be scoped to this
// client's tenant. Any violation deletes the record and reports
// LoginRequiredErr so the caller navigates to LoginPath.
func (c *Client) RequireSession() (*sessions.Session, error) {
	session, err := c.store.Load()
	if err != nil {
		return nil, errors.Wrapf(LoginRequiredErr, "[Client.RequireSession] %v", err)
	}
	if err := session.ValidFor(c.tenantID, c.nowTime()); err != nil {
		c.logger.Info().Err(err).Str("tenant", c.tenantID).Msg("forcing logout")
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Error().Err(clearErr).Msg("clear invalid session")
		}
		return nil, errors.Wrapf(LoginRequiredErr, "[Client.RequireSession] %v", err)
	}
	return session, nil
}

// Logout deletes the session record unconditionally.
func (c *Client) Logout() error {
	return c.store.Clear()
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// Fetch issues a bearer-authenticated GET for one of this tenant's resources
// and decodes the data envelope into out. An auth failure response deletes the
// session on the spot and reports LoginRequiredErr.
func (c *Client) Fetch(ctx context.Context, resource string, out interface{}) error {
	session, err := c.RequireSession()
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/tenants/%s/%s", c.apiBase, c.tenantID, resource)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "[Client.Fetch]")
	}
	req.Header.Set("Authorization", "Bearer "+session.Token)

	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "[Client.Fetch]")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return c.HandleFetchError(errors.Errorf("[Client.Fetch] HTTP error %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	env := envelope{}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return errors.Wrap(err, "[Client.Fetch] decode")
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(err, "[Client.Fetch] decode data")
	}
	return nil
}

// IsAuthFailure detects an authentication failure from a fetch error. The
// upstream API reports these in the error text rather than a decoded status,
// so the check is a substring match on "401".
func IsAuthFailure(err error) bool {
	return err != nil && strings.Contains(err.Error(), "401")
}

// HandleFetchError applies the forced-logout rule: an auth failure deletes
// the session and becomes LoginRequiredErr; anything else passes through.
func (c *Client) HandleFetchError(err error) error {
	if err == nil {
		return nil
	}
	if IsAuthFailure(err) {
		c.logger.Info().Msg("auth failure from API, forcing logout")
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Error().Err(clearErr).Msg("clear session after auth failure")
		}
		return errors.Wrapf(LoginRequiredErr, "%v", err)
	}
	return err
}
