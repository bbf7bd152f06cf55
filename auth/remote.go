package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

var _ Authenticator = (*RemoteAuthenticator)(nil)

// RemoteAuthenticator submits the composite username and password to the
// backend login endpoint in a single request. The server response supplies
// the complete session payload; the token is treated as opaque and never
// decoded client-side.
type RemoteAuthenticator struct {
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type RemoteOption func(*RemoteAuthenticator)

func WithRemoteHTTPClient(client *http.Client) RemoteOption {
	return func(a *RemoteAuthenticator) {
		a.client = client
	}
}

func WithRemoteLogger(logger zerolog.Logger) RemoteOption {
	return func(a *RemoteAuthenticator) {
		a.logger = logger
	}
}

// NewRemoteAuthenticator creates the primary strategy against
// {baseURL}/auth/login.
func NewRemoteAuthenticator(baseURL string, options ...RemoteOption) *RemoteAuthenticator {
	a := &RemoteAuthenticator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		opt(a)
	}
	return a
}

type loginRequestBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponseBody struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        struct {
		UserID      string   `json:"user_id"`
		Username    string   `json:"username"`
		TenantID    string   `json:"tenant_id"`
		TenantName  string   `json:"tenant_name"`
		Role        string   `json:"role"`
		Permissions []string `json:"permissions"`
		FirstName   string   `json:"first_name"`
		LastName    string   `json:"last_name"`
	} `json:"user"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *RemoteAuthenticator) Authenticate(ctx context.Context, creds Credentials, password string) (*Result, error) {
	body, err := json.Marshal(loginRequestBody{Username: creds.Composite(), Password: password})
	if err != nil {
		return nil, errors.Wrapf(AuthenticationFailedErr, "[RemoteAuthenticator.Authenticate] encode: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(AuthenticationFailedErr, "[RemoteAuthenticator.Authenticate] %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error().Err(err).Msg("login request failed")
		return nil, errors.Wrapf(AuthenticationFailedErr, "[RemoteAuthenticator.Authenticate] %v", err)
	}
	defer resp.Body.Close()

	payload := loginResponseBody{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		a.logger.Error().Err(err).Int("status", resp.StatusCode).Msg("unreadable login response")
		return nil, errors.Wrapf(AuthenticationFailedErr, "[RemoteAuthenticator.Authenticate] decode: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !payload.Success {
		if payload.Error != nil && payload.Error.Message != "" {
			return nil, errors.Wrap(AuthenticationFailedErr, payload.Error.Message)
		}
		return nil, errors.Wrapf(AuthenticationFailedErr, "login failed with status %d", resp.StatusCode)
	}

	return &Result{
		Token:       payload.AccessToken,
		UserID:      payload.User.UserID,
		Username:    payload.User.Username,
		TenantID:    payload.User.TenantID,
		TenantName:  payload.User.TenantName,
		Role:        payload.User.Role,
		Permissions: payload.User.Permissions,
		FirstName:   payload.User.FirstName,
		LastName:    payload.User.LastName,
	}, nil
}
