// Package token issues and verifies the HS256 access tokens the demo API
// hands out at login. Clients treat these as opaque; only the server side
// verifies them.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

const (
	DefaultTTL    = 24 * time.Hour
	DefaultIssuer = "production-management-platform"
)

var InvalidTokenErr = errors.New("invalid or expired token")

// Claims carries the tenant-scoped identity embedded in an access token.
type Claims struct {
	UserID      string   `json:"user_id"`
	Username    string   `json:"username"`
	TenantID    string   `json:"tenant_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	nowTime func() time.Time
}

type Option func(*Manager)

func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

func WithIssuer(issuer string) Option {
	return func(m *Manager) {
		m.issuer = issuer
	}
}

// WithNowTime sets the now time function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) Option {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

func New(secret string, options ...Option) *Manager {
	m := &Manager{
		secret:  []byte(secret),
		issuer:  DefaultIssuer,
		ttl:     DefaultTTL,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

// Issue signs an access token for a user authenticated within a tenant.
func (m *Manager) Issue(user *users.User, tenant *tenants.Tenant) (string, error) {
	if user == nil || tenant == nil {
		return "", errors.New("[Manager.Issue] user and tenant are required")
	}
	now := m.nowTime()
	claims := Claims{
		UserID:      user.UserID,
		Username:    user.Credentials.Username,
		TenantID:    tenant.TenantID,
		Role:        user.Credentials.Role,
		Permissions: user.Credentials.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   user.UserID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Manager.Issue] sign")
	}
	return signed, nil
}

// Verify parses and validates a raw token, returning its claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.nowTime),
	)
	if err != nil {
		return nil, errors.Wrapf(InvalidTokenErr, "[Manager.Verify] %v", err)
	}
	return claims, nil
}
