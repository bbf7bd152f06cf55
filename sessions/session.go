package sessions

import (
	"errors"
	"time"
)

// Default lifetimes for a session record. Remember-me extends the lifetime at
// creation only; it is never re-applied afterwards.
const (
	DefaultTTL    = 24 * time.Hour
	RememberMeTTL = 30 * 24 * time.Hour
)

var (
	ErrNoSession      = errors.New("no session")
	ErrSessionExpired = errors.New("session expired")
	ErrTenantMismatch = errors.New("session belongs to a different tenant")
)

// Session is the persisted proof of authentication plus the cached user and
// tenant attributes every downstream consumer reads. Token is empty when the
// session was created by the legacy fixtures strategy, which has no token
// issuer. ExpiresAt is an absolute epoch-millisecond deadline; the JSON field
// names match the record layout consumers already parse.
type Session struct {
	Token       string    `json:"token,omitempty"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	TenantID    string    `json:"tenantId"`
	TenantName  string    `json:"tenantName"`
	UserType    string    `json:"userType,omitempty"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	LoginTime   time.Time `json:"loginTime"`
	ExpiresAt   int64     `json:"expiresAt"`
	RememberMe  bool      `json:"rememberMe"`
}

// Complete reports whether the record carries the fields every consumer
// depends on. Partial records are treated the same as no session.
func (s *Session) Complete() bool {
	return s != nil && s.Username != "" && s.TenantID != ""
}

// Expired reports whether the absolute expiry has passed.
func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.UnixMilli()
}

// ValidFor re-derives validity for a consumer compiled for tenantID. An empty
// tenantID skips the tenant check (the login page itself is not
// tenant-scoped). Expiry and tenant scope are independent: either violation
// alone invalidates the session.
func (s *Session) ValidFor(tenantID string, now time.Time) error {
	if !s.Complete() {
		return ErrNoSession
	}
	if tenantID != "" && s.TenantID != tenantID {
		return ErrTenantMismatch
	}
	if s.Expired(now) {
		return ErrSessionExpired
	}
	return nil
}

// HasPermission reports whether the session carries the capability string.
func (s *Session) HasPermission(permission string) bool {
	for _, p := range s.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// FullName is the display name cached at login time.
func (s *Session) FullName() string {
	return s.FirstName + " " + s.LastName
}
