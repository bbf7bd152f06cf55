package auth

import "context"

// Result is the session payload a successful authentication produces. Token
// is empty in the legacy fixtures strategy, which has no token issuer; the
// record then carries the raw user attributes only.
type Result struct {
	Token       string
	UserID      string
	Username    string
	TenantID    string
	TenantName  string
	UserType    string
	Role        string
	Permissions []string
	FirstName   string
	LastName    string
}

// Authenticator checks credentials against one backend. The implementation is
// chosen once when the login service is constructed and never switched at
// runtime. Every failure (bad credentials, unreachable backend, malformed
// response) wraps AuthenticationFailedErr; callers count them identically.
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials, password string) (*Result, error)
}
