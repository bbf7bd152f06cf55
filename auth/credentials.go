package auth

import "strings"

// Credentials is the parsed form of a composite login name.
type Credentials struct {
	Username string
	TenantID string
}

// Composite rebuilds the "user@tenant_id" form the backend and the fixture
// documents store.
func (c Credentials) Composite() string {
	return c.Username + "@" + c.TenantID
}

// ParseUsername splits a composite login name on "@". Exactly two non-empty
// parts are required; anything else is a format error rejected before any
// network activity.
func ParseUsername(full string) (Credentials, error) {
	parts := strings.Split(full, "@")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Credentials{}, InvalidUsernameFormatErr
	}
	return Credentials{Username: parts[0], TenantID: parts[1]}, nil
}
