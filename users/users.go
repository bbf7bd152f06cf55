package users

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// PersonalInfo carries the display attributes of a user record.
type PersonalInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AccessCredentials is the login-relevant part of a user record. Username is
// stored in composite form ("user@tenant_id"). Password may be a bcrypt hash
// or, for legacy fixture records, a plaintext value; an empty Password means
// no password has been provisioned for the account.
type AccessCredentials struct {
	Username    string   `json:"username"`
	Password    string   `json:"password,omitempty"`
	IsActive    bool     `json:"is_active"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// User is one entry of a tenant's users document. ContactInfo is
// tenant-defined and carried opaquely so documents round-trip through edits.
type User struct {
	UserID       string                 `json:"user_id"`
	TenantID     string                 `json:"tenant_id,omitempty"`
	UserType     string                 `json:"user_type,omitempty"`
	PersonalInfo PersonalInfo           `json:"personal_info"`
	ContactInfo  map[string]interface{} `json:"contact_info,omitempty"`
	Credentials  AccessCredentials      `json:"access_credentials"`
	Notes        string                 `json:"notes,omitempty"`
}

// Directory is a tenant's users document (users.json).
type Directory struct {
	TenantID string `json:"tenant_id"`
	Users    []User `json:"users"`
}

// Find returns the user whose stored composite username matches, or nil.
func (d *Directory) Find(username string) *User {
	if d == nil {
		return nil
	}
	for i := range d.Users {
		if d.Users[i].Credentials.Username == username {
			return &d.Users[i]
		}
	}
	return nil
}

// FindActive returns the matching user only if the account-active flag is set.
func (d *Directory) FindActive(username string) *User {
	u := d.Find(username)
	if u == nil || !u.Credentials.IsActive {
		return nil
	}
	return u
}

// HasPermission reports whether the user's credentials carry the capability.
func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Credentials.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// HashPassword produces a bcrypt hash for storage in a user record.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// VerifyPassword checks a plaintext password against the stored value.
// Bcrypt hashes are verified properly; anything else falls back to direct
// comparison so that unhashed legacy fixture records keep working. An empty
// stored value never verifies.
func VerifyPassword(password, stored string) bool {
	if stored == "" {
		return false
	}
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return password == stored
}
