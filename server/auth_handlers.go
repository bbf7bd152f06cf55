package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vbsbroadcast/go-tenant-login/auth"
	"github.com/vbsbroadcast/go-tenant-login/token"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler authenticates a composite "user@tenant_id" name against the
// tenant's user document and issues a bearer token. Passwords verify
// bcrypt-first with a plaintext fallback for unhashed fixture records; a
// record with no stored password never authenticates here.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := loginRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Username == "" || req.Password == "" {
			errorJSON(w, http.StatusBadRequest, "username and password are required")
			return
		}

		creds, err := auth.ParseUsername(strings.TrimSpace(req.Username))
		if err != nil {
			errorJSON(w, http.StatusBadRequest, "Invalid username format. Use: username@tenant_id")
			return
		}

		registry, err := s.tenants.Registry(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("load tenant registry")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}
		tenant := registry.Find(creds.TenantID)
		if tenant == nil {
			errorJSON(w, http.StatusNotFound, "Tenant not found")
			return
		}
		if !tenant.IsActive {
			errorJSON(w, http.StatusForbidden, "Tenant account is inactive")
			return
		}

		directory, err := s.users.Directory(r.Context(), tenant)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("load tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		user := directory.Find(creds.Composite())
		if user == nil {
			errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		if !user.Credentials.IsActive {
			errorJSON(w, http.StatusForbidden, "User account is inactive")
			return
		}
		if !users.VerifyPassword(req.Password, user.Credentials.Password) {
			errorJSON(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		signed, err := s.tokens.Issue(user, tenant)
		if err != nil {
			log.Error().Err(err).Msg("issue token")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info().Str("user", user.Credentials.Username).Str("tenant", tenant.TenantID).Msg("login")
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"access_token": signed,
			"token_type":   "bearer",
			"user": map[string]interface{}{
				"user_id":     user.UserID,
				"tenant_id":   tenant.TenantID,
				"tenant_name": tenant.TenantName,
				"username":    user.Credentials.Username,
				"first_name":  user.PersonalInfo.FirstName,
				"last_name":   user.PersonalInfo.LastName,
				"role":        user.Credentials.Role,
				"permissions": user.Credentials.Permissions,
			},
		})
	}
}

// LogoutHandler exists for symmetry; token removal is client-side.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Logged out successfully",
		})
	}
}

// MeHandler returns the claims of the presented token.
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := s.bearerClaims(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    claims,
		})
	}
}

// bearerClaims extracts and verifies the Authorization bearer token, writing
// the 401 response itself when verification fails.
func (s *Server) bearerClaims(w http.ResponseWriter, r *http.Request) (*token.Claims, bool) {
	raw, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || raw == "" {
		errorJSON(w, http.StatusUnauthorized, "missing bearer token")
		return nil, false
	}
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		errorJSON(w, http.StatusUnauthorized, "Invalid or expired token")
		return nil, false
	}
	return claims, true
}
