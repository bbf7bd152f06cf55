package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vbsbroadcast/go-tenant-login/tenants"
	"github.com/vbsbroadcast/go-tenant-login/token"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

// Resources a dashboard may fetch. The users collection has its own handler
// because it needs permission checks and password stripping.
var servableResources = map[string]bool{
	"equipment":        true,
	"crm":              true,
	"productions":      true,
	"dashboard-config": true,
}

func (s *Server) InfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"name":         s.config.GetAppName() + " API",
			"status":       "operational",
			"multi_tenant": true,
		})
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// TenantHandler returns the registry entry for the caller's own tenant.
func (s *Server) TenantHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, _, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}
		dataJSON(w, tenant)
	}
}

// UsersHandler lists a tenant's users with stored passwords stripped.
// Requires the user_management capability.
func (s *Server) UsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, claims, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}
		if !hasPermission(claims, "user_management") {
			errorJSON(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		directory, err := s.users.Directory(r.Context(), tenant)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("load tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		sanitized := make([]users.User, 0, len(directory.Users))
		for _, u := range directory.Users {
			sanitized = append(sanitized, sanitizeUser(u))
		}
		dataJSON(w, sanitized)
	}
}

// ResourceHandler serves a tenant's fixture collections (equipment, crm,
// productions, dashboard-config) to bearer-authenticated callers of the same
// tenant.
func (s *Server) ResourceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resource := r.PathValue("resource")
		if !servableResources[resource] {
			errorJSON(w, http.StatusNotFound, "Unknown resource")
			return
		}
		tenant, _, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}

		data, err := readResourceFixture(s.dataDir, tenant.DataPath, resource)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Str("resource", resource).Msg("read resource fixture")
			errorJSON(w, http.StatusNotFound, "Resource not found")
			return
		}
		dataJSON(w, data)
	}
}

// authorizeTenant verifies the bearer token and checks its tenant claim
// against the path tenant, resolving the registry entry. It writes the error
// response itself on failure.
func (s *Server) authorizeTenant(w http.ResponseWriter, r *http.Request) (*tenants.Tenant, *token.Claims, bool) {
	claims, ok := s.bearerClaims(w, r)
	if !ok {
		return nil, nil, false
	}
	tenantID := r.PathValue("tenantID")
	if claims.TenantID != tenantID {
		errorJSON(w, http.StatusForbidden, "Access denied to this tenant")
		return nil, nil, false
	}

	registry, err := s.tenants.Registry(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("load tenant registry")
		errorJSON(w, http.StatusInternalServerError, "internal error")
		return nil, nil, false
	}
	tenant := registry.Find(tenantID)
	if tenant == nil {
		errorJSON(w, http.StatusNotFound, "Tenant not found")
		return nil, nil, false
	}
	return tenant, claims, true
}

func hasPermission(claims *token.Claims, permission string) bool {
	for _, p := range claims.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
