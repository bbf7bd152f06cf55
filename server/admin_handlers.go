package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vbsbroadcast/go-tenant-login/users"
)

// AdminTenantsHandler lists every registry entry.
// TODO restrict to platform administrators once the token claims carry an
// admin role; for now any authenticated caller may list the registry.
func (s *Server) AdminTenantsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.bearerClaims(w, r); !ok {
			return
		}
		registry, err := s.tenants.Registry(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("load tenant registry")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}
		dataJSON(w, registry.Tenants)
	}
}

type createUserRequest struct {
	Username     string                 `json:"username"`
	Password     string                 `json:"password"`
	UserType     string                 `json:"user_type"`
	Role         string                 `json:"role"`
	Permissions  []string               `json:"permissions"`
	PersonalInfo users.PersonalInfo     `json:"personal_info"`
	ContactInfo  map[string]interface{} `json:"contact_info"`
	Notes        string                 `json:"notes"`
}

// CreateUserHandler adds a user to the tenant's document. The username is
// submitted bare; the stored composite form is built server-side, and the
// password is stored as a bcrypt hash. Requires the user_management
// capability.
func (s *Server) CreateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, claims, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}
		if !hasPermission(claims, "user_management") {
			errorJSON(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		req := createUserRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Username == "" || strings.Contains(req.Username, "@") {
			errorJSON(w, http.StatusBadRequest, "username must be a bare name without @")
			return
		}
		if req.Password == "" {
			errorJSON(w, http.StatusBadRequest, "password is required")
			return
		}

		directory, err := s.users.Directory(r.Context(), tenant)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("load tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		composite := req.Username + "@" + tenant.TenantID
		if directory.Find(composite) != nil {
			errorJSON(w, http.StatusConflict, "Username already exists")
			return
		}

		hashed, err := users.HashPassword(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("hash password")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		if req.UserType == "" {
			req.UserType = "employee"
		}
		if req.Role == "" {
			req.Role = "editor"
		}
		newUser := users.User{
			UserID:       uuid.NewString(),
			TenantID:     tenant.TenantID,
			UserType:     req.UserType,
			PersonalInfo: req.PersonalInfo,
			ContactInfo:  req.ContactInfo,
			Notes:        req.Notes,
			Credentials: users.AccessCredentials{
				Username:    composite,
				Password:    hashed,
				IsActive:    true,
				Role:        req.Role,
				Permissions: req.Permissions,
				CreatedAt:   time.Now().UTC().Format(time.RFC3339),
			},
		}
		directory.Users = append(directory.Users, newUser)

		if err := writeFixture(s.dataDir, tenant.DataPath, "users", directory); err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("save tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info().Str("user", composite).Str("tenant", tenant.TenantID).Msg("user created")
		dataJSON(w, sanitizeUser(newUser))
	}
}

// GetUserHandler returns one user record with the stored password stripped.
func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, _, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}

		directory, err := s.users.Directory(r.Context(), tenant)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("load tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		user := findByID(directory, r.PathValue("userID"))
		if user == nil {
			errorJSON(w, http.StatusNotFound, "User not found")
			return
		}
		dataJSON(w, sanitizeUser(*user))
	}
}

type updateUserRequest struct {
	UserType     *string                 `json:"user_type"`
	PersonalInfo *users.PersonalInfo     `json:"personal_info"`
	ContactInfo  *map[string]interface{} `json:"contact_info"`
	Notes        *string                 `json:"notes"`
	Role         *string                 `json:"role"`
	Permissions  *[]string               `json:"permissions"`
	IsActive     *bool                   `json:"is_active"`
	Password     *string                 `json:"password"`
}

// UpdateUserHandler applies a partial update to one user record; absent
// fields are left untouched. A submitted password is re-hashed. Requires the
// user_management capability.
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, claims, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}
		if !hasPermission(claims, "user_management") {
			errorJSON(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		req := updateUserRequest{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}

		directory, err := s.users.Directory(r.Context(), tenant)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("load tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		user := findByID(directory, r.PathValue("userID"))
		if user == nil {
			errorJSON(w, http.StatusNotFound, "User not found")
			return
		}

		if req.UserType != nil {
			user.UserType = *req.UserType
		}
		if req.PersonalInfo != nil {
			user.PersonalInfo = *req.PersonalInfo
		}
		if req.ContactInfo != nil {
			user.ContactInfo = *req.ContactInfo
		}
		if req.Notes != nil {
			user.Notes = *req.Notes
		}
		if req.Role != nil {
			user.Credentials.Role = *req.Role
		}
		if req.Permissions != nil {
			user.Credentials.Permissions = *req.Permissions
		}
		if req.IsActive != nil {
			user.Credentials.IsActive = *req.IsActive
		}
		if req.Password != nil && *req.Password != "" {
			hashed, err := users.HashPassword(*req.Password)
			if err != nil {
				log.Error().Err(err).Msg("hash password")
				errorJSON(w, http.StatusInternalServerError, "internal error")
				return
			}
			user.Credentials.Password = hashed
		}

		if err := writeFixture(s.dataDir, tenant.DataPath, "users", directory); err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("save tenant users")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info().Str("user", user.Credentials.Username).Str("tenant", tenant.TenantID).Msg("user updated")
		dataJSON(w, sanitizeUser(*user))
	}
}

// CreateEquipmentHandler appends an equipment record to the tenant's
// document. Records are handled as open maps so tenant-defined fields
// (technical_data, usage_info) pass through untouched; the id is the next
// integer after the current maximum. Requires the equipment_management
// capability.
func (s *Server) CreateEquipmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, claims, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}
		if !hasPermission(claims, "equipment_management") {
			errorJSON(w, http.StatusForbidden, "Insufficient permissions")
			return
		}

		record := map[string]interface{}{}
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			errorJSON(w, http.StatusBadRequest, "invalid request body")
			return
		}
		for _, field := range []string{"name", "type", "location"} {
			if v, _ := record[field].(string); v == "" {
				errorJSON(w, http.StatusBadRequest, field+" is required")
				return
			}
		}
		status, _ := record["status"].(string)
		switch status {
		case "":
			record["status"] = "available"
		case "available", "in_use", "maintenance":
		default:
			errorJSON(w, http.StatusBadRequest, "status must be available, in_use or maintenance")
			return
		}

		doc, list, err := s.loadEquipment(tenant.DataPath)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("read equipment")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		maxID := 0
		for _, item := range list {
			if id, ok := item["id"].(float64); ok && int(id) > maxID {
				maxID = int(id)
			}
		}
		record["id"] = maxID + 1
		record["tenant_id"] = tenant.TenantID
		list = append(list, record)

		if err := s.saveEquipment(tenant.DataPath, doc, list); err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("save equipment")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info().Int("id", maxID+1).Str("tenant", tenant.TenantID).Msg("equipment created")
		dataJSON(w, record)
	}
}

// GetEquipmentHandler returns one equipment record by its integer id.
func (s *Server) GetEquipmentHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, _, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}

		_, list, err := s.loadEquipment(tenant.DataPath)
		if err != nil {
			log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("read equipment")
			errorJSON(w, http.StatusInternalServerError, "internal error")
			return
		}

		wanted, err := strconv.Atoi(r.PathValue("equipmentID"))
		if err != nil {
			errorJSON(w, http.StatusNotFound, "Equipment not found")
			return
		}
		for _, item := range list {
			if id, ok := item["id"].(float64); ok && int(id) == wanted {
				dataJSON(w, item)
				return
			}
		}
		errorJSON(w, http.StatusNotFound, "Equipment not found")
	}
}

// ExportHandler produces a tenant data export: "users", "equipment", or
// "full" (tenant entry + both collections with a timestamp). Stored
// passwords are stripped from every export.
func (s *Server) ExportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenant, _, ok := s.authorizeTenant(w, r)
		if !ok {
			return
		}

		kind := r.PathValue("kind")
		if kind != "users" && kind != "equipment" && kind != "full" {
			errorJSON(w, http.StatusNotFound, "Unknown export")
			return
		}

		var sanitized []users.User
		if kind == "users" || kind == "full" {
			directory, err := s.users.Directory(r.Context(), tenant)
			if err != nil {
				log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("load tenant users")
				errorJSON(w, http.StatusInternalServerError, "internal error")
				return
			}
			for _, u := range directory.Users {
				sanitized = append(sanitized, sanitizeUser(u))
			}
		}

		var equipment []map[string]interface{}
		if kind == "equipment" || kind == "full" {
			_, list, err := s.loadEquipment(tenant.DataPath)
			if err != nil {
				log.Error().Err(err).Str("tenant", tenant.TenantID).Msg("read equipment")
				errorJSON(w, http.StatusInternalServerError, "internal error")
				return
			}
			equipment = list
		}

		switch kind {
		case "users":
			dataJSON(w, map[string]interface{}{"tenant_id": tenant.TenantID, "users": sanitized})
		case "equipment":
			dataJSON(w, map[string]interface{}{"tenant_id": tenant.TenantID, "equipment": equipment})
		default:
			dataJSON(w, map[string]interface{}{
				"exported_at": time.Now().UTC().Format(time.RFC3339),
				"tenant":      tenant,
				"users":       sanitized,
				"equipment":   equipment,
			})
		}
	}
}

func (s *Server) loadEquipment(dataPath string) (map[string]json.RawMessage, []map[string]interface{}, error) {
	doc, err := readFixtureDoc(s.dataDir, dataPath, "equipment")
	if err != nil {
		return nil, nil, err
	}
	var list []map[string]interface{}
	if raw, ok := doc["equipment"]; ok {
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, nil, err
		}
	}
	return doc, list, nil
}

func (s *Server) saveEquipment(dataPath string, doc map[string]json.RawMessage, list []map[string]interface{}) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	doc["equipment"] = raw
	return writeFixture(s.dataDir, dataPath, "equipment", doc)
}

func findByID(directory *users.Directory, userID string) *users.User {
	for i := range directory.Users {
		if directory.Users[i].UserID == userID {
			return &directory.Users[i]
		}
	}
	return nil
}

func sanitizeUser(u users.User) users.User {
	u.Credentials.Password = ""
	return u
}

