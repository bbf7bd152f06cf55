package tenants

// Tenant is one customer organisation in the platform registry. Every user,
// session and API resource is scoped by its TenantID, and DataPath names the
// fixture folder holding the tenant's data documents.
type Tenant struct {
	TenantID   string `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	IsActive   bool   `json:"is_active"`
	DataPath   string `json:"data_path"`
}

// Registry is the central tenants document (tenants.json).
type Registry struct {
	Tenants []Tenant `json:"tenants"`
}

// Find returns the tenant with the given ID, or nil if the registry does not
// contain it.
func (r *Registry) Find(tenantID string) *Tenant {
	if r == nil {
		return nil
	}
	for i := range r.Tenants {
		if r.Tenants[i].TenantID == tenantID {
			return &r.Tenants[i]
		}
	}
	return nil
}
