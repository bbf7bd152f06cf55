package dashboard

import "context"

// Equipment is the typed shape of the equipment resource. The remaining
// resources are tenant-defined documents and stay untyped.
type Equipment struct {
	ID          int    `json:"id"`
	TenantID    string `json:"tenant_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	Description string `json:"description,omitempty"`
}

func (c *Client) Equipment(ctx context.Context) ([]Equipment, error) {
	var equipment []Equipment
	if err := c.Fetch(ctx, "equipment", &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

func (c *Client) CRM(ctx context.Context) ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	if err := c.Fetch(ctx, "crm", &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Productions(ctx context.Context) ([]map[string]interface{}, error) {
	var productions []map[string]interface{}
	if err := c.Fetch(ctx, "productions", &productions); err != nil {
		return nil, err
	}
	return productions, nil
}

func (c *Client) DashboardConfig(ctx context.Context) (map[string]interface{}, error) {
	var cfg map[string]interface{}
	if err := c.Fetch(ctx, "dashboard-config", &cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
