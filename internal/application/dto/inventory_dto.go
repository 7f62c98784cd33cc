package dto

// AddStockRequest body para POST /api/inventory/stock (ingreso de compra).
type AddStockRequest struct {
	FreezerID  string `json:"freezer_id"`
	ProductID  string `json:"product_id"`
	FlavorID   string `json:"flavor_id"`
	ProviderID string `json:"provider_id"`
	Quantity   int    `json:"quantity"`
}

// MergeAddRequest body para POST /api/inventory/merge.
type MergeAddRequest struct {
	FreezerID        string `json:"freezer_id"`
	ProductID        string `json:"product_id"`
	FlavorID         string `json:"flavor_id"`
	ProviderID       string `json:"provider_id"`
	Quantity         int    `json:"quantity"`
	IsDeformed       bool   `json:"is_deformed"`
	AssignedWorkerID string `json:"assigned_worker_id,omitempty"`
}

// SubtractRequest body para POST /api/inventory/:id/subtract.
type SubtractRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateAlertRequest body para PUT /api/inventory/:id/alert.
type UpdateAlertRequest struct {
	MinStockAlert int `json:"min_stock_alert"`
}
