package entity

import "time"

// InventoryItem es una pila de unidades idénticas dentro de un congelador.
// La identidad de fusión es PileKey; Quantity nunca es negativa.
// Las pilas deformes pertenecen a un trabajador (o al dueño), tienen MinStockAlert 0
// y se eliminan al llegar a cero.
type InventoryItem struct {
	ID               string    `json:"id"`
	FreezerID        string    `json:"freezer_id"`
	ProductID        string    `json:"product_id"`
	FlavorID         string    `json:"flavor_id"`
	ProviderID       string    `json:"provider_id"`
	Quantity         int       `json:"quantity"`
	MinStockAlert    int       `json:"min_stock_alert"`
	IsDeformed       bool      `json:"is_deformed"`
	AssignedWorkerID *string   `json:"assigned_worker_id,omitempty"`
	LastUpdated      time.Time `json:"last_updated"`
	UpdatedBy        string    `json:"updated_by"`
}

// Key devuelve la identidad de fusión de la pila.
func (i *InventoryItem) Key() PileKey {
	k := PileKey{
		FreezerID:  i.FreezerID,
		ProductID:  i.ProductID,
		FlavorID:   i.FlavorID,
		ProviderID: i.ProviderID,
		IsDeformed: i.IsDeformed,
	}
	if i.AssignedWorkerID != nil {
		k.AssignedWorkerID = *i.AssignedWorkerID
	}
	return k
}

// IsLowStock indica si una pila vendible está en o por debajo de su alerta.
func (i *InventoryItem) IsLowStock() bool {
	return !i.IsDeformed && i.Quantity <= i.MinStockAlert
}

// PileKey identidad de fusión de una pila. AssignedWorkerID vacío significa sin asignar.
type PileKey struct {
	FreezerID        string
	ProductID        string
	FlavorID         string
	ProviderID       string
	IsDeformed       bool
	AssignedWorkerID string
}

// WorkerPtr devuelve AssignedWorkerID como puntero (nil si está vacío), tal como se persiste.
func (k PileKey) WorkerPtr() *string {
	if k.AssignedWorkerID == "" {
		return nil
	}
	s := k.AssignedWorkerID
	return &s
}
